package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, log: log}
}

// 注文1行の入力。欠けている項目を検出するためpointerで受ける
type OrderLineInput struct {
	ProductID *int64
	Quantity  *int64
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress string
}

type PlaceOrderOutput struct {
	OrderID int64 `json:"order_id"`
}

type OrderItemOutput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderOutput struct {
	OrderID     int64             `json:"order_id"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	Items       []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文確定。
// 在庫チェック・在庫減算・注文と明細の作成を1トランザクションで行い、
// 途中で失敗したら全部ロールバックする（部分注文を作らない）
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "items and shipping address are required")
	}
	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "items and shipping address are required")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, item := range in.Items {
			if item.ProductID == nil || item.Quantity == nil {
				return NewHTTPError(http.StatusBadRequest, "each item must have 'product_id' and 'quantity'")
			}
			productID := *item.ProductID
			qty := *item.Quantity
			if qty <= 0 {
				return NewHTTPError(http.StatusBadRequest, "quantity must be positive")
			}

			//商品取得（単価スナップショット用）
			p, err := r.Products().FindByID(ctx, productID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with id %d does not exist", productID))
			}
			if err != nil {
				u.log.Error("find product failed", zap.Error(err))
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			//在庫減算。条件付きUPDATEなので同時注文でもマイナスにならない
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, productID, qty)
			if err != nil {
				u.log.Error("decrease stock failed", zap.Error(err))
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for product %d", productID))
			}

			//購入時点の価格をスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       productID,
				Quantity:        qty,
				PriceAtPurchase: p.Price,
			})

			total = total.Add(p.Price.Mul(decimal.NewFromInt(qty)))
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          model.OrderStatusPending,
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		})
		if err != nil {
			u.log.Error("create order failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			u.log.Error("create order items failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		out.OrderID = orderID
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

// CancelOrder はpendingの注文を取り消して在庫を戻す。
// 取り消しと在庫戻しは1トランザクションで行う
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			u.log.Error("find order failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		//他人の注文は存在も明かさない
		if order.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		if order.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "only pending orders can be cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			u.log.Error("list order items failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		//減らした在庫を明細ぶん戻す
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				u.log.Error("increase stock failed", zap.Error(err))
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			u.log.Error("update order status failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		return nil
	})
}

// ListMyOrders は自分の注文一覧。他人の注文は返さない
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			u.log.Error("list orders failed", zap.Error(err))
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				u.log.Error("list order items failed", zap.Error(err))
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			outItems := make([]OrderItemOutput, 0, len(items))
			for _, it := range items {
				outItems = append(outItems, OrderItemOutput{
					ProductID: it.ProductID,
					Quantity:  it.Quantity,
				})
			}

			outs = append(outs, OrderOutput{
				OrderID:     o.ID,
				TotalAmount: o.TotalAmount.InexactFloat64(),
				Status:      string(o.Status),
				Items:       outItems,
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}
