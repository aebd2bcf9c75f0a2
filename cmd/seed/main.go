package main

import (
	"fmt"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/db"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//開発用の初期データ投入。既存データは消してから入れ直す

func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	//テーブルを作り直す
	if err := gormDB.Migrator().DropTable(
		&model.AuditLog{},
		&model.OrderItem{},
		&model.Order{},
		&model.Review{},
		&model.Product{},
		&model.User{},
	); err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Review{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		users := []model.User{
			{
				Name:         "John Doe",
				Email:        "john@example.com",
				PhoneNumber:  "1234567890",
				PasswordHash: mustHash("password123"),
				Role:         model.RoleUser,
			},
			{
				Name:         "Jane Smith",
				Email:        "jane@example.com",
				PhoneNumber:  "0987654321",
				PasswordHash: mustHash("securepassword"),
				Role:         model.RoleUser,
			},
			{
				Name:         "Admin User",
				Email:        "admin@example.com",
				PhoneNumber:  "1112223333",
				PasswordHash: mustHash("adminpassword"),
				Role:         model.RoleAdmin,
			},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		products := []model.Product{
			{
				Name:          "Vintage Leather Jacket",
				Description:   "A high-quality leather jacket with a vintage feel.",
				Price:         price("120.00"),
				StockQuantity: 10,
				Category:      "Men's Wear",
				ImageURL:      "https://example.com/images/vintage-leather-jacket.jpg",
			},
			{
				Name:          "Handmade Silver Necklace",
				Description:   "A beautiful handmade silver necklace perfect for any occasion.",
				Price:         price("80.00"),
				StockQuantity: 25,
				Category:      "Jewelry",
				ImageURL:      "https://example.com/images/silver-necklace.jpg",
			},
			{
				Name:          "Running Shoes",
				Description:   "Lightweight running shoes designed for maximum comfort and performance.",
				Price:         price("60.00"),
				StockQuantity: 50,
				Category:      "Footwear",
				ImageURL:      "https://example.com/images/running-shoes.jpg",
			},
			{
				Name:          "Classic White T-Shirt",
				Description:   "A staple piece for any wardrobe, this classic white t-shirt is comfortable and versatile.",
				Price:         price("20.00"),
				StockQuantity: 100,
				Category:      "Men's Wear",
				ImageURL:      "https://example.com/images/white-t-shirt.jpg",
			},
			{
				Name:          "Blue Denim Jeans",
				Description:   "Stylish blue denim jeans that fit perfectly and are ideal for any casual outing.",
				Price:         price("40.00"),
				StockQuantity: 30,
				Category:      "Men's Wear",
				ImageURL:      "https://example.com/images/blue-denim-jeans.jpg",
			},
			{
				Name:          "Leather Backpack",
				Description:   "A durable and stylish leather backpack for everyday use.",
				Price:         price("90.00"),
				StockQuantity: 15,
				Category:      "Accessories",
				ImageURL:      "https://example.com/images/leather-backpack.jpg",
			},
			{
				Name:          "Summer Dress",
				Description:   "A light and breezy summer dress perfect for sunny days.",
				Price:         price("55.00"),
				StockQuantity: 40,
				Category:      "Women's Wear",
				ImageURL:      "https://example.com/images/summer-dress.jpg",
			},
			{
				Name:          "Bluetooth Headphones",
				Description:   "High-quality Bluetooth headphones with noise cancellation.",
				Price:         price("120.00"),
				StockQuantity: 22,
				Category:      "Electronics",
				ImageURL:      "https://example.com/images/bluetooth-headphones.jpg",
			},
			{
				Name:          "Ceramic Mug",
				Description:   "A beautifully crafted ceramic mug for your morning coffee.",
				Price:         price("15.00"),
				StockQuantity: 200,
				Category:      "Home & Kitchen",
				ImageURL:      "https://example.com/images/ceramic-mug.jpg",
			},
			{
				Name:          "Guitar",
				Description:   "An acoustic guitar perfect for beginners and experienced players alike.",
				Price:         price("200.00"),
				StockQuantity: 8,
				Category:      "Musical Instruments",
				ImageURL:      "https://example.com/images/guitar.jpg",
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		reviews := []model.Review{
			{
				ProductID:  products[0].ID,
				UserID:     users[0].ID,
				Rating:     5,
				ReviewText: "Amazing quality and perfect fit!",
				Status:     model.ReviewStatusApproved,
			},
			{
				ProductID:  products[1].ID,
				UserID:     users[1].ID,
				Rating:     4,
				ReviewText: "Beautiful necklace, but a bit overpriced.",
				Status:     model.ReviewStatusApproved,
			},
			{
				ProductID:  products[2].ID,
				UserID:     users[0].ID,
				Rating:     5,
				ReviewText: "These running shoes are super comfortable!",
				Status:     model.ReviewStatusPending,
			},
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return err
		}

		order1 := model.Order{
			UserID:          users[0].ID,
			TotalAmount:     price("120.00"),
			Status:          model.OrderStatusCompleted,
			ShippingAddress: "123 Main Street, Cityville",
		}
		if err := tx.Create(&order1).Error; err != nil {
			return err
		}
		items1 := []model.OrderItem{
			{OrderID: order1.ID, ProductID: products[0].ID, Quantity: 1, PriceAtPurchase: price("120.00")},
		}
		if err := tx.Create(&items1).Error; err != nil {
			return err
		}

		order2 := model.Order{
			UserID:          users[1].ID,
			TotalAmount:     price("140.00"),
			Status:          model.OrderStatusPending,
			ShippingAddress: "456 Maple Avenue, Townsville",
		}
		if err := tx.Create(&order2).Error; err != nil {
			return err
		}
		items2 := []model.OrderItem{
			{OrderID: order2.ID, ProductID: products[1].ID, Quantity: 1, PriceAtPurchase: price("80.00")},
			{OrderID: order2.ID, ProductID: products[2].ID, Quantity: 1, PriceAtPurchase: price("60.00")},
		}
		return tx.Create(&items2).Error
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("Database seeded successfully!")
}
