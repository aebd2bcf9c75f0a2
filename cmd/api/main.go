package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envはローカル開発用。無ければ環境変数のみで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Review{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator()
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authValidator, log)
	userUC := usecase.NewUserUsecase(userRepo, auditRepo, log)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo, log)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, userRepo, productRepo, auditRepo, log)
	orderUC := usecase.NewOrderUsecase(txManager, log)

	//Handler生成
	authH := handler.NewAuthHandler(cfg, authUC)
	userH := handler.NewUserHandler(cfg, userRepo, userUC)
	productH := handler.NewProductHandler(cfg, userRepo, productUC)
	reviewH := handler.NewReviewHandler(cfg, userRepo, reviewUC)
	orderH := handler.NewOrderHandler(cfg, orderUC)

	//Server起動
	e := server.New(cfg, log, authH, userH, productH, reviewH, orderH)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
