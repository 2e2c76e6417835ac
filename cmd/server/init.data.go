package main

import (
	"context"

	authmodels "sales_crm/internal/api/auth/models"
	authsvc "sales_crm/internal/api/auth/service"
	"sales_crm/internal/global"
	"sales_crm/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData tạo tài khoản supervisor mặc định khi chạy ở init mode.
// Supervisor là gốc của cây quản lý: mọi user khác đều được tạo qua API
// bởi supervisor này, nên hệ thống cần ít nhất một tài khoản để bắt đầu.
func InitDefaultData() {
	log := logger.GetAppLogger()

	cfg := global.ServerConfig
	if !cfg.InitMode {
		log.Info("Init mode disabled, skipping default data")
		return
	}

	log.Info("Init mode enabled, checking default supervisor account...")

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required when INITMODE=true")
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx := context.Background()

	// Đã có tài khoản supervisor thì không tạo lại
	count, err := userService.CountDocuments(ctx, bson.M{"role": authmodels.RoleSupervisor})
	if err != nil {
		log.Fatalf("Failed to count supervisor accounts: %v", err)
	}
	if count > 0 {
		log.Info("Supervisor account already exists, skipping")
		return
	}

	created, err := userService.CreateUser(ctx, authmodels.User{
		Name:     "Supervisor",
		FullName: "Default Supervisor",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     authmodels.RoleSupervisor,
	})
	if err != nil {
		log.Fatalf("Failed to create default supervisor: %v", err)
	}

	log.WithFields(map[string]interface{}{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
	}).Info("Default supervisor account created")
}
