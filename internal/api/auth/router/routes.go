// Package router đăng ký các route thuộc domain auth: System, Auth, User.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "sales_crm/internal/api/auth/handler"
	models "sales_crm/internal/api/auth/models"
	basehdl "sales_crm/internal/api/base/handler"
	"sales_crm/internal/api/middleware"
	apirouter "sales_crm/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, user) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerUserRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	router.Post("/auth/login", userHandler.HandleLogin)
	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/change-password", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleChangePassword)
	return nil
}

// registerUserRoutes đăng ký route quản lý user.
// Chỉ supervisor được tạo, sửa, xóa, khóa user; director trở lên được đọc danh sách.
func registerUserRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	readRoles := []string{models.RoleDirector, models.RoleSupervisor}
	writeRoles := []string{models.RoleSupervisor}
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig, readRoles, writeRoles)

	// Tạo/sửa user đi qua handler riêng để băm mật khẩu và kiểm tra chuỗi cấp trên
	supervisorMiddleware := middleware.AuthMiddleware(models.RoleSupervisor)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "POST", "/create", []fiber.Handler{supervisorMiddleware}, userHandler.HandleCreateUser)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "PUT", "/update/:id", []fiber.Handler{supervisorMiddleware}, userHandler.HandleUpdateUser)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "DELETE", "/delete/:id", []fiber.Handler{supervisorMiddleware}, userHandler.DeleteById)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "POST", "/block", []fiber.Handler{supervisorMiddleware}, userHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "POST", "/unblock", []fiber.Handler{supervisorMiddleware}, userHandler.HandleUnblockUser)
	return nil
}
