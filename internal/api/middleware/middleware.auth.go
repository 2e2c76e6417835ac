package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"sales_crm/internal/api/auth/models"
	authsvc "sales_crm/internal/api/auth/service"
	"sales_crm/internal/common"
)

// AuthManager quản lý xác thực người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AuthManager{UserCRUD: userService}, nil
}

// hasRole kiểm tra role của user có nằm trong danh sách được phép không.
func hasRole(userRole string, allowed []string) bool {
	for _, role := range allowed {
		if role == userRole {
			return true
		}
	}
	return false
}

// AuthMiddleware xác thực Bearer token cho Fiber.
// Nếu requiredRoles rỗng, mọi user đã đăng nhập đều được qua;
// ngược lại role của user phải nằm trong danh sách.
func AuthMiddleware(requiredRoles ...string) fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logrus.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Tìm user theo token mới nhất (được cập nhật mỗi lần login)
		user, err := authManager.UserCRUD.FindOne(context.Background(), bson.M{"token": token}, nil)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		// Không yêu cầu role cụ thể: chỉ cần đã đăng nhập
		if len(requiredRoles) == 0 {
			return c.Next()
		}

		if !hasRole(user.Role, requiredRoles) {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Vai trò không đủ quyền thực hiện thao tác này",
				common.StatusForbidden,
				map[string]interface{}{"role": user.Role},
			))
			return nil
		}

		return c.Next()
	}
}

// UserFromContext lấy user đã xác thực từ context của request.
func UserFromContext(c fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
