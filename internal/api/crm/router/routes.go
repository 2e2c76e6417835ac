// Package router đăng ký các route thuộc domain CRM: khách hàng, tag, engagement.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "sales_crm/internal/api/crm/handler"
	"sales_crm/internal/api/middleware"
	apirouter "sales_crm/internal/api/router"
)

// Register đăng ký tất cả route CRM lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := crmhdl.NewCrmCustomerHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmCustomerHandler: %w", err)
	}

	// Mọi route khách hàng chỉ cần đăng nhập; phạm vi dữ liệu
	// do visibility resolver quyết định theo role.
	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /customers/list — danh sách theo visibility. Query: channel, team, createdBy, dateStart, dateEnd
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/list", middlewares, customerHandler.HandleListCustomers)

	// POST /customers/create — createdBy cố định là caller
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/create", middlewares, customerHandler.HandleCreateCustomer)

	// PUT /customers/update-by-id/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "PUT", "/update-by-id/:id", middlewares, customerHandler.UpdateById)

	// DELETE /customers/delete-by-id/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/delete-by-id/:id", middlewares, customerHandler.DeleteById)

	// GET /customers/find-by-id/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/find-by-id/:id", middlewares, customerHandler.FindOneById)

	// POST /customers/:id/tags — gắn tag; DELETE /customers/:id/tags — gỡ tag
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:id/tags", middlewares, customerHandler.HandleAddTag)
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/:id/tags", middlewares, customerHandler.HandleRemoveTag)

	// Engagement counters
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:id/reply", middlewares, customerHandler.HandleRecordReply)
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:id/conversation", middlewares, customerHandler.HandleRecordConversation)

	return nil
}
