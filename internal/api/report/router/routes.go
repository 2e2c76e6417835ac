// Package router đăng ký các route thuộc domain Report.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"sales_crm/internal/api/middleware"
	reporthdl "sales_crm/internal/api/report/handler"
	apirouter "sales_crm/internal/api/router"
)

// Register đăng ký các route báo cáo lên v1.
// Chỉ yêu cầu đăng nhập; phạm vi dữ liệu do visibility resolver quyết định
// (role support hay role lạ nhận kết quả rỗng, không phải 403).
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("tạo ReportHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /reports/analysis?groupBy=channel|agent|team|day|week|month|country
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/analysis", middlewares, reportHandler.HandleAnalysis)

	// GET /reports/summary?dateStart=&dateEnd=
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/summary", middlewares, reportHandler.HandleSummary)

	return nil
}
