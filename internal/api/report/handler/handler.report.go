// Package reporthdl - Handler các endpoint báo cáo.
package reporthdl

import (
	"fmt"

	basehdl "sales_crm/internal/api/base/handler"
	crmdto "sales_crm/internal/api/crm/dto"
	"sales_crm/internal/api/middleware"
	reportsvc "sales_crm/internal/api/report/service"
	"sales_crm/internal/common"
	"sales_crm/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// ReportHandler xử lý GET analysis và GET summary.
// Danh tính và role của caller lấy từ user đã xác thực trong context,
// không bao giờ từ tham số request.
type ReportHandler struct {
	reportService *reportsvc.ReportService
}

// NewReportHandler tạo ReportHandler mới.
func NewReportHandler() (*ReportHandler, error) {
	svc, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("tạo ReportService: %w", err)
	}
	return &ReportHandler{reportService: svc}, nil
}

// queryFromContext đọc các filter chung (channel, team, createdBy, dateStart, dateEnd).
func queryFromContext(c fiber.Ctx) *crmdto.CustomerListQuery {
	return &crmdto.CustomerListQuery{
		Channel:   c.Query("channel"),
		Team:      c.Query("team"),
		CreatedBy: c.Query("createdBy"),
		DateStart: c.Query("dateStart"),
		DateEnd:   c.Query("dateEnd"),
	}
}

// HandleAnalysis xử lý GET /reports/analysis?groupBy=...
// groupBy bắt buộc; các filter còn lại optional và chỉ thu hẹp tập visible.
func (h *ReportHandler) HandleAnalysis(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, ok := middleware.UserFromContext(c)
		if !ok {
			middleware.HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		dim, err := reportsvc.ParseDimension(c.Query("groupBy"))
		if err != nil {
			middleware.HandleErrorResponse(c, err)
			return nil
		}

		result, err := h.reportService.Analysis(c.Context(), caller, dim, queryFromContext(c))
		if err != nil {
			middleware.HandleErrorResponse(c, err)
			return nil
		}

		logger.LogReport("analysis", c, map[string]interface{}{
			"dimension":   string(dim),
			"recordCount": result.Meta.RecordCount,
		})
		middleware.JSONResponse(c, common.StatusOK, fiber.Map{
			"code":    common.StatusOK,
			"message": common.MsgSuccess,
			"data":    result,
			"status":  "success",
		})
		return nil
	})
}

// HandleSummary xử lý GET /reports/summary — bundle năm phần.
func (h *ReportHandler) HandleSummary(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, ok := middleware.UserFromContext(c)
		if !ok {
			middleware.HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		bundle, err := h.reportService.Summary(c.Context(), caller, queryFromContext(c))
		if err != nil {
			middleware.HandleErrorResponse(c, err)
			return nil
		}

		logger.LogReport("summary", c, map[string]interface{}{
			"channels": len(bundle.Meta.Channels),
			"dates":    len(bundle.Meta.Dates),
		})
		middleware.JSONResponse(c, common.StatusOK, fiber.Map{
			"code":    common.StatusOK,
			"message": common.MsgSuccess,
			"data":    bundle,
			"status":  "success",
		})
		return nil
	})
}
