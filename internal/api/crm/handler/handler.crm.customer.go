// Package crmhdl - Handler khách hàng CRM.
package crmhdl

import (
	"fmt"

	basehdl "sales_crm/internal/api/base/handler"
	crmdto "sales_crm/internal/api/crm/dto"
	crmmodels "sales_crm/internal/api/crm/models"
	crmvc "sales_crm/internal/api/crm/service"
	"sales_crm/internal/api/middleware"
	"sales_crm/internal/common"
	"sales_crm/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCustomerHandler xử lý API khách hàng.
type CrmCustomerHandler struct {
	*basehdl.BaseHandler[crmmodels.CrmCustomer, crmdto.CustomerCreateInput, crmdto.CustomerUpdateInput]
	CustomerService *crmvc.CrmCustomerService
}

// NewCrmCustomerHandler tạo CrmCustomerHandler mới.
func NewCrmCustomerHandler() (*CrmCustomerHandler, error) {
	svc, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCustomerService: %w", err)
	}
	return &CrmCustomerHandler{
		BaseHandler:     basehdl.NewBaseHandler[crmmodels.CrmCustomer, crmdto.CustomerCreateInput, crmdto.CustomerUpdateInput](svc),
		CustomerService: svc,
	}, nil
}

// customerIDFromParams đọc và validate :id của khách hàng.
func customerIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID khách hàng không hợp lệ", common.StatusBadRequest, nil)
	}
	objID, _ := primitive.ObjectIDFromHex(id)
	return objID, nil
}

// HandleCreateCustomer xử lý POST /customers/create.
// createdBy cố định là user đã xác thực, bỏ qua mọi giá trị trong body.
func (h *CrmCustomerHandler) HandleCreateCustomer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, ok := middleware.UserFromContext(c)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input crmdto.CustomerCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customer := crmmodels.CrmCustomer{
			Name:    input.Name,
			Phone:   input.Phone,
			Channel: input.Channel,
			Country: input.Country,
			Date:    input.Date,
		}
		for _, t := range input.Tags {
			customer.Tags = append(customer.Tags, crmmodels.CustomerTag{Label: t.Label, Category: t.Category})
		}

		created, err := h.CustomerService.CreateCustomer(c.Context(), caller.ID, customer)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("create", "customer", created.ID.Hex(), c, map[string]interface{}{"channel": created.Channel})
		h.HandleResponse(c, created, nil)
		return nil
	})
}

// HandleListCustomers xử lý GET /customers/list — danh sách theo visibility của caller.
// Query: channel, team, createdBy, dateStart, dateEnd (đều optional, chỉ thu hẹp).
func (h *CrmCustomerHandler) HandleListCustomers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, ok := middleware.UserFromContext(c)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		query := crmdto.CustomerListQuery{
			Channel:   c.Query("channel"),
			Team:      c.Query("team"),
			CreatedBy: c.Query("createdBy"),
			DateStart: c.Query("dateStart"),
			DateEnd:   c.Query("dateEnd"),
		}
		if err := h.ValidateInput(&query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customers, err := h.CustomerService.VisibleCustomers(c.Context(), caller, &query)
		h.HandleResponse(c, customers, err)
		return nil
	})
}

// HandleAddTag xử lý POST /customers/:id/tags.
func (h *CrmCustomerHandler) HandleAddTag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := customerIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CustomerAddTagInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		customer, err := h.CustomerService.AddTag(c.Context(), objID, input.Label)
		h.HandleResponse(c, customer, err)
		return nil
	})
}

// HandleRemoveTag xử lý DELETE /customers/:id/tags.
func (h *CrmCustomerHandler) HandleRemoveTag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := customerIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CustomerRemoveTagInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		customer, err := h.CustomerService.RemoveTag(c.Context(), objID, input.Label)
		h.HandleResponse(c, customer, err)
		return nil
	})
}

// HandleRecordReply xử lý POST /customers/:id/reply — ghi nhận khách trả lời.
func (h *CrmCustomerHandler) HandleRecordReply(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := customerIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		customer, err := h.CustomerService.RecordReply(c.Context(), objID)
		h.HandleResponse(c, customer, err)
		return nil
	})
}

// HandleRecordConversation xử lý POST /customers/:id/conversation — ghi nhận hội thoại mới.
func (h *CrmCustomerHandler) HandleRecordConversation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := customerIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		customer, err := h.CustomerService.RecordConversation(c.Context(), objID)
		h.HandleResponse(c, customer, err)
		return nil
	})
}
