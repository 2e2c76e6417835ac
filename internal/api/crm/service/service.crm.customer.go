// Package crmvc - Service khách hàng CRM (crm_customers).
// CRUD, tag, engagement counter và truy vấn theo visibility.
package crmvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	authmodels "sales_crm/internal/api/auth/models"
	authsvc "sales_crm/internal/api/auth/service"
	basesvc "sales_crm/internal/api/base/service"
	crmdto "sales_crm/internal/api/crm/dto"
	crmmodels "sales_crm/internal/api/crm/models"
	"sales_crm/internal/common"
	"sales_crm/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCustomerService xử lý logic khách hàng.
type CrmCustomerService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmCustomer]
	userService *authsvc.UserService
}

// NewCrmCustomerService tạo CrmCustomerService mới.
func NewCrmCustomerService() (*CrmCustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}
	return &CrmCustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmCustomer](coll),
		userService:          userService,
	}, nil
}

// CreateCustomer tạo khách hàng mới. createdBy luôn là user đã xác thực,
// không bao giờ lấy từ request body.
func (s *CrmCustomerService) CreateCustomer(ctx context.Context, creatorID primitive.ObjectID, customer crmmodels.CrmCustomer) (crmmodels.CrmCustomer, error) {
	customer.CreatedBy = creatorID
	if customer.Tags == nil {
		customer.Tags = []crmmodels.CustomerTag{}
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, customer)
}

// resolveTagCategory suy ra phân loại của một nhãn tag từ từ vựng cố định.
// Nhãn follow-stock-<mã> thuộc nhóm learning.
func resolveTagCategory(label string) (string, bool) {
	if category, ok := crmmodels.TagVocabulary[label]; ok {
		return category, true
	}
	if strings.Contains(label, crmmodels.TagFollowStockPrefix) {
		return crmmodels.TagCategoryLearning, true
	}
	return "", false
}

// AddTag gắn một tag lên khách hàng, validate nhãn theo từ vựng cố định.
func (s *CrmCustomerService) AddTag(ctx context.Context, customerID primitive.ObjectID, label string) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	category, ok := resolveTagCategory(label)
	if !ok {
		return zero, common.NewError(common.ErrCodeValidationInput, "Nhãn tag không thuộc từ vựng cho phép", common.StatusBadRequest, map[string]interface{}{"label": label})
	}

	updateData := &basesvc.UpdateData{
		Push: map[string]interface{}{
			"tags": crmmodels.CustomerTag{Label: label, Category: category},
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, customerID, updateData)
}

// RemoveTag gỡ mọi tag có nhãn này khỏi khách hàng.
func (s *CrmCustomerService) RemoveTag(ctx context.Context, customerID primitive.ObjectID, label string) (crmmodels.CrmCustomer, error) {
	updateData := &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"tags": bson.M{"label": label},
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, customerID, updateData)
}

// RecordReply ghi nhận một lượt trả lời của khách (tăng replyCount, cập nhật lastReplyAt).
func (s *CrmCustomerService) RecordReply(ctx context.Context, customerID primitive.ObjectID) (crmmodels.CrmCustomer, error) {
	updateData := &basesvc.UpdateData{
		Inc: map[string]interface{}{"replyCount": 1},
		Set: map[string]interface{}{"lastReplyAt": time.Now().UnixMilli()},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, customerID, updateData)
}

// RecordConversation ghi nhận một hội thoại mới với khách.
func (s *CrmCustomerService) RecordConversation(ctx context.Context, customerID primitive.ObjectID) (crmmodels.CrmCustomer, error) {
	updateData := &basesvc.UpdateData{
		Inc: map[string]interface{}{"conversationCount": 1},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, customerID, updateData)
}

// ListUsers đọc toàn bộ danh bạ user (snapshot một lần cho mỗi request).
func (s *CrmCustomerService) ListUsers(ctx context.Context) ([]authmodels.User, error) {
	return s.userService.Find(ctx, bson.D{}, nil)
}

// VisibleCustomers trả về các khách hàng caller được xem, áp thêm filter nếu có.
// Filter chỉ thu hẹp, không bao giờ mở rộng quá tập visibility.
// Caller với role không nhận diện được nhận về danh sách rỗng.
func (s *CrmCustomerService) VisibleCustomers(ctx context.Context, caller authmodels.User, query *crmdto.CustomerListQuery) ([]crmmodels.CrmCustomer, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.VisibleCustomersIn(ctx, caller, query, users)
}

// VisibleCustomersIn như VisibleCustomers nhưng nhận sẵn snapshot danh bạ,
// cho caller (engine báo cáo) chỉ đọc danh bạ một lần cho mỗi request.
func (s *CrmCustomerService) VisibleCustomersIn(ctx context.Context, caller authmodels.User, query *crmdto.CustomerListQuery, users []authmodels.User) ([]crmmodels.CrmCustomer, error) {
	owners, all := VisibleOwnerSet(caller, users)
	if !all && len(owners) == 0 {
		return []crmmodels.CrmCustomer{}, nil
	}

	filter, err := buildCustomerFilter(owners, all, users, query)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		// Filter loại trừ hết (ví dụ createdBy ngoài tập được xem)
		return []crmmodels.CrmCustomer{}, nil
	}

	return s.BaseServiceMongoImpl.Find(ctx, filter, nil)
}

// buildCustomerFilter dựng bson filter từ tập owner và query.
// Trả về nil (không lỗi) khi giao của filter và visibility rỗng.
func buildCustomerFilter(owners map[primitive.ObjectID]bool, all bool, users []authmodels.User, query *crmdto.CustomerListQuery) (bson.M, error) {
	filter := bson.M{}

	// Thu hẹp theo creator nếu query chỉ định
	var creatorFilter *primitive.ObjectID
	if query != nil && query.CreatedBy != "" {
		objID, err := primitive.ObjectIDFromHex(query.CreatedBy)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "createdBy không hợp lệ", common.StatusBadRequest, nil)
		}
		creatorFilter = &objID
	}

	// Thu hẹp theo team: chuyển thành tập owner thuộc team đó
	var teamOwners map[primitive.ObjectID]bool
	if query != nil && query.Team != "" {
		teamOwners = map[primitive.ObjectID]bool{}
		for _, u := range users {
			if u.Team == query.Team {
				teamOwners[u.ID] = true
			}
		}
	}

	switch {
	case all:
		// Supervisor: xuất phát từ toàn bộ record, filter thu hẹp dần
		if creatorFilter != nil {
			filter["createdBy"] = *creatorFilter
		}
		if teamOwners != nil {
			if creatorFilter != nil && !teamOwners[*creatorFilter] {
				return nil, nil
			}
			if creatorFilter == nil {
				filter["createdBy"] = bson.M{"$in": ownerIDList(teamOwners)}
			}
		}
	default:
		// Giao dần các tập: visibility ∩ team ∩ creator
		allowed := owners
		if teamOwners != nil {
			narrowed := map[primitive.ObjectID]bool{}
			for id := range allowed {
				if teamOwners[id] {
					narrowed[id] = true
				}
			}
			allowed = narrowed
		}
		if creatorFilter != nil {
			if !allowed[*creatorFilter] {
				return nil, nil
			}
			allowed = map[primitive.ObjectID]bool{*creatorFilter: true}
		}
		if len(allowed) == 0 {
			return nil, nil
		}
		filter["createdBy"] = bson.M{"$in": ownerIDList(allowed)}
	}

	if query != nil {
		if query.Channel != "" {
			filter["channel"] = query.Channel
		}
		dateRange := bson.M{}
		if query.DateStart != "" {
			dateRange["$gte"] = query.DateStart
		}
		if query.DateEnd != "" {
			dateRange["$lte"] = query.DateEnd
		}
		if len(dateRange) > 0 {
			filter["date"] = dateRange
		}
	}

	return filter, nil
}

func ownerIDList(owners map[primitive.ObjectID]bool) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	return ids
}
