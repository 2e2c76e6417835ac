// Package crmvc - Test filter truy vấn khách hàng: chỉ thu hẹp, không mở rộng.
package crmvc

import (
	"testing"

	authmodels "sales_crm/internal/api/auth/models"
	crmdto "sales_crm/internal/api/crm/dto"
	crmmodels "sales_crm/internal/api/crm/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveTagCategory(t *testing.T) {
	cases := map[string]string{
		crmmodels.TagReplied:       crmmodels.TagCategoryStatus,
		crmmodels.TagJoinedGroup:   crmmodels.TagCategoryLearning,
		crmmodels.TagOpenedAccount: crmmodels.TagCategoryConversion,
		"follow-stock-VNM":         crmmodels.TagCategoryLearning, // suffix động
	}
	for label, want := range cases {
		got, ok := resolveTagCategory(label)
		if !ok || got != want {
			t.Errorf("nhãn %q phải thuộc nhóm %s, nhận được (%s, %v)", label, want, got, ok)
		}
	}

	if _, ok := resolveTagCategory("vip-khách"); ok {
		t.Error("nhãn ngoài từ vựng phải bị từ chối")
	}
}

func TestBuildCustomerFilter_IntersectionNarrowsOnly(t *testing.T) {
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	users := []authmodels.User{
		{ID: ownerA, Team: "alpha"},
		{ID: ownerB, Team: "beta"},
		{ID: outsider, Team: "beta"},
	}
	owners := map[primitive.ObjectID]bool{ownerA: true, ownerB: true}

	// Lọc theo team beta: chỉ còn ownerB, outsider không được thêm vào
	filter, err := buildCustomerFilter(owners, false, users, &crmdto.CustomerListQuery{Team: "beta"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	in, ok := filter["createdBy"].(bson.M)
	if !ok {
		t.Fatalf("filter phải có createdBy $in, nhận được %v", filter)
	}
	ids := in["$in"].([]primitive.ObjectID)
	if len(ids) != 1 || ids[0] != ownerB {
		t.Errorf("giao visibility ∩ team phải chỉ còn ownerB, nhận được %v", ids)
	}
}

func TestBuildCustomerFilter_EmptyIntersectionIsNil(t *testing.T) {
	ownerA := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	users := []authmodels.User{
		{ID: ownerA, Team: "alpha"},
		{ID: outsider, Team: "beta"},
	}
	owners := map[primitive.ObjectID]bool{ownerA: true}

	// Creator ngoài tập visibility: giao rỗng, filter nil, không lỗi
	filter, err := buildCustomerFilter(owners, false, users, &crmdto.CustomerListQuery{CreatedBy: outsider.Hex()})
	if err != nil {
		t.Fatalf("giao rỗng không phải lỗi: %v", err)
	}
	if filter != nil {
		t.Errorf("giao rỗng phải trả filter nil, nhận được %v", filter)
	}

	// Tập owner rỗng (role fail closed): cũng nil
	filter, err = buildCustomerFilter(map[primitive.ObjectID]bool{}, false, users, nil)
	if err != nil || filter != nil {
		t.Errorf("tập owner rỗng phải trả filter nil, nhận được (%v, %v)", filter, err)
	}
}

func TestBuildCustomerFilter_SupervisorPath(t *testing.T) {
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	users := []authmodels.User{
		{ID: ownerA, Team: "alpha"},
		{ID: ownerB, Team: "beta"},
	}

	// Không filter: supervisor thấy toàn bộ, filter không ràng buộc createdBy
	filter, err := buildCustomerFilter(nil, true, users, nil)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := filter["createdBy"]; ok {
		t.Errorf("đường all không filter không được ràng buộc createdBy: %v", filter)
	}

	// Creator + team không khớp nhau: giao rỗng, nil
	filter, err = buildCustomerFilter(nil, true, users, &crmdto.CustomerListQuery{CreatedBy: ownerA.Hex(), Team: "beta"})
	if err != nil || filter != nil {
		t.Errorf("creator ngoài team phải trả nil, nhận được (%v, %v)", filter, err)
	}
}

func TestBuildCustomerFilter_BadCreatorHex(t *testing.T) {
	_, err := buildCustomerFilter(nil, true, nil, &crmdto.CustomerListQuery{CreatedBy: "không-phải-hex"})
	if err == nil {
		t.Error("createdBy không phải hex phải bị từ chối")
	}
}

func TestBuildCustomerFilter_ChannelAndDateRange(t *testing.T) {
	owner := primitive.NewObjectID()
	owners := map[primitive.ObjectID]bool{owner: true}

	filter, err := buildCustomerFilter(owners, false, nil, &crmdto.CustomerListQuery{
		Channel:   "ads",
		DateStart: "2024-01-01",
		DateEnd:   "2024-01-31",
	})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if filter["channel"] != "ads" {
		t.Errorf("filter phải ràng buộc channel, nhận được %v", filter)
	}
	dateRange, ok := filter["date"].(bson.M)
	if !ok || dateRange["$gte"] != "2024-01-01" || dateRange["$lte"] != "2024-01-31" {
		t.Errorf("filter ngày phải là khoảng [$gte, $lte], nhận được %v", filter["date"])
	}
}
