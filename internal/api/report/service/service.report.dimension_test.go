// Package reportsvc - Test dimension resolver: khóa nhóm và nhãn hiển thị.
package reportsvc

import (
	"testing"

	authmodels "sales_crm/internal/api/auth/models"
	crmmodels "sales_crm/internal/api/crm/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseDimension(t *testing.T) {
	for _, s := range []string{"channel", "agent", "team", "day", "week", "month", "country"} {
		if _, err := ParseDimension(s); err != nil {
			t.Errorf("dimension %q phải hợp lệ, nhận lỗi %v", s, err)
		}
	}
	if _, err := ParseDimension("quarter"); err == nil {
		t.Error("dimension lạ phải bị từ chối")
	}
	if _, err := ParseDimension(""); err == nil {
		t.Error("dimension rỗng phải bị từ chối")
	}
}

func TestGroupKey_Wire(t *testing.T) {
	known := GroupKey{Known: true, Value: "ads"}
	if known.Wire(DimensionChannel) != "ads" {
		t.Errorf("khóa known phải giữ nguyên giá trị, nhận được %q", known.Wire(DimensionChannel))
	}
	unknown := GroupKey{}
	if unknown.Wire(DimensionChannel) != "unknown-channel" {
		t.Errorf("khóa unknown phải là sentinel theo dimension, nhận được %q", unknown.Wire(DimensionChannel))
	}
	if unknown.Wire(DimensionDay) != "unknown-day" {
		t.Errorf("sentinel phải mang tên dimension, nhận được %q", unknown.Wire(DimensionDay))
	}
}

func TestGroupKeyFor_WeekTruncatesToMonday(t *testing.T) {
	// 2024-01-01 là thứ Hai
	cases := map[string]string{
		"2024-01-01": "2024-01-01", // thứ Hai giữ nguyên
		"2024-01-04": "2024-01-01", // thứ Năm
		"2024-01-07": "2024-01-01", // Chủ nhật vẫn thuộc tuần bắt đầu 01/01
		"2024-01-08": "2024-01-08", // thứ Hai tuần sau
	}
	for date, want := range cases {
		key := GroupKeyFor(&crmmodels.CrmCustomer{Date: date}, DimensionWeek, nil)
		if !key.Known || key.Value != want {
			t.Errorf("tuần của %s phải là %s, nhận được %+v", date, want, key)
		}
	}
}

func TestGroupKeyFor_MonthCanonicalKey(t *testing.T) {
	key := GroupKeyFor(&crmmodels.CrmCustomer{Date: "2024-01-04"}, DimensionMonth, nil)
	if !key.Known || key.Value != "2024-01" {
		t.Errorf("khóa tháng phải là 2024-01, nhận được %+v", key)
	}
}

func TestGroupKeyFor_BadDateIsUnknown(t *testing.T) {
	for _, date := range []string{"", "04/01/2024", "2024-13-40", "hôm qua"} {
		for _, dim := range []Dimension{DimensionDay, DimensionWeek, DimensionMonth} {
			key := GroupKeyFor(&crmmodels.CrmCustomer{Date: date}, dim, nil)
			if key.Known {
				t.Errorf("ngày %q không parse được phải về unknown cho %s, nhận được %+v", date, dim, key)
			}
		}
	}
}

func TestGroupKeyFor_EmptyFieldIsUnknown(t *testing.T) {
	c := &crmmodels.CrmCustomer{}
	if GroupKeyFor(c, DimensionChannel, nil).Known {
		t.Error("channel rỗng phải về unknown")
	}
	if GroupKeyFor(c, DimensionCountry, nil).Known {
		t.Error("country rỗng phải về unknown")
	}
}

func TestGroupKeyFor_AgentOrphanIsUnknown(t *testing.T) {
	owner := authmodels.User{ID: primitive.NewObjectID(), Name: "An", Team: "alpha"}
	dir := NewUserDirectory([]authmodels.User{owner})

	// createdBy rỗng -> unknown
	if GroupKeyFor(&crmmodels.CrmCustomer{}, DimensionAgent, dir).Known {
		t.Error("record không có createdBy phải về bucket unknown")
	}

	// createdBy không còn trong danh bạ -> unknown
	ghost := primitive.NewObjectID()
	if GroupKeyFor(&crmmodels.CrmCustomer{CreatedBy: ghost}, DimensionAgent, dir).Known {
		t.Error("owner không có trong danh bạ phải về bucket unknown")
	}

	// owner hợp lệ -> khóa là id hex
	key := GroupKeyFor(&crmmodels.CrmCustomer{CreatedBy: owner.ID}, DimensionAgent, dir)
	if !key.Known || key.Value != owner.ID.Hex() {
		t.Errorf("khóa agent phải là id hex của owner, nhận được %+v", key)
	}

	// team của owner hợp lệ
	teamKey := GroupKeyFor(&crmmodels.CrmCustomer{CreatedBy: owner.ID}, DimensionTeam, dir)
	if !teamKey.Known || teamKey.Value != "alpha" {
		t.Errorf("khóa team phải là team của owner, nhận được %+v", teamKey)
	}
}

func TestLabelFor_DateFormats(t *testing.T) {
	dayKey := GroupKey{Known: true, Value: "2024-01-04"}
	if got := LabelFor(dayKey, DimensionDay, nil); got != "04/01/2024" {
		t.Errorf("nhãn ngày phải là 04/01/2024, nhận được %q", got)
	}

	weekKey := GroupKey{Known: true, Value: "2024-01-01"}
	if got := LabelFor(weekKey, DimensionWeek, nil); got != "Tuần 01/01/2024" {
		t.Errorf("nhãn tuần phải là 'Tuần 01/01/2024', nhận được %q", got)
	}

	monthKey := GroupKey{Known: true, Value: "2024-01"}
	if got := LabelFor(monthKey, DimensionMonth, nil); got != "Tháng 01/2024" {
		t.Errorf("nhãn tháng phải là 'Tháng 01/2024', nhận được %q", got)
	}
}

func TestLabelFor_AgentDisplayFallback(t *testing.T) {
	withName := authmodels.User{ID: primitive.NewObjectID(), Name: "An", FullName: "Nguyễn Văn An"}
	fullOnly := authmodels.User{ID: primitive.NewObjectID(), FullName: "Trần Thị Bình"}
	bare := authmodels.User{ID: primitive.NewObjectID()}
	dir := NewUserDirectory([]authmodels.User{withName, fullOnly, bare})

	if got := LabelFor(GroupKey{Known: true, Value: withName.ID.Hex()}, DimensionAgent, dir); got != "An" {
		t.Errorf("nhãn agent ưu tiên tên hiển thị, nhận được %q", got)
	}
	if got := LabelFor(GroupKey{Known: true, Value: fullOnly.ID.Hex()}, DimensionAgent, dir); got != "Trần Thị Bình" {
		t.Errorf("thiếu tên hiển thị phải rơi về tên đầy đủ, nhận được %q", got)
	}
	if got := LabelFor(GroupKey{Known: true, Value: bare.ID.Hex()}, DimensionAgent, dir); got != bare.ID.Hex() {
		t.Errorf("thiếu cả hai tên phải rơi về id, nhận được %q", got)
	}
}

func TestLabelFor_UnknownUsesSentinel(t *testing.T) {
	if got := LabelFor(GroupKey{}, DimensionTeam, nil); got != "unknown-team" {
		t.Errorf("nhãn unknown phải là sentinel, nhận được %q", got)
	}
}
