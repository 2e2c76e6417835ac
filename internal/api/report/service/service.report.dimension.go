// Package reportsvc - Dimension resolver: khách hàng -> khóa nhóm + nhãn hiển thị.
package reportsvc

import (
	"fmt"
	"time"

	authmodels "sales_crm/internal/api/auth/models"
	crmmodels "sales_crm/internal/api/crm/models"
	"sales_crm/internal/common"
)

// Dimension là trục phân nhóm của báo cáo.
type Dimension string

const (
	DimensionChannel Dimension = "channel"
	DimensionAgent   Dimension = "agent"
	DimensionTeam    Dimension = "team"
	DimensionDay     Dimension = "day"
	DimensionWeek    Dimension = "week"
	DimensionMonth   Dimension = "month"
	DimensionCountry Dimension = "country"
)

// dateFormatDay là format canonical cho khóa ngày và tuần;
// thứ tự lexicographic trùng thứ tự thời gian.
const dateFormatDay = "2006-01-02"

// dateFormatMonth là format canonical cho khóa tháng.
const dateFormatMonth = "2006-01"

// ParseDimension kiểm tra chuỗi groupBy từ request.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionChannel, DimensionAgent, DimensionTeam, DimensionDay, DimensionWeek, DimensionMonth, DimensionCountry:
		return Dimension(s), nil
	}
	return "", common.NewError(common.ErrCodeBusinessReport, "groupBy không hợp lệ, chấp nhận: channel, agent, team, day, week, month, country", common.StatusBadRequest, map[string]interface{}{"groupBy": s})
}

// GroupKey là khóa nhóm có đánh dấu unknown tường minh.
// Không bao giờ so sánh prefix chuỗi để nhận diện bucket unknown.
type GroupKey struct {
	Known bool
	Value string
}

// Wire trả về dạng chuỗi của khóa trên wire: giá trị thật hoặc
// sentinel "unknown-<dimension>".
func (k GroupKey) Wire(dim Dimension) string {
	if k.Known {
		return k.Value
	}
	return "unknown-" + string(dim)
}

// UserDirectory là snapshot danh bạ user đọc một lần cho mỗi request.
type UserDirectory struct {
	byID map[string]authmodels.User
}

// NewUserDirectory dựng directory từ danh sách user.
func NewUserDirectory(users []authmodels.User) *UserDirectory {
	byID := make(map[string]authmodels.User, len(users))
	for _, u := range users {
		byID[u.ID.Hex()] = u
	}
	return &UserDirectory{byID: byID}
}

// Get tra user theo id dạng hex.
func (d *UserDirectory) Get(id string) (authmodels.User, bool) {
	if d == nil {
		return authmodels.User{}, false
	}
	u, ok := d.byID[id]
	return u, ok
}

// GroupKeyFor tính khóa nhóm của một khách hàng theo dimension.
// Field thiếu hoặc ngày không parse được trả về khóa unknown —
// không bao giờ đưa sentinel qua parser ngày.
func GroupKeyFor(c *crmmodels.CrmCustomer, dim Dimension, dir *UserDirectory) GroupKey {
	switch dim {
	case DimensionChannel:
		if c.Channel == "" {
			return GroupKey{}
		}
		return GroupKey{Known: true, Value: c.Channel}

	case DimensionCountry:
		if c.Country == "" {
			return GroupKey{}
		}
		return GroupKey{Known: true, Value: c.Country}

	case DimensionAgent:
		// Owner thiếu hoặc không còn trong danh bạ đều về bucket unknown,
		// để nhóm agent và dòng orphan của summary thống nhất một danh tính
		if c.CreatedBy.IsZero() {
			return GroupKey{}
		}
		if _, ok := dir.Get(c.CreatedBy.Hex()); !ok {
			return GroupKey{}
		}
		return GroupKey{Known: true, Value: c.CreatedBy.Hex()}

	case DimensionTeam:
		if c.CreatedBy.IsZero() {
			return GroupKey{}
		}
		owner, ok := dir.Get(c.CreatedBy.Hex())
		if !ok || owner.Team == "" {
			return GroupKey{}
		}
		return GroupKey{Known: true, Value: owner.Team}

	case DimensionDay, DimensionWeek, DimensionMonth:
		if c.Date == "" {
			return GroupKey{}
		}
		t, err := time.Parse(dateFormatDay, c.Date)
		if err != nil {
			return GroupKey{}
		}
		switch dim {
		case DimensionWeek:
			// Tuần bắt đầu thứ Hai
			offset := (int(t.Weekday()) + 6) % 7
			return GroupKey{Known: true, Value: t.AddDate(0, 0, -offset).Format(dateFormatDay)}
		case DimensionMonth:
			return GroupKey{Known: true, Value: t.Format(dateFormatMonth)}
		default:
			return GroupKey{Known: true, Value: t.Format(dateFormatDay)}
		}
	}
	return GroupKey{}
}

// LabelFor tính nhãn hiển thị cho một khóa nhóm. Hàm thuần theo (key, dim):
// agent hiển thị tên (tên hiển thị ▸ tên đầy đủ ▸ id), các dimension ngày
// hiển thị dạng người đọc; còn lại dùng nguyên khóa.
func LabelFor(key GroupKey, dim Dimension, dir *UserDirectory) string {
	if !key.Known {
		return key.Wire(dim)
	}

	switch dim {
	case DimensionAgent:
		owner, ok := dir.Get(key.Value)
		if !ok {
			return key.Value
		}
		return owner.DisplayLabel()

	case DimensionDay:
		t, err := time.Parse(dateFormatDay, key.Value)
		if err != nil {
			return key.Value
		}
		return t.Format("02/01/2006")

	case DimensionWeek:
		t, err := time.Parse(dateFormatDay, key.Value)
		if err != nil {
			return key.Value
		}
		return fmt.Sprintf("Tuần %s", t.Format("02/01/2006"))

	case DimensionMonth:
		t, err := time.Parse(dateFormatMonth, key.Value)
		if err != nil {
			return key.Value
		}
		return fmt.Sprintf("Tháng %s", t.Format("01/2006"))
	}

	return key.Value
}
