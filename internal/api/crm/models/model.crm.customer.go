// Package models - CrmCustomer thuộc domain CRM (crm_customers).
// Khách hàng tiềm năng do agent tạo, gắn tag trạng thái/hành vi,
// là nguồn dữ liệu duy nhất cho engine báo cáo.
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerTag là một nhãn {label, category} gắn trên khách hàng.
// Danh sách tag có thứ tự, chấp nhận trùng lặp.
type CustomerTag struct {
	Label    string `json:"label" bson:"label"`
	Category string `json:"category" bson:"category"` // status | learning | conversion
}

// CrmCustomer lưu khách hàng tiềm năng (crm_customers).
// CreatedBy cố định từ lúc tạo, không đổi chủ qua đường báo cáo;
// document cũ có thể thiếu CreatedBy (orphan).
type CrmCustomer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name  string `json:"name" bson:"name" validate:"required"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`

	// Thuộc tính phân nhóm — đều optional, thiếu thì rơi vào bucket unknown khi báo cáo
	Channel string `json:"channel,omitempty" bson:"channel,omitempty" index:"single:1"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	Date    string `json:"date,omitempty" bson:"date,omitempty" index:"single:1"` // ISO, dạng 2006-01-02

	// Tags theo từ vựng cố định (constants.tags.go)
	Tags []CustomerTag `json:"tags" bson:"tags"`

	// Engagement counters — cập nhật độc lập với tags
	LastReplyAt       int64 `json:"lastReplyAt,omitempty" bson:"lastReplyAt,omitempty"` // Unix ms
	ConversationCount int   `json:"conversationCount" bson:"conversationCount"`
	ReplyCount        int   `json:"replyCount" bson:"replyCount"`

	// Chủ sở hữu — agent đã tạo record
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Unix ms
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Unix ms
}

// HasTag kiểm tra khách có tag với nhãn đúng bằng label không.
func (c *CrmCustomer) HasTag(label string) bool {
	for _, t := range c.Tags {
		if t.Label == label {
			return true
		}
	}
	return false
}

// HasTagContaining kiểm tra khách có tag với nhãn chứa substring không.
func (c *CrmCustomer) HasTagContaining(sub string) bool {
	for _, t := range c.Tags {
		if strings.Contains(t.Label, sub) {
			return true
		}
	}
	return false
}
