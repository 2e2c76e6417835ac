// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò trong đội ngũ bán hàng. Quyền xem dữ liệu nới dần
// từ agent lên supervisor; support không có quyền xem báo cáo.
const (
	RoleAgent      = "agent"
	RoleManager    = "manager"
	RoleDirector   = "director"
	RoleSupervisor = "supervisor"
	RoleSupport    = "support"
)

// User định nghĩa thành viên đội ngũ bán hàng.
// SupervisorID trỏ tới cấp trên trực tiếp: agent trỏ tới manager,
// manager trỏ tới director. Chuỗi cấp trên không được tạo vòng.
type User struct {
	_Relationships struct{}           `relationship:"collection:auth_users,field:supervisorId,message:Khong the xoa user vi dang la cap tren cua %d user khac. Vui long chuyen cap duoi sang quan ly khac truoc.|collection:crm_customers,field:createdBy,message:Khong the xoa user vi co %d khach hang do user nay tao. Vui long chuyen khach hang sang user khac truoc."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"` // Tên hiển thị
	FullName       string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Email          string             `json:"email" bson:"email" index:"unique,sparse" validate:"required,email"`
	Password       string             `json:"-" bson:"password"`                                    // Bcrypt hash, không trả ra ngoài
	Role           string             `json:"role" bson:"role" validate:"required,sales_role"`      // agent | manager | director | supervisor | support
	SupervisorID   primitive.ObjectID `json:"supervisorId,omitempty" bson:"supervisorId,omitempty"` // Cấp trên trực tiếp
	Team           string             `json:"team,omitempty" bson:"team,omitempty"`                 // Nhóm kinh doanh
	Token          string             `json:"-" bson:"token,omitempty" index:"unique,sparse"`       // JWT phiên hiện tại
	IsBlock        bool               `json:"isBlock" bson:"isBlock"`
	BlockNote      string             `json:"blockNote,omitempty" bson:"blockNote,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"` // Thời gian tạo (unix milli)
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật (unix milli)
}

// DisplayLabel trả về nhãn hiển thị của user theo thứ tự ưu tiên:
// tên hiển thị, tên đầy đủ, cuối cùng là id dạng hex.
func (u *User) DisplayLabel() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.ID.Hex()
}
