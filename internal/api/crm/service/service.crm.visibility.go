// Package crmvc - Visibility resolver: tính tập chủ sở hữu record mà một user được xem.
//
// Đây là ĐIỂM DISPATCH DUY NHẤT theo role. Mọi consumer (danh sách khách hàng,
// endpoint báo cáo, summary bundle) đều phải đi qua VisibleOwnerSet, không được
// tự so sánh chuỗi role ở chỗ khác.
package crmvc

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "sales_crm/internal/api/auth/models"
)

// VisibleOwnerSet trả về tập owner-id mà caller được xem record, và cờ all
// cho biết caller thấy toàn bộ record bất kể chủ sở hữu (kể cả record không
// có createdBy).
//
// Bảng phân quyền theo role:
//
//	supervisor -> tất cả record (all=true, owners=nil)
//	director   -> bản thân + các manager có supervisorId == caller + agent của các manager đó
//	manager    -> bản thân + cấp dưới trực tiếp
//	agent      -> chỉ bản thân
//	support    -> rỗng
//
// Role không nhận diện được trả về tập rỗng (fail closed).
func VisibleOwnerSet(caller authmodels.User, users []authmodels.User) (owners map[primitive.ObjectID]bool, all bool) {
	switch caller.Role {
	case authmodels.RoleSupervisor:
		return nil, true

	case authmodels.RoleDirector:
		owners = map[primitive.ObjectID]bool{caller.ID: true}
		// Quét 1: các manager báo cáo trực tiếp cho director
		managers := map[primitive.ObjectID]bool{}
		for _, u := range users {
			if u.Role == authmodels.RoleManager && u.SupervisorID == caller.ID {
				managers[u.ID] = true
				owners[u.ID] = true
			}
		}
		// Quét 2: cấp dưới của các manager đó
		for _, u := range users {
			if !u.SupervisorID.IsZero() && managers[u.SupervisorID] {
				owners[u.ID] = true
			}
		}
		return owners, false

	case authmodels.RoleManager:
		owners = map[primitive.ObjectID]bool{caller.ID: true}
		for _, u := range users {
			if u.SupervisorID == caller.ID {
				owners[u.ID] = true
			}
		}
		return owners, false

	case authmodels.RoleAgent:
		return map[primitive.ObjectID]bool{caller.ID: true}, false

	default:
		// support và mọi role lạ: không thấy gì
		return map[primitive.ObjectID]bool{}, false
	}
}
