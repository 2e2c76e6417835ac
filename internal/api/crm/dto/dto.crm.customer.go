// Package dto - DTO cho domain CRM (customer).
package dto

// CustomerTagInput là một tag trong request.
type CustomerTagInput struct {
	Label    string `json:"label" validate:"required,max=100,no_xss"`
	Category string `json:"category" validate:"required,oneof=status learning conversion"`
}

// CustomerCreateInput đầu vào tạo khách hàng.
// createdBy KHÔNG nhận từ request — luôn lấy từ user đã xác thực.
type CustomerCreateInput struct {
	Name    string             `json:"name" validate:"required,max=200,no_xss"`
	Phone   string             `json:"phone" validate:"omitempty,max=20"`
	Channel string             `json:"channel" validate:"omitempty,max=100,no_xss"`
	Country string             `json:"country" validate:"omitempty,max=100,no_xss"`
	Date    string             `json:"date" validate:"omitempty,iso_date"`
	Tags    []CustomerTagInput `json:"tags" validate:"omitempty,dive"`
}

// CustomerUpdateInput đầu vào cập nhật khách hàng (partial update).
type CustomerUpdateInput struct {
	Name    string `json:"name" validate:"omitempty,max=200,no_xss"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Channel string `json:"channel" validate:"omitempty,max=100,no_xss"`
	Country string `json:"country" validate:"omitempty,max=100,no_xss"`
	Date    string `json:"date" validate:"omitempty,iso_date"`
}

// CustomerAddTagInput đầu vào gắn tag cho khách hàng.
type CustomerAddTagInput struct {
	Label string `json:"label" validate:"required,max=100,no_xss"`
}

// CustomerRemoveTagInput đầu vào gỡ tag khỏi khách hàng.
type CustomerRemoveTagInput struct {
	Label string `json:"label" validate:"required,max=100"`
}

// CustomerListQuery filter cho danh sách khách hàng (áp sau visibility).
type CustomerListQuery struct {
	Channel   string `json:"channel" validate:"omitempty,max=100"`
	Team      string `json:"team" validate:"omitempty,max=100"`
	CreatedBy string `json:"createdBy" validate:"omitempty,len=24"`
	DateStart string `json:"dateStart" validate:"omitempty,iso_date"`
	DateEnd   string `json:"dateEnd" validate:"omitempty,iso_date"`
}
