package authdto

// UserCreateInput đầu vào tạo người dùng (CRUD).
type UserCreateInput struct {
	Name         string `json:"name" validate:"required,max=100,no_xss"`
	FullName     string `json:"fullName" validate:"omitempty,max=200,no_xss"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,strong_password"`
	Role         string `json:"role" validate:"required,sales_role"`
	SupervisorID string `json:"supervisorId" transform:"str_objectid,map=SupervisorID,optional" validate:"omitempty,len=24"`
	Team         string `json:"team" validate:"omitempty,max=100,no_xss"`
}

// UserUpdateInput đầu vào cập nhật người dùng (CRUD).
type UserUpdateInput struct {
	Name         string `json:"name" validate:"omitempty,max=100,no_xss"`
	FullName     string `json:"fullName" validate:"omitempty,max=200,no_xss"`
	Role         string `json:"role" validate:"omitempty,sales_role"`
	SupervisorID string `json:"supervisorId" transform:"str_objectid,map=SupervisorID,optional" validate:"omitempty,len=24"`
	Team         string `json:"team" validate:"omitempty,max=100,no_xss"`
}

// UserLoginInput đầu vào đăng nhập bằng email và mật khẩu.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserChangePasswordInput đầu vào đổi mật khẩu.
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"required,max=500,no_xss"`
}

// UnBlockUserInput đầu vào mở khóa người dùng.
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
}
