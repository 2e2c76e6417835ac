// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	authdto "sales_crm/internal/api/auth/dto"
	models "sales_crm/internal/api/auth/models"
	basesvc "sales_crm/internal/api/base/service"
	"sales_crm/internal/common"
	"sales_crm/internal/global"
	"sales_crm/internal/utility"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxChainDepth chặn vòng lặp khi duyệt chuỗi cấp trên.
const maxChainDepth = 32

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// DetectSupervisorCycle kiểm tra việc gán supervisorID cho userID có tạo vòng
// trong chuỗi cấp trên hay không. parentOf ánh xạ id (hex) -> id cấp trên.
// Hàm thuần để test không cần database.
func DetectSupervisorCycle(userID primitive.ObjectID, supervisorID primitive.ObjectID, parentOf map[string]primitive.ObjectID) bool {
	if supervisorID.IsZero() {
		return false
	}
	current := supervisorID
	for depth := 0; depth < maxChainDepth; depth++ {
		if current == userID {
			return true
		}
		next, ok := parentOf[current.Hex()]
		if !ok || next.IsZero() {
			return false
		}
		current = next
	}
	// Vượt quá độ sâu cho phép thì coi như có vòng
	return true
}

// fetchSupervisorChain đọc chuỗi cấp trên từ supervisor đề xuất lên gốc,
// trả về ánh xạ id (hex) -> id cấp trên cho DetectSupervisorCycle.
// Chuỗi đứt giữa chừng (user bị xóa) thì dừng tại chỗ đứt; độ sâu bị chặn
// nên chuỗi có vòng sẵn trong database cũng không treo.
func (s *UserService) fetchSupervisorChain(ctx context.Context, supervisorID primitive.ObjectID) (map[string]primitive.ObjectID, error) {
	parentOf := map[string]primitive.ObjectID{}
	current := supervisorID
	for depth := 0; depth < maxChainDepth; depth++ {
		supervisor, err := s.BaseServiceMongoImpl.FindOneById(ctx, current)
		if err != nil {
			if depth == 0 {
				return nil, common.NewError(common.ErrCodeBusinessHierarchy, "Cấp trên được chỉ định không tồn tại", common.StatusBadRequest, map[string]interface{}{"supervisorId": supervisorID.Hex()})
			}
			return parentOf, nil
		}
		if supervisor.SupervisorID.IsZero() {
			return parentOf, nil
		}
		parentOf[supervisor.ID.Hex()] = supervisor.SupervisorID
		current = supervisor.SupervisorID
	}
	return parentOf, nil
}

// validateSupervisor kiểm tra cấp trên tồn tại và không tạo vòng trong chuỗi cấp trên.
// userID là id của user đang được ghi (zero nếu user mới). Quyết định có vòng
// hay không nằm trong DetectSupervisorCycle; hàm này chỉ đọc chuỗi từ database.
func (s *UserService) validateSupervisor(ctx context.Context, userID primitive.ObjectID, supervisorID primitive.ObjectID) error {
	if supervisorID.IsZero() {
		return nil
	}
	if supervisorID == userID {
		return common.NewError(common.ErrCodeBusinessHierarchy, "User không thể là cấp trên của chính mình", common.StatusBadRequest, nil)
	}

	parentOf, err := s.fetchSupervisorChain(ctx, supervisorID)
	if err != nil {
		return err
	}
	if DetectSupervisorCycle(userID, supervisorID, parentOf) {
		return common.NewError(common.ErrCodeBusinessHierarchy, "Gán cấp trên này sẽ tạo vòng trong chuỗi quản lý", common.StatusBadRequest, map[string]interface{}{"supervisorId": supervisorID.Hex()})
	}
	return nil
}

// CreateUser tạo user mới: kiểm tra chuỗi cấp trên, băm mật khẩu rồi ghi vào database.
func (s *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var zero models.User

	if err := s.validateSupervisor(ctx, primitive.NilObjectID, user.SupervisorID); err != nil {
		return zero, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không băm được mật khẩu", common.StatusInternalServerError, nil)
	}
	user.Password = string(hashed)

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
		"role":    created.Role,
	}).Info("CreateUser: Tạo user thành công")
	return created, nil
}

// UpdateUser cập nhật user: kiểm tra chuỗi cấp trên trước khi ghi.
func (s *UserService) UpdateUser(ctx context.Context, userID primitive.ObjectID, data *basesvc.UpdateData) (models.User, error) {
	var zero models.User

	if raw, ok := data.Set["supervisorId"]; ok {
		supervisorID, ok := raw.(primitive.ObjectID)
		if !ok {
			return zero, common.NewError(common.ErrCodeValidationFormat, "supervisorId không hợp lệ", common.StatusBadRequest, nil)
		}
		if err := s.validateSupervisor(ctx, userID, supervisorID); err != nil {
			return zero, err
		}
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, userID, data)
}

// Login xác thực email và mật khẩu, sinh JWT mới và lưu vào user.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Email hoặc mật khẩu không đúng", common.StatusUnauthorized, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("Login: Sai mật khẩu")
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Email hoặc mật khẩu không đúng", common.StatusUnauthorized, nil)
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuth, "Tài khoản đã bị khóa", common.StatusForbidden, nil)
	}

	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	tokenMap, err := utility.CreateToken(
		global.ServerConfig.JwtSecret,
		user.ID.Hex(),
		strconv.FormatInt(currentTime, 16),
		strconv.Itoa(rdNumber),
		global.ServerConfig.JwtExpireHours,
	)
	if err != nil {
		return nil, err
	}

	tokenUpdateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token": tokenMap["token"],
		},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, tokenUpdateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "error": err.Error()}).Error("Login: Lỗi khi cập nhật token vào user")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updatedUser.ID.Hex(), "email": updatedUser.Email}).Info("Login: Đăng nhập thành công")
	return &updatedUser, nil
}

// Logout đăng xuất người dùng (xóa token phiên hiện tại)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	updateData := &basesvc.UpdateData{
		Unset: map[string]interface{}{
			"token": "",
		},
	}
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID.Hex()}).Info("Logout: Đăng xuất thành công")
	return nil
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ.
// Token hiện tại bị xóa để buộc đăng nhập lại.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không đúng", common.StatusUnauthorized, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không băm được mật khẩu", common.StatusInternalServerError, nil)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": string(hashed),
		},
		Unset: map[string]interface{}{
			"token": "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// SetBlockStatus khóa hoặc mở khóa tài khoản theo email.
// Khi khóa thì xóa luôn token để chặn phiên đang hoạt động.
func (s *UserService) SetBlockStatus(ctx context.Context, email string, isBlock bool, note string) (models.User, error) {
	var zero models.User

	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		return zero, common.ErrUserNotFound
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   isBlock,
			"blockNote": note,
		},
	}
	if isBlock {
		updateData.Unset = map[string]interface{}{"token": ""}
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
}
