package global

import (
	"sales_crm/config"
	"sales_crm/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users     string // Tên collection cho người dùng (nhân viên sales)
	Customers string // Tên collection cho khách hàng
}

// Các biến toàn cục
var Validate *validator.Validate                                     // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                    // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = MongoDB_CollectionName{} // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// InitColNames gán tên chuẩn cho các collection
func InitColNames() {
	MongoDB_ColNames.Users = "auth_users"
	MongoDB_ColNames.Customers = "crm_customers"
}
