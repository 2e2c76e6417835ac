// Package database - Index cho các collection của hệ thống sales.
package database

import (
	"context"
	"strings"

	"sales_crm/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo các index cần thiết cho auth_users và crm_customers.
// Gọi một lần khi khởi động server, sau khi đã đăng ký collections.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// auth_users: email unique — định danh đăng nhập
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// auth_users: token sparse — lookup xác thực mỗi request
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetName("user_token").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// auth_users: supervisorId — duyệt cây quản lý khi resolve visibility
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "supervisorId", Value: 1}},
		Options: options.Index().SetName("user_supervisor").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_customers: createdBy — lọc visibility
	customers := db.Collection(global.MongoDB_ColNames.Customers)
	if _, err := customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdBy", Value: 1}},
		Options: options.Index().SetName("customer_created_by").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_customers: (date, channel) — lọc báo cáo theo khoảng ngày và kênh
	if _, err := customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "channel", Value: 1},
		},
		Options: options.Index().SetName("customer_date_channel"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
