// Package models - từ vựng tag cố định cho khách hàng CRM.
package models

// Phân loại tag.
const (
	TagCategoryStatus     = "status"     // Trạng thái liên hệ
	TagCategoryLearning   = "learning"   // Hành vi học tập / tham gia
	TagCategoryConversion = "conversion" // Hành vi chuyển đổi
)

// Nhãn tag trạng thái liên hệ.
const (
	TagNotContacted  = "not-contacted"
	TagReadNoReply   = "read-no-reply"
	TagReplied       = "replied"
	TagInterested    = "interested"
	TagNotInterested = "not-interested"
	TagWrongNumber   = "wrong-number"
)

// Nhãn tag hành vi học tập.
// Follow-stock là nhóm nhãn dạng "follow-stock-<mã>", so khớp theo substring.
const (
	TagJoinedGroup       = "joined-group"
	TagJoinedRoom        = "joined-room"
	TagFollowStockPrefix = "follow-stock"
	TagConsulted         = "consulted"
)

// Nhãn tag hành vi chuyển đổi.
const (
	TagOpenedAccount = "opened-account"
	TagDeposit       = "deposit"
	TagReDeposit     = "re-deposit"
)

// TagVocabulary ánh xạ nhãn -> phân loại, dùng để validate khi thêm tag.
// Nhóm follow-stock không nằm trong map vì nhãn có hậu tố động.
var TagVocabulary = map[string]string{
	TagNotContacted:  TagCategoryStatus,
	TagReadNoReply:   TagCategoryStatus,
	TagReplied:       TagCategoryStatus,
	TagInterested:    TagCategoryStatus,
	TagNotInterested: TagCategoryStatus,
	TagWrongNumber:   TagCategoryStatus,
	TagJoinedGroup:   TagCategoryLearning,
	TagJoinedRoom:    TagCategoryLearning,
	TagConsulted:     TagCategoryLearning,
	TagOpenedAccount: TagCategoryConversion,
	TagDeposit:       TagCategoryConversion,
	TagReDeposit:     TagCategoryConversion,
}
