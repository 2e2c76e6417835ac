// Package reportsvc - Metric extractor: khách hàng -> MetricVector.
//
// Bảng rule là CHÍNH SÁCH nghiệp vụ, không phải logic suy diễn: các counter
// hội (first-deposit = opened-account VÀ deposit) và counter substring
// (follow-stock khớp mọi nhãn chứa "follow-stock") phải giữ nguyên đúng
// như bảng, không được tự suy lại từ tên counter.
package reportsvc

import (
	crmmodels "sales_crm/internal/api/crm/models"
	reportmodels "sales_crm/internal/api/report/models"
)

// MetricRule là một dòng chính sách: tên counter + predicate trên tag set
// + cách bật counter tương ứng trên vector.
type MetricRule struct {
	Counter string
	Match   func(c *crmmodels.CrmCustomer) bool
	assign  func(v *reportmodels.MetricVector)
}

func hasTag(label string) func(c *crmmodels.CrmCustomer) bool {
	return func(c *crmmodels.CrmCustomer) bool { return c.HasTag(label) }
}

// MetricRules là bảng 14 counter chỉ báo (total không nằm trong bảng,
// luôn bằng 1 cho mỗi record).
var MetricRules = []MetricRule{
	{
		Counter: "notContacted",
		Match:   hasTag(crmmodels.TagNotContacted),
		assign:  func(v *reportmodels.MetricVector) { v.NotContacted = 1 },
	},
	{
		Counter: "readNoReply",
		Match:   hasTag(crmmodels.TagReadNoReply),
		assign:  func(v *reportmodels.MetricVector) { v.ReadNoReply = 1 },
	},
	{
		Counter: "replied",
		Match:   hasTag(crmmodels.TagReplied),
		assign:  func(v *reportmodels.MetricVector) { v.Replied = 1 },
	},
	{
		Counter: "interested",
		Match:   hasTag(crmmodels.TagInterested),
		assign:  func(v *reportmodels.MetricVector) { v.Interested = 1 },
	},
	{
		Counter: "notInterested",
		Match:   hasTag(crmmodels.TagNotInterested),
		assign:  func(v *reportmodels.MetricVector) { v.NotInterested = 1 },
	},
	{
		Counter: "wrongNumber",
		Match:   hasTag(crmmodels.TagWrongNumber),
		assign:  func(v *reportmodels.MetricVector) { v.WrongNumber = 1 },
	},
	{
		Counter: "joinedGroup",
		Match:   hasTag(crmmodels.TagJoinedGroup),
		assign:  func(v *reportmodels.MetricVector) { v.JoinedGroup = 1 },
	},
	{
		Counter: "joinedRoom",
		Match:   hasTag(crmmodels.TagJoinedRoom),
		assign:  func(v *reportmodels.MetricVector) { v.JoinedRoom = 1 },
	},
	{
		// Substring: khớp mọi nhãn dạng follow-stock-<mã>
		Counter: "followStock",
		Match: func(c *crmmodels.CrmCustomer) bool {
			return c.HasTagContaining(crmmodels.TagFollowStockPrefix)
		},
		assign: func(v *reportmodels.MetricVector) { v.FollowStock = 1 },
	},
	{
		Counter: "consulted",
		Match:   hasTag(crmmodels.TagConsulted),
		assign:  func(v *reportmodels.MetricVector) { v.Consulted = 1 },
	},
	{
		Counter: "openedAccount",
		Match:   hasTag(crmmodels.TagOpenedAccount),
		assign:  func(v *reportmodels.MetricVector) { v.OpenedAccount = 1 },
	},
	{
		Counter: "addedFunds",
		Match:   hasTag(crmmodels.TagDeposit),
		assign:  func(v *reportmodels.MetricVector) { v.AddedFunds = 1 },
	},
	{
		// Hội: đã mở tài khoản VÀ đã nạp tiền
		Counter: "firstDeposit",
		Match: func(c *crmmodels.CrmCustomer) bool {
			return c.HasTag(crmmodels.TagOpenedAccount) && c.HasTag(crmmodels.TagDeposit)
		},
		assign: func(v *reportmodels.MetricVector) { v.FirstDeposit = 1 },
	},
	{
		Counter: "reDeposit",
		Match:   hasTag(crmmodels.TagReDeposit),
		assign:  func(v *reportmodels.MetricVector) { v.ReDeposit = 1 },
	},
}

// Extract ánh xạ một khách hàng thành MetricVector.
// Hàm thuần, không lỗi: khách không có tag nào trả về {Total: 1}.
// Chạy lại trên cùng input luôn cho cùng output.
func Extract(c *crmmodels.CrmCustomer) reportmodels.MetricVector {
	v := reportmodels.MetricVector{Total: 1}
	for _, rule := range MetricRules {
		if rule.Match(c) {
			rule.assign(&v)
		}
	}
	return v
}
