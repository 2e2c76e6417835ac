// Package reportsvc - Test report assembler: summary bundle năm phần.
package reportsvc

import (
	"testing"

	authmodels "sales_crm/internal/api/auth/models"
	crmmodels "sales_crm/internal/api/crm/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSummaryBundle_FunnelScenario(t *testing.T) {
	agent := authmodels.User{ID: primitive.NewObjectID(), Name: "An", Team: "alpha"}
	dir := NewUserDirectory([]authmodels.User{agent})

	records := []crmmodels.CrmCustomer{
		{
			Channel: "ads", Date: "2024-01-04", CreatedBy: agent.ID,
			Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}},
		},
		{
			Channel: "referral", Date: "2024-01-05", CreatedBy: agent.ID,
			Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}, {Label: crmmodels.TagDeposit}},
		},
		{
			Channel: "ads", Date: "2024-01-05", CreatedBy: agent.ID,
		},
	}

	bundle := BuildSummaryBundle(records, dir)

	totals := bundle.ChannelSummary.Totals
	if totals.Total != 3 {
		t.Errorf("total phải là 3, nhận được %d", totals.Total)
	}
	if totals.OpenedAccount != 2 {
		t.Errorf("openedAccount phải là 2, nhận được %d", totals.OpenedAccount)
	}
	if totals.AddedFunds != 1 || totals.FirstDeposit != 1 {
		t.Errorf("addedFunds và firstDeposit phải là 1, nhận được %+v", totals)
	}

	// Bốn bảng summary phải cùng totals (cùng tập record)
	for name, r := range map[string]int{
		"channel": bundle.ChannelSummary.Totals.Total,
		"agent":   bundle.AgentSummary.Totals.Total,
		"day":     bundle.DateSummary.Totals.Total,
		"team":    bundle.TeamSummary.Totals.Total,
	} {
		if r != 3 {
			t.Errorf("bảng %s phải có totals.Total = 3, nhận được %d", name, r)
		}
	}

	// Meta: các giá trị distinct trong tập đã lọc
	if got := bundle.Meta.Channels; len(got) != 2 {
		t.Errorf("meta phải có 2 kênh distinct, nhận được %v", got)
	}
	if got := bundle.Meta.Teams; len(got) != 1 || got[0] != "alpha" {
		t.Errorf("meta phải có team alpha, nhận được %v", got)
	}
}

func TestBuildDateChannelMatrix_DenseAndDescending(t *testing.T) {
	records := []crmmodels.CrmCustomer{
		{Channel: "ads", Date: "2024-01-04"},
		{Channel: "referral", Date: "2024-01-05"},
		{Channel: "ads", Date: "2024-01-05"},
		{Channel: "ads", Date: ""}, // ngày unknown
	}

	rows := buildDateChannelMatrix(records, nil)

	wantDates := []string{"2024-01-05", "2024-01-04", "unknown-day"}
	if len(rows) != len(wantDates) {
		t.Fatalf("phải có %d dòng, nhận được %d", len(wantDates), len(rows))
	}
	for i, want := range wantDates {
		if rows[i].Date != want {
			t.Errorf("dòng thứ %d phải là %s, nhận được %s", i, want, rows[i].Date)
		}
	}

	// Ma trận dense: mỗi dòng có đủ cột của mọi kênh quan sát được
	for _, row := range rows {
		if _, ok := row.Counts["ads"]; !ok {
			t.Errorf("dòng %s thiếu cột ads", row.Date)
		}
		if _, ok := row.Counts["referral"]; !ok {
			t.Errorf("dòng %s thiếu cột referral", row.Date)
		}
	}

	// Ô không có record là 0, tổng dòng là tổng các ô
	first := rows[0]
	if first.Counts["ads"] != 1 || first.Counts["referral"] != 1 || first.Total != 2 {
		t.Errorf("dòng 2024-01-05 phải là ads=1 referral=1 total=2, nhận được %+v", first)
	}
	last := rows[2]
	if last.Counts["referral"] != 0 || last.Counts["ads"] != 1 || last.Total != 1 {
		t.Errorf("dòng unknown phải là ads=1 referral=0 total=1, nhận được %+v", last)
	}
}

func TestBuildSummaryBundle_OrphanInUnknownRow(t *testing.T) {
	agent := authmodels.User{ID: primitive.NewObjectID(), Name: "An", Team: "alpha"}
	dir := NewUserDirectory([]authmodels.User{agent})

	records := []crmmodels.CrmCustomer{
		{Channel: "ads", Date: "2024-01-04", CreatedBy: agent.ID},
		{Channel: "ads", Date: "2024-01-04"}, // orphan: không có createdBy
	}

	bundle := BuildSummaryBundle(records, dir)

	// Orphan nằm trong dòng unknown của bảng agent, không bị bỏ rơi
	if bundle.AgentSummary.Totals.Total != 2 {
		t.Fatalf("orphan phải được đếm, totals.Total = %d", bundle.AgentSummary.Totals.Total)
	}
	foundUnknown := false
	for _, g := range bundle.AgentSummary.Results {
		if g.DimensionKey == "unknown-agent" {
			foundUnknown = true
			if g.Metrics.Total != 1 {
				t.Errorf("dòng unknown-agent phải có Total = 1, nhận được %d", g.Metrics.Total)
			}
		}
	}
	if !foundUnknown {
		t.Error("bảng agent phải có dòng unknown-agent chứa record orphan")
	}
}
