// Package reportsvc - Test aggregator: bảo toàn tổng và thứ tự nhóm.
package reportsvc

import (
	"reflect"
	"testing"

	crmmodels "sales_crm/internal/api/crm/models"
	reportmodels "sales_crm/internal/api/report/models"
)

func TestAggregate_TotalsConservation(t *testing.T) {
	records := []crmmodels.CrmCustomer{
		{Channel: "ads", Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}}},
		{Channel: "referral", Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}, {Label: crmmodels.TagDeposit}}},
		{Channel: "ads"},
		{Channel: ""}, // bucket unknown
	}

	result := Aggregate(records, DimensionChannel, nil)

	// Totals fold độc lập nhưng phải bằng tổng các nhóm
	var sum reportmodels.MetricVector
	for _, g := range result.Results {
		sum.Add(g.Metrics)
	}
	if !reflect.DeepEqual(sum, result.Totals) {
		t.Errorf("tổng các nhóm phải bằng totals: %+v != %+v", sum, result.Totals)
	}

	if result.Totals.Total != len(records) {
		t.Errorf("totals.Total phải bằng số record %d, nhận được %d", len(records), result.Totals.Total)
	}
	if result.Meta.RecordCount != len(records) {
		t.Errorf("meta.RecordCount phải là %d, nhận được %d", len(records), result.Meta.RecordCount)
	}
}

func TestAggregate_DateAscendingUnknownLast(t *testing.T) {
	records := []crmmodels.CrmCustomer{
		{Date: "2024-02-10"},
		{Date: "bad-date"},
		{Date: "2024-01-05"},
		{Date: "2024-03-01"},
	}

	result := Aggregate(records, DimensionDay, nil)

	wantKeys := []string{"2024-01-05", "2024-02-10", "2024-03-01", "unknown-day"}
	if len(result.Results) != len(wantKeys) {
		t.Fatalf("phải có %d nhóm, nhận được %d", len(wantKeys), len(result.Results))
	}
	for i, want := range wantKeys {
		if result.Results[i].DimensionKey != want {
			t.Errorf("nhóm thứ %d phải là %s, nhận được %s", i, want, result.Results[i].DimensionKey)
		}
	}
}

func TestAggregate_NonDateTotalDescStableTie(t *testing.T) {
	// referral có 3 record, ads và organic hòa 2-2: ads xuất hiện trước nên đứng trước
	records := []crmmodels.CrmCustomer{
		{Channel: "ads"},
		{Channel: "referral"},
		{Channel: "organic"},
		{Channel: "referral"},
		{Channel: "ads"},
		{Channel: "organic"},
		{Channel: "referral"},
		{Channel: ""}, // unknown luôn cuối dù Total bằng bao nhiêu
	}

	result := Aggregate(records, DimensionChannel, nil)

	wantKeys := []string{"referral", "ads", "organic", "unknown-channel"}
	for i, want := range wantKeys {
		if result.Results[i].DimensionKey != want {
			t.Errorf("nhóm thứ %d phải là %s, nhận được %s", i, want, result.Results[i].DimensionKey)
		}
	}
}

func TestAggregate_PerGroupMetrics(t *testing.T) {
	// Ba khách hàng hai kênh: từng ô metric của từng nhóm phải đúng,
	// không chỉ tổng và thứ tự
	records := []crmmodels.CrmCustomer{
		{Channel: "ads", Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}}},
		{Channel: "referral", Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagOpenedAccount}, {Label: crmmodels.TagDeposit}}},
		{Channel: "ads"},
	}

	result := Aggregate(records, DimensionChannel, nil)

	byKey := map[string]reportmodels.MetricVector{}
	for _, g := range result.Results {
		byKey[g.DimensionKey] = g.Metrics
	}

	ads, ok := byKey["ads"]
	if !ok {
		t.Fatal("thiếu nhóm ads")
	}
	if ads.Total != 2 || ads.OpenedAccount != 1 {
		t.Errorf("nhóm ads phải có total=2 openedAccount=1, nhận được %+v", ads)
	}
	if ads.AddedFunds != 0 || ads.FirstDeposit != 0 {
		t.Errorf("nhóm ads không có deposit nào, nhận được %+v", ads)
	}

	referral, ok := byKey["referral"]
	if !ok {
		t.Fatal("thiếu nhóm referral")
	}
	if referral.Total != 1 || referral.OpenedAccount != 1 || referral.AddedFunds != 1 || referral.FirstDeposit != 1 {
		t.Errorf("nhóm referral phải có total=1 openedAccount=1 addedFunds=1 firstDeposit=1, nhận được %+v", referral)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []crmmodels.CrmCustomer{
		{Channel: "ads", Tags: []crmmodels.CustomerTag{{Label: crmmodels.TagReplied}}},
		{Channel: "referral"},
		{Channel: ""},
	}
	first := Aggregate(records, DimensionChannel, nil)
	second := Aggregate(records, DimensionChannel, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate phải cho cùng kết quả trên cùng input")
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := Aggregate(nil, DimensionChannel, nil)
	if len(result.Results) != 0 {
		t.Errorf("không có record thì không có nhóm, nhận được %d nhóm", len(result.Results))
	}
	if result.Totals.Total != 0 {
		t.Errorf("totals phải rỗng, nhận được %+v", result.Totals)
	}
}
