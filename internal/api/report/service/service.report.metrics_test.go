// Package reportsvc - Test metric extractor: khách hàng -> MetricVector.
package reportsvc

import (
	"reflect"
	"testing"

	crmmodels "sales_crm/internal/api/crm/models"
	reportmodels "sales_crm/internal/api/report/models"
)

func customerWithTags(labels ...string) *crmmodels.CrmCustomer {
	tags := make([]crmmodels.CustomerTag, 0, len(labels))
	for _, l := range labels {
		tags = append(tags, crmmodels.CustomerTag{Label: l})
	}
	return &crmmodels.CrmCustomer{Name: "test", Tags: tags}
}

func TestExtract_NoTags(t *testing.T) {
	v := Extract(customerWithTags())
	want := reportmodels.MetricVector{Total: 1}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("khách không có tag phải cho {Total: 1}, nhận được %+v", v)
	}
}

func TestExtract_StatusTags(t *testing.T) {
	v := Extract(customerWithTags(crmmodels.TagReplied, crmmodels.TagInterested))
	if v.Total != 1 {
		t.Errorf("total phải là 1 cho mỗi record, nhận được %d", v.Total)
	}
	if v.Replied != 1 || v.Interested != 1 {
		t.Errorf("replied/interested phải là 1, nhận được %+v", v)
	}
	if v.NotContacted != 0 || v.OpenedAccount != 0 {
		t.Errorf("counter không khớp tag phải là 0, nhận được %+v", v)
	}
}

func TestExtract_FollowStockSubstring(t *testing.T) {
	// Mọi nhãn chứa "follow-stock" đều bật followStock
	for _, label := range []string{"follow-stock-VNM", "follow-stock-HPG", "follow-stock"} {
		v := Extract(customerWithTags(label))
		if v.FollowStock != 1 {
			t.Errorf("nhãn %q phải bật followStock, nhận được %+v", label, v)
		}
	}

	v := Extract(customerWithTags(crmmodels.TagJoinedGroup))
	if v.FollowStock != 0 {
		t.Errorf("nhãn không chứa follow-stock không được bật followStock, nhận được %+v", v)
	}
}

func TestExtract_FirstDepositRequiresBoth(t *testing.T) {
	// Chỉ deposit: addedFunds bật, firstDeposit không
	v := Extract(customerWithTags(crmmodels.TagDeposit))
	if v.AddedFunds != 1 {
		t.Errorf("tag deposit phải bật addedFunds, nhận được %+v", v)
	}
	if v.FirstDeposit != 0 {
		t.Errorf("firstDeposit đòi hỏi cả opened-account lẫn deposit, nhận được %+v", v)
	}

	// Chỉ opened-account: firstDeposit không
	v = Extract(customerWithTags(crmmodels.TagOpenedAccount))
	if v.OpenedAccount != 1 || v.FirstDeposit != 0 {
		t.Errorf("chỉ opened-account không được bật firstDeposit, nhận được %+v", v)
	}

	// Cả hai: firstDeposit bật
	v = Extract(customerWithTags(crmmodels.TagOpenedAccount, crmmodels.TagDeposit))
	if v.FirstDeposit != 1 {
		t.Errorf("opened-account + deposit phải bật firstDeposit, nhận được %+v", v)
	}
}

func TestExtract_IndicatorNotCount(t *testing.T) {
	// Tag lặp không làm counter vượt quá 1
	v := Extract(customerWithTags(crmmodels.TagDeposit, crmmodels.TagDeposit))
	if v.AddedFunds != 1 {
		t.Errorf("counter là chỉ báo 0/1, không phải đếm số tag: %+v", v)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	c := customerWithTags(crmmodels.TagOpenedAccount, crmmodels.TagDeposit, "follow-stock-VNM")
	first := Extract(c)
	second := Extract(c)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Extract phải cho cùng kết quả trên cùng input: %+v != %+v", first, second)
	}
}

func TestMetricRules_EachPredicate(t *testing.T) {
	// Mỗi dòng: counter -> tập tag tối thiểu bật đúng counter đó
	trigger := map[string][]string{
		"notContacted":  {crmmodels.TagNotContacted},
		"readNoReply":   {crmmodels.TagReadNoReply},
		"replied":       {crmmodels.TagReplied},
		"interested":    {crmmodels.TagInterested},
		"notInterested": {crmmodels.TagNotInterested},
		"wrongNumber":   {crmmodels.TagWrongNumber},
		"joinedGroup":   {crmmodels.TagJoinedGroup},
		"joinedRoom":    {crmmodels.TagJoinedRoom},
		"followStock":   {"follow-stock-HPG"},
		"consulted":     {crmmodels.TagConsulted},
		"openedAccount": {crmmodels.TagOpenedAccount},
		"addedFunds":    {crmmodels.TagDeposit},
		"firstDeposit":  {crmmodels.TagOpenedAccount, crmmodels.TagDeposit},
		"reDeposit":     {crmmodels.TagReDeposit},
	}

	for _, rule := range MetricRules {
		labels, ok := trigger[rule.Counter]
		if !ok {
			t.Errorf("counter %q không có case kích hoạt trong test", rule.Counter)
			continue
		}
		if !rule.Match(customerWithTags(labels...)) {
			t.Errorf("predicate của %q phải khớp tập tag %v", rule.Counter, labels)
		}
		if rule.Match(customerWithTags()) {
			t.Errorf("predicate của %q không được khớp record không có tag", rule.Counter)
		}
	}
}

func TestMetricRules_FourteenDistinctCounters(t *testing.T) {
	if len(MetricRules) != 14 {
		t.Fatalf("bảng rule phải có 14 counter chỉ báo, nhận được %d", len(MetricRules))
	}
	seen := map[string]bool{}
	for _, rule := range MetricRules {
		if seen[rule.Counter] {
			t.Errorf("counter %q xuất hiện nhiều lần trong bảng rule", rule.Counter)
		}
		seen[rule.Counter] = true
	}
}
