// Package reportsvc - Aggregator: fold Extract theo một dimension.
package reportsvc

import (
	"sort"

	crmmodels "sales_crm/internal/api/crm/models"
	reportmodels "sales_crm/internal/api/report/models"
)

// aggregateGroup giữ trạng thái fold của một khóa nhóm.
type aggregateGroup struct {
	key       GroupKey
	label     string
	metrics   reportmodels.MetricVector
	firstSeen int // thứ tự xuất hiện đầu tiên, dùng làm tie-break ổn định
}

// Aggregate fold các khách hàng theo dimension thành AnalysisResult.
// Nhãn của mỗi nhóm cố định từ lần xuất hiện đầu của khóa (LabelFor là
// hàm thuần theo (key, dimension) nên không trôi theo record).
//
// Thứ tự kết quả:
//   - dimension ngày (day/week/month): tăng dần theo khóa canonical
//     (lexicographic trùng thời gian);
//   - các dimension khác: giảm dần theo metrics.Total, hòa thì giữ
//     thứ tự xuất hiện đầu tiên;
//   - bucket unknown luôn đứng cuối.
//
// Totals được fold độc lập trên toàn bộ record, không cộng lại từ các
// nhóm đã dựng; hai giá trị bắt buộc bằng nhau.
func Aggregate(records []crmmodels.CrmCustomer, dim Dimension, dir *UserDirectory) reportmodels.AnalysisResult {
	groups := map[string]*aggregateGroup{}
	order := []*aggregateGroup{}

	var totals reportmodels.MetricVector

	for i := range records {
		record := &records[i]

		key := GroupKeyFor(record, dim, dir)
		wire := key.Wire(dim)

		g, ok := groups[wire]
		if !ok {
			g = &aggregateGroup{
				key:       key,
				label:     LabelFor(key, dim, dir),
				firstSeen: len(order),
			}
			groups[wire] = g
			order = append(order, g)
		}
		g.metrics.Add(Extract(record))

		// Fold totals độc lập với các nhóm
		totals.Add(Extract(record))
	}

	sortGroups(order, dim)

	results := make([]reportmodels.GroupedResult, 0, len(order))
	for _, g := range order {
		results = append(results, reportmodels.GroupedResult{
			DimensionKey:   g.key.Wire(dim),
			DimensionLabel: g.label,
			Metrics:        g.metrics,
		})
	}

	return reportmodels.AnalysisResult{
		Meta: reportmodels.AnalysisMeta{
			Dimension:   string(dim),
			RecordCount: len(records),
		},
		Results: results,
		Totals:  totals,
	}
}

// sortGroups sắp xếp in-place theo quy tắc của từng loại dimension.
func sortGroups(order []*aggregateGroup, dim Dimension) {
	isDate := dim == DimensionDay || dim == DimensionWeek || dim == DimensionMonth

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]

		// Bucket unknown luôn cuối
		if a.key.Known != b.key.Known {
			return a.key.Known
		}

		if isDate {
			return a.key.Value < b.key.Value
		}
		if a.metrics.Total != b.metrics.Total {
			return a.metrics.Total > b.metrics.Total
		}
		return a.firstSeen < b.firstSeen
	})
}
