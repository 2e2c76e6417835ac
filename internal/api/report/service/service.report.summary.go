// Package reportsvc - Report assembler: dựng summary bundle năm phần.
package reportsvc

import (
	"sort"

	crmmodels "sales_crm/internal/api/crm/models"
	reportmodels "sales_crm/internal/api/report/models"
)

// BuildSummaryBundle dựng bundle từ tập record ĐÃ qua visibility và filter.
// Bốn bảng summary là bốn lần gọi Aggregate (channel, agent, day, team);
// record orphan (createdBy không resolve được) nằm trong dòng unknown của
// bảng agent/team thay vì bị bỏ rơi, để tổng luôn bảo toàn.
func BuildSummaryBundle(records []crmmodels.CrmCustomer, dir *UserDirectory) reportmodels.SummaryBundle {
	return reportmodels.SummaryBundle{
		DateChannelMatrix: buildDateChannelMatrix(records, dir),
		ChannelSummary:    Aggregate(records, DimensionChannel, dir),
		AgentSummary:      Aggregate(records, DimensionAgent, dir),
		DateSummary:       Aggregate(records, DimensionDay, dir),
		TeamSummary:       Aggregate(records, DimensionTeam, dir),
		Meta:              buildSummaryMeta(records, dir),
	}
}

// buildDateChannelMatrix đếm record theo (ngày, kênh).
// Ma trận dense: mỗi dòng có đủ cột của mọi kênh quan sát được
// (ô không có record là 0); ngày giảm dần, dòng unknown cuối cùng.
func buildDateChannelMatrix(records []crmmodels.CrmCustomer, dir *UserDirectory) []reportmodels.DateChannelRow {
	channels := map[string]bool{}
	cells := map[string]map[string]int{}

	for i := range records {
		record := &records[i]
		dateKey := GroupKeyFor(record, DimensionDay, dir).Wire(DimensionDay)
		channelKey := GroupKeyFor(record, DimensionChannel, dir).Wire(DimensionChannel)

		channels[channelKey] = true
		if cells[dateKey] == nil {
			cells[dateKey] = map[string]int{}
		}
		cells[dateKey][channelKey]++
	}

	channelList := make([]string, 0, len(channels))
	for ch := range channels {
		channelList = append(channelList, ch)
	}
	sort.Strings(channelList)

	dates := make([]string, 0, len(cells))
	for d := range cells {
		dates = append(dates, d)
	}
	sortDatesDescUnknownLast(dates)

	rows := make([]reportmodels.DateChannelRow, 0, len(dates))
	for _, d := range dates {
		counts := map[string]int{}
		total := 0
		for _, ch := range channelList {
			n := cells[d][ch]
			counts[ch] = n
			total += n
		}
		rows = append(rows, reportmodels.DateChannelRow{Date: d, Counts: counts, Total: total})
	}
	return rows
}

// buildSummaryMeta liệt kê kênh, ngày, team distinct trong tập đã lọc.
func buildSummaryMeta(records []crmmodels.CrmCustomer, dir *UserDirectory) reportmodels.SummaryMeta {
	channels := map[string]bool{}
	dates := map[string]bool{}
	teams := map[string]bool{}

	for i := range records {
		record := &records[i]
		channels[GroupKeyFor(record, DimensionChannel, dir).Wire(DimensionChannel)] = true
		dates[GroupKeyFor(record, DimensionDay, dir).Wire(DimensionDay)] = true
		teams[GroupKeyFor(record, DimensionTeam, dir).Wire(DimensionTeam)] = true
	}

	meta := reportmodels.SummaryMeta{
		Channels: setToSorted(channels),
		Dates:    setToSorted(dates),
		Teams:    setToSorted(teams),
	}
	sortDatesDescUnknownLast(meta.Dates)
	return meta
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// sortDatesDescUnknownLast sắp ngày canonical giảm dần, sentinel unknown cuối.
func sortDatesDescUnknownLast(dates []string) {
	unknown := "unknown-" + string(DimensionDay)
	sort.SliceStable(dates, func(i, j int) bool {
		if dates[i] == unknown {
			return false
		}
		if dates[j] == unknown {
			return true
		}
		return dates[i] > dates[j]
	})
}
