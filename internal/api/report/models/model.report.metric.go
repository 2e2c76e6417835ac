// Package models - MetricVector thuộc domain Report.
package models

// MetricVector là bộ 15 counter cố định cho một nhóm báo cáo.
// Cộng được theo từng phần tử; mỗi khách hàng đóng góp tối đa 1
// vào total và tối đa 1 vào mỗi counter còn lại (cờ 0/1, không
// đếm số lần xuất hiện của tag).
type MetricVector struct {
	Total         int `json:"total"`
	NotContacted  int `json:"notContacted"`
	ReadNoReply   int `json:"readNoReply"`
	Replied       int `json:"replied"`
	Interested    int `json:"interested"`
	NotInterested int `json:"notInterested"`
	WrongNumber   int `json:"wrongNumber"`
	JoinedGroup   int `json:"joinedGroup"`
	JoinedRoom    int `json:"joinedRoom"`
	FollowStock   int `json:"followStock"`
	Consulted     int `json:"consulted"`
	OpenedAccount int `json:"openedAccount"`
	AddedFunds    int `json:"addedFunds"`
	FirstDeposit  int `json:"firstDeposit"`
	ReDeposit     int `json:"reDeposit"`
}

// Add cộng dồn vector khác vào vector hiện tại theo từng phần tử.
func (v *MetricVector) Add(o MetricVector) {
	v.Total += o.Total
	v.NotContacted += o.NotContacted
	v.ReadNoReply += o.ReadNoReply
	v.Replied += o.Replied
	v.Interested += o.Interested
	v.NotInterested += o.NotInterested
	v.WrongNumber += o.WrongNumber
	v.JoinedGroup += o.JoinedGroup
	v.JoinedRoom += o.JoinedRoom
	v.FollowStock += o.FollowStock
	v.Consulted += o.Consulted
	v.OpenedAccount += o.OpenedAccount
	v.AddedFunds += o.AddedFunds
	v.FirstDeposit += o.FirstDeposit
	v.ReDeposit += o.ReDeposit
}

// GroupedResult là một dòng kết quả của Aggregate theo một dimension.
type GroupedResult struct {
	DimensionKey   string       `json:"dimensionKey"`
	DimensionLabel string       `json:"dimensionLabel"`
	Metrics        MetricVector `json:"metrics"`
}

// AnalysisMeta mô tả ngữ cảnh của một lần aggregate.
type AnalysisMeta struct {
	Dimension   string `json:"dimension"`
	RecordCount int    `json:"recordCount"`
}

// AnalysisResult là kết quả đầy đủ của một lần aggregate.
// Bất biến: Totals bằng tổng từng phần tử của Results[i].Metrics,
// và Totals.Total == RecordCount.
type AnalysisResult struct {
	Meta    AnalysisMeta    `json:"meta"`
	Results []GroupedResult `json:"results"`
	Totals  MetricVector    `json:"totals"`
}
