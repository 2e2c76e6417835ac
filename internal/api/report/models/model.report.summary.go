// Package models - các shape của summary bundle (trang báo cáo tĩnh).
package models

// DateChannelRow là một dòng của ma trận ngày × kênh.
// Counts khóa theo kênh (hoặc sentinel unknown-channel), mỗi ô là số
// record khớp, kèm tổng theo dòng.
type DateChannelRow struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// SummaryMeta liệt kê các giá trị distinct quan sát được trong tập
// visible đã lọc, để UI dựng cột bảng.
type SummaryMeta struct {
	Channels []string `json:"channels"`
	Dates    []string `json:"dates"`
	Teams    []string `json:"teams"`
}

// SummaryBundle là kết quả năm phần của trang báo cáo tĩnh.
type SummaryBundle struct {
	DateChannelMatrix []DateChannelRow `json:"dateChannelMatrix"`
	ChannelSummary    AnalysisResult   `json:"channelSummary"`
	AgentSummary      AnalysisResult   `json:"agentSummary"`
	DateSummary       AnalysisResult   `json:"dateSummary"`
	TeamSummary       AnalysisResult   `json:"teamSummary"`
	Meta              SummaryMeta      `json:"meta"`
}
