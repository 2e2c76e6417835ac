// Package reportsvc - Engine báo cáo: visibility -> filter -> aggregate.
//
// Mỗi request là một lần tính đồng bộ trên snapshot đọc một lần ở đầu
// request (danh bạ user + tập record); các hàm fold đều thuần nên nhiều
// request chạy song song không cần khóa.
package reportsvc

import (
	"context"

	authmodels "sales_crm/internal/api/auth/models"
	crmdto "sales_crm/internal/api/crm/dto"
	crmmodels "sales_crm/internal/api/crm/models"
	crmvc "sales_crm/internal/api/crm/service"
	reportmodels "sales_crm/internal/api/report/models"
)

// ReportService dựng các báo cáo cho dashboard và trang báo cáo tĩnh.
// Dùng chung visibility resolver với danh sách khách hàng — một điểm
// dispatch duy nhất theo role.
type ReportService struct {
	customerService *crmvc.CrmCustomerService
}

// NewReportService tạo ReportService mới.
func NewReportService() (*ReportService, error) {
	customerService, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, err
	}
	return &ReportService{customerService: customerService}, nil
}

// snapshot đọc danh bạ và tập record visible đúng một lần.
func (s *ReportService) snapshot(ctx context.Context, caller authmodels.User, query *crmdto.CustomerListQuery) (*UserDirectory, []crmmodels.CrmCustomer, error) {
	users, err := s.customerService.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.customerService.VisibleCustomersIn(ctx, caller, query, users)
	if err != nil {
		return nil, nil, err
	}
	return NewUserDirectory(users), records, nil
}

// Analysis trả về breakdown một dimension cho dashboard report builder.
// Role không nhận diện được cho kết quả rỗng hợp lệ (fail closed ở
// visibility resolver, không phải lỗi HTTP).
func (s *ReportService) Analysis(ctx context.Context, caller authmodels.User, dim Dimension, query *crmdto.CustomerListQuery) (reportmodels.AnalysisResult, error) {
	dir, records, err := s.snapshot(ctx, caller, query)
	if err != nil {
		return reportmodels.AnalysisResult{}, err
	}
	return Aggregate(records, dim, dir), nil
}

// Summary trả về bundle năm phần cho trang báo cáo tĩnh.
func (s *ReportService) Summary(ctx context.Context, caller authmodels.User, query *crmdto.CustomerListQuery) (reportmodels.SummaryBundle, error) {
	dir, records, err := s.snapshot(ctx, caller, query)
	if err != nil {
		return reportmodels.SummaryBundle{}, err
	}
	return BuildSummaryBundle(records, dir), nil
}
