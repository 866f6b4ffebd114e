package dashboard

import "context"

type DashboardService interface {
	GetAdminDashboard(ctx context.Context, req AdminDashboardRequest) (AdminDashboardResponse, error)
	GetEmployeeDashboard(ctx context.Context, req EmployeeDashboardRequest) (EmployeeDashboardResponse, error)
}
