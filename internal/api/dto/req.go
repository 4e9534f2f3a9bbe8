package dto

type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"short_code" binding:"required"`
}

type AddDashboardPermissionRequest struct {
	DashboardUID string `json:"dashboard_uid" binding:"required"`
}
