package dto

// Query DTOs are bound from query strings, hence the form tags.

type AdminUsersQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Plan   string `form:"plan"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
}

type AdminProposalsQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
}

type UsageQuery struct {
	Days int `form:"days"`
}

type ActivityQuery struct {
	Limit int `form:"limit"`
}

type UpdateUserRequest struct {
	Plan string `json:"plan" validate:"omitempty,oneof=Free Pro"`
	Role string `json:"role" validate:"omitempty,oneof=user admin"`
}

type MonthlyPoint struct {
	Month     string `json:"month"`
	Proposals int64  `json:"proposals"`
}

type DashboardStats struct {
	TotalUsers          int64          `json:"totalUsers"`
	ProUsers            int64          `json:"proUsers"`
	FreeUsers           int64          `json:"freeUsers"`
	TotalProposals      int64          `json:"totalProposals"`
	AvgProposalsPerUser float64        `json:"avgProposalsPerUser"`
	MRR                 int64          `json:"mrr"`
	MonthlySeries       []MonthlyPoint `json:"monthlySeries"`
}

type AdminUserRow struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Plan               string `json:"plan"`
	Country            string `json:"country,omitempty"`
	ProposalsThisMonth int    `json:"proposalsThisMonth"`
	TotalProposals     int64  `json:"totalProposals"`
	CreatedAt          string `json:"createdAt"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// DailyPoint carries the daily chart row; avgScore is a whole number,
// one-decimal averages are reserved for the top-user rows.
type DailyPoint struct {
	Day       string `json:"day"`
	Proposals int64  `json:"proposals"`
	AvgScore  int    `json:"avgScore"`
}

type PlanUsageRow struct {
	Plan        string `json:"plan"`
	Proposals   int64  `json:"proposals"`
	UniqueUsers int64  `json:"uniqueUsers"`
}

type TopUserRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Plan      string  `json:"plan"`
	Proposals int64   `json:"proposals"`
	AvgScore  float64 `json:"avgScore"`
}

type ToneRow struct {
	Tone  string `json:"tone"`
	Count int64  `json:"count"`
}

type UsageReport struct {
	Days    int            `json:"days"`
	Daily   []DailyPoint   `json:"daily"`
	ByPlan  []PlanUsageRow `json:"byPlan"`
	Top     []TopUserRow   `json:"topUsers"`
	ByTone  []ToneRow      `json:"byTone"`
}

type GeoRow struct {
	Country string  `json:"country"`
	Users   int64   `json:"users"`
	Pct     float64 `json:"pct"`
}

type AdminSettings struct {
	FreeMonthlyCap  int    `json:"freeMonthlyCap"`
	ProMonthlyPrice int    `json:"proMonthlyPrice"`
	CohereModel     string `json:"cohereModel"`
	DefaultTone     string `json:"defaultTone"`
	DefaultLength   string `json:"defaultLength"`
	FallbackKeySet  bool   `json:"fallbackKeySet"`
}
