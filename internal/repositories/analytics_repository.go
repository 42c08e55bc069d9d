package repositories

import (
	"time"

	"gorm.io/gorm"

	"proposalforge_backend/internal/models"
)

// Aggregation row types. The dashboard contracts are expressed as named,
// typed query functions with explicit parameters instead of ad hoc
// filter documents.

type MonthCount struct {
	Month     time.Time
	Proposals int64
}

type DailyUsage struct {
	Day       time.Time
	Proposals int64
	AvgScore  float64
}

type PlanUsage struct {
	Plan        string
	Proposals   int64
	UniqueUsers int64
}

type TopUser struct {
	UserID    string
	Name      string
	Email     string
	Plan      string
	Proposals int64
	AvgScore  float64
}

type ToneCount struct {
	Tone  string
	Count int64
}

type CountryCount struct {
	Country string
	Users   int64
}

type AnalyticsRepository interface {
	// PlanCounts counts non-admin users per plan.
	PlanCounts() (map[string]int64, error)
	// MonthlyUsage buckets non-admin proposals by calendar month since the
	// given instant; months without data are simply absent.
	MonthlyUsage(since time.Time) ([]MonthCount, error)
	DailyUsage(since time.Time) ([]DailyUsage, error)
	UsageByPlan(since time.Time) ([]PlanUsage, error)
	TopUsers(since time.Time, limit int) ([]TopUser, error)
	ToneBreakdown(since time.Time) ([]ToneCount, error)
	// CountryCounts groups users with a resolved country, most users first.
	CountryCounts() ([]CountryCount, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

// nonAdminProposals joins proposals to their non-admin owners within the
// window. Every usage aggregate excludes admin-generated data.
func (r *AnalyticsRepositoryImpl) nonAdminProposals(since time.Time) *gorm.DB {
	return r.db.Table("proposals").
		Joins("JOIN users ON users.id = proposals.user_id AND users.role = ?", models.UserRoleUser).
		Where("proposals.created_at >= ?", since)
}

func (r *AnalyticsRepositoryImpl) PlanCounts() (map[string]int64, error) {
	var rows []struct {
		Plan  string
		Count int64
	}
	err := r.db.Model(&models.User{}).
		Select("plan, COUNT(*) as count").
		Where("role = ?", models.UserRoleUser).
		Group("plan").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		string(models.PlanFree): 0,
		string(models.PlanPro):  0,
	}
	for _, row := range rows {
		counts[row.Plan] = row.Count
	}
	return counts, nil
}

func (r *AnalyticsRepositoryImpl) MonthlyUsage(since time.Time) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.nonAdminProposals(since).
		Select("DATE_TRUNC('month', proposals.created_at) AS month, COUNT(*) AS proposals").
		Group("1").
		Order("1 ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) DailyUsage(since time.Time) ([]DailyUsage, error) {
	var rows []DailyUsage
	err := r.nonAdminProposals(since).
		Select("DATE_TRUNC('day', proposals.created_at) AS day, COUNT(*) AS proposals, AVG(proposals.score) AS avg_score").
		Group("1").
		Order("1 ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) UsageByPlan(since time.Time) ([]PlanUsage, error) {
	var rows []PlanUsage
	err := r.nonAdminProposals(since).
		Select("users.plan AS plan, COUNT(*) AS proposals, COUNT(DISTINCT proposals.user_id) AS unique_users").
		Group("users.plan").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) TopUsers(since time.Time, limit int) ([]TopUser, error) {
	var rows []TopUser
	err := r.nonAdminProposals(since).
		Select(`proposals.user_id AS user_id, users.name AS name,
			users.email AS email, users.plan AS plan,
			COUNT(*) AS proposals, AVG(proposals.score) AS avg_score`).
		Group("proposals.user_id, users.name, users.email, users.plan").
		Order("proposals DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) ToneBreakdown(since time.Time) ([]ToneCount, error) {
	var rows []ToneCount
	err := r.nonAdminProposals(since).
		Select("proposals.tone AS tone, COUNT(*) AS count").
		Group("proposals.tone").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) CountryCounts() ([]CountryCount, error) {
	var rows []CountryCount
	err := r.db.Model(&models.User{}).
		Select("country, COUNT(*) AS users").
		Where("country <> ''").
		Group("country").
		Order("users DESC").
		Scan(&rows).Error
	return rows, err
}
