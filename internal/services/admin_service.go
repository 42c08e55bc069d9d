package services

import (
	"math"
	"time"

	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

// Listing and reporting bounds.
const (
	defaultPageSize = 8
	maxPageSize     = 50
	defaultActivity = 20
	maxActivity     = 50
	minUsageDays    = 7
	maxUsageDays    = 90
	defaultDays     = 30
	topUsersLimit   = 10
	geoTopCountries = 7
	statsMonths     = 6
)

type AdminService interface {
	Stats() (*dto.DashboardStats, error)
	Users(q *dto.AdminUsersQuery) ([]dto.AdminUserRow, *dto.Pagination, error)
	UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.AuthUser, error)
	// DeleteUser removes the user and every proposal they own.
	DeleteUser(userID string) error
	Proposals(q *dto.AdminProposalsQuery) ([]repositories.ProposalWithOwner, *dto.Pagination, error)
	DeleteProposal(proposalID string) error
	Activity(limit int) ([]repositories.ProposalWithOwner, error)
	Usage(days int) (*dto.UsageReport, error)
	Settings() *dto.AdminSettings
	Geo() ([]dto.GeoRow, error)
}

type AdminServiceImpl struct {
	userRepo      repositories.UserRepository
	proposalRepo  repositories.ProposalRepository
	analyticsRepo repositories.AnalyticsRepository
	cfg           *config.Config
	now           func() time.Time
}

func NewAdminService(
	userRepo repositories.UserRepository,
	proposalRepo repositories.ProposalRepository,
	analyticsRepo repositories.AnalyticsRepository,
	cfg *config.Config,
) AdminService {
	return &AdminServiceImpl{
		userRepo:      userRepo,
		proposalRepo:  proposalRepo,
		analyticsRepo: analyticsRepo,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (s *AdminServiceImpl) Stats() (*dto.DashboardStats, error) {
	plans, err := s.analyticsRepo.PlanCounts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	free := plans[string(models.PlanFree)]
	pro := plans[string(models.PlanPro)]
	total := free + pro

	totalProposals, err := s.proposalRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	series, err := s.monthlySeries()
	if err != nil {
		return nil, err
	}

	avgPerUser := 0.0
	if total > 0 {
		avgPerUser = round1(float64(totalProposals) / float64(total))
	}

	return &dto.DashboardStats{
		TotalUsers:          total,
		ProUsers:            pro,
		FreeUsers:           free,
		TotalProposals:      totalProposals,
		AvgProposalsPerUser: avgPerUser,
		MRR:                 pro * int64(s.cfg.Quota.ProMonthlyPrice),
		MonthlySeries:       series,
	}, nil
}

// monthlySeries returns the trailing six-month usage chart, oldest first.
// Months without any proposals are absent, not zero-filled.
func (s *AdminServiceImpl) monthlySeries() ([]dto.MonthlyPoint, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(statsMonths - 1), 0)

	rows, err := s.analyticsRepo.MonthlyUsage(start)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	series := make([]dto.MonthlyPoint, 0, len(rows))
	for _, row := range rows {
		series = append(series, dto.MonthlyPoint{
			Month:     row.Month.Month().String()[:3],
			Proposals: row.Proposals,
		})
	}
	return series, nil
}

func (s *AdminServiceImpl) Users(q *dto.AdminUsersQuery) ([]dto.AdminUserRow, *dto.Pagination, error) {
	page, limit := clampPage(q.Page, q.Limit)

	filter := repositories.UserFilter{
		Plan:     q.Plan,
		Search:   q.Search,
		SortKey:  q.SortBy,
		SortAsc:  q.Order == "asc",
		Page:     page,
		PageSize: limit,
	}
	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	proposalCounts, err := s.proposalRepo.CountByUserIDs(ids)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	rows := make([]dto.AdminUserRow, len(users))
	for i, u := range users {
		rows[i] = dto.AdminUserRow{
			ID:                 u.ID,
			Name:               u.Name,
			Email:              u.Email,
			Plan:               string(u.Plan),
			Country:            u.Country,
			ProposalsThisMonth: u.ProposalsThisMonth,
			TotalProposals:     proposalCounts[u.ID],
			CreatedAt:          u.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return rows, paginate(page, limit, total), nil
}

func (s *AdminServiceImpl) UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.AuthUser, error) {
	fields := map[string]interface{}{}
	if req.Plan != "" {
		if !models.ValidPlan(req.Plan) {
			return nil, apperrors.NewBadRequestError("Unknown plan: " + req.Plan)
		}
		fields["plan"] = req.Plan
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			return nil, apperrors.NewBadRequestError("Unknown role: " + req.Role)
		}
		fields["role"] = req.Role
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoUpdatableFields
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	out := PublicUser(user)
	return &out, nil
}

func (s *AdminServiceImpl) DeleteUser(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.InternalError(err)
	}

	// Proposals go first so a failed user delete never strands orphans.
	if _, err := s.proposalRepo.DeleteByUser(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) Proposals(q *dto.AdminProposalsQuery) ([]repositories.ProposalWithOwner, *dto.Pagination, error) {
	page, limit := clampPage(q.Page, q.Limit)

	filter := repositories.ProposalFilter{
		Search:   q.Search,
		SortKey:  q.SortBy,
		SortAsc:  q.Order == "asc",
		Page:     page,
		PageSize: limit,
	}
	rows, total, err := s.proposalRepo.FindWithFilter(filter)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return rows, paginate(page, limit, total), nil
}

func (s *AdminServiceImpl) DeleteProposal(proposalID string) error {
	if err := s.proposalRepo.Delete(proposalID); err != nil {
		if apperrors.Is(err, repositories.ErrProposalNotFound) {
			return apperrors.NewNotFoundError("Proposal not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) Activity(limit int) ([]repositories.ProposalWithOwner, error) {
	if limit <= 0 {
		limit = defaultActivity
	}
	if limit > maxActivity {
		limit = maxActivity
	}
	rows, err := s.proposalRepo.FindRecentWithOwner(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rows, nil
}

func (s *AdminServiceImpl) Usage(days int) (*dto.UsageReport, error) {
	if days <= 0 {
		days = defaultDays
	}
	if days < minUsageDays {
		days = minUsageDays
	}
	if days > maxUsageDays {
		days = maxUsageDays
	}
	since := s.now().AddDate(0, 0, -days)

	daily, err := s.analyticsRepo.DailyUsage(since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byPlan, err := s.analyticsRepo.UsageByPlan(since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	top, err := s.analyticsRepo.TopUsers(since, topUsersLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byTone, err := s.analyticsRepo.ToneBreakdown(since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	report := &dto.UsageReport{Days: days}
	for _, d := range daily {
		report.Daily = append(report.Daily, dto.DailyPoint{
			Day:       d.Day.Format("2006-01-02"),
			Proposals: d.Proposals,
			AvgScore:  int(math.Round(d.AvgScore)),
		})
	}
	for _, p := range byPlan {
		report.ByPlan = append(report.ByPlan, dto.PlanUsageRow{
			Plan:        p.Plan,
			Proposals:   p.Proposals,
			UniqueUsers: p.UniqueUsers,
		})
	}
	for _, t := range top {
		report.Top = append(report.Top, dto.TopUserRow{
			ID:        t.UserID,
			Name:      t.Name,
			Email:     t.Email,
			Plan:      t.Plan,
			Proposals: t.Proposals,
			AvgScore:  round1(t.AvgScore),
		})
	}
	for _, t := range byTone {
		report.ByTone = append(report.ByTone, dto.ToneRow{Tone: t.Tone, Count: t.Count})
	}
	return report, nil
}

func (s *AdminServiceImpl) Settings() *dto.AdminSettings {
	return &dto.AdminSettings{
		FreeMonthlyCap:  s.cfg.Quota.FreeMonthlyCap,
		ProMonthlyPrice: s.cfg.Quota.ProMonthlyPrice,
		CohereModel:     s.cfg.Cohere.Model,
		DefaultTone:     DefaultTone,
		DefaultLength:   DefaultLength,
		FallbackKeySet:  s.cfg.Cohere.APIKey != "",
	}
}

// Geo keeps the seven largest countries and folds the rest into an
// "Other" bucket. Percentages come from the pre-bucket totals.
func (s *AdminServiceImpl) Geo() ([]dto.GeoRow, error) {
	counts, err := s.analyticsRepo.CountryCounts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var total int64
	for _, c := range counts {
		total += c.Users
	}
	if total == 0 {
		return []dto.GeoRow{}, nil
	}

	rows := make([]dto.GeoRow, 0, geoTopCountries+1)
	var other int64
	for i, c := range counts {
		if i < geoTopCountries {
			rows = append(rows, dto.GeoRow{
				Country: c.Country,
				Users:   c.Users,
				Pct:     round1(float64(c.Users) / float64(total) * 100),
			})
			continue
		}
		other += c.Users
	}
	if other > 0 {
		rows = append(rows, dto.GeoRow{
			Country: "Other",
			Users:   other,
			Pct:     round1(float64(other) / float64(total) * 100),
		})
	}
	return rows, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func paginate(page, limit int, total int64) *dto.Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &dto.Pagination{Page: page, PageSize: limit, Total: total, TotalPages: pages}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
