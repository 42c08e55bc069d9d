package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

func newAdminService(users *fakeUserRepo, proposals *fakeProposalRepo, analytics *fakeAnalyticsRepo) *AdminServiceImpl {
	return NewAdminService(users, proposals, analytics, testConfig()).(*AdminServiceImpl)
}

func TestStats_MRRAndAverages(t *testing.T) {
	analytics := &fakeAnalyticsRepo{
		plans: map[string]int64{"Free": 30, "Pro": 10},
	}
	proposals := newFakeProposalRepo()
	for i := 0; i < 3; i++ {
		require.NoError(t, proposals.Create(&models.Proposal{UserID: "u1"}))
	}
	svc := newAdminService(newFakeUserRepo(), proposals, analytics)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(40), stats.TotalUsers)
	assert.Equal(t, int64(10), stats.ProUsers)
	assert.Equal(t, int64(30), stats.FreeUsers)
	assert.Equal(t, int64(3), stats.TotalProposals)
	assert.Equal(t, int64(490), stats.MRR)
	// 3 proposals over 40 users, one decimal.
	assert.Equal(t, 0.1, stats.AvgProposalsPerUser)
}

func TestStats_AvgZeroWithoutUsers(t *testing.T) {
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), &fakeAnalyticsRepo{})

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.Equal(t, 0.0, stats.AvgProposalsPerUser)
}

func TestStats_MonthlySeriesSkipsEmptyMonths(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	analytics := &fakeAnalyticsRepo{
		monthly: []repositories.MonthCount{
			{Month: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Proposals: 12},
			{Month: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Proposals: 31},
		},
	}
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), analytics)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats()
	require.NoError(t, err)

	// Only months with proposals appear; gaps are not zero-filled.
	require.Len(t, stats.MonthlySeries, 2)
	assert.Equal(t, dto.MonthlyPoint{Month: "Apr", Proposals: 12}, stats.MonthlySeries[0])
	assert.Equal(t, dto.MonthlyPoint{Month: "Jul", Proposals: 31}, stats.MonthlySeries[1])
}

func TestUsers_ExcludesAdminsAndClampsLimit(t *testing.T) {
	users := newFakeUserRepo()
	for i := 0; i < 3; i++ {
		u := freeUser(0, time.Now())
		u.ID = fmt.Sprintf("listed-%d", i)
		u.Email = fmt.Sprintf("user%d@example.com", i)
		require.NoError(t, users.Create(u))
	}
	admin := freeUser(0, time.Now())
	admin.ID = "admin-1"
	admin.Email = "admin@example.com"
	admin.Role = models.UserRoleAdmin
	users.users[admin.ID] = admin

	svc := newAdminService(users, newFakeProposalRepo(), &fakeAnalyticsRepo{})

	rows, page, err := svc.Users(&dto.AdminUsersQuery{Limit: 500})
	require.NoError(t, err)

	assert.Len(t, rows, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, maxPageSize, page.PageSize)
	for _, row := range rows {
		assert.NotEqual(t, "admin@example.com", row.Email)
	}

	// Zero and negative limits fall back to the default page size.
	_, page, err = svc.Users(&dto.AdminUsersQuery{Limit: -3})
	require.NoError(t, err)
	assert.Equal(t, defaultPageSize, page.PageSize)
	assert.Equal(t, 1, page.Page)
}

func TestUpdateUser_ValidatesFields(t *testing.T) {
	users := newFakeUserRepo(freeUser(0, time.Now()))
	svc := newAdminService(users, newFakeProposalRepo(), &fakeAnalyticsRepo{})

	// Nothing to change.
	_, err := svc.UpdateUser("u1", &dto.UpdateUserRequest{})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)

	_, err = svc.UpdateUser("u1", &dto.UpdateUserRequest{Plan: "Platinum"})
	require.Error(t, err)

	updated, err := svc.UpdateUser("u1", &dto.UpdateUserRequest{Plan: "Pro"})
	require.NoError(t, err)
	assert.Equal(t, "Pro", updated.Plan)

	updated, err = svc.UpdateUser("u1", &dto.UpdateUserRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
}

func TestUpdateUser_MissingUserIsNotFound(t *testing.T) {
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), &fakeAnalyticsRepo{})

	_, err := svc.UpdateUser("no-such-user", &dto.UpdateUserRequest{Plan: "Pro"})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestDeleteUser_CascadesProposals(t *testing.T) {
	user := freeUser(0, time.Now())
	users := newFakeUserRepo(user)
	proposals := newFakeProposalRepo()
	proposals.owners[user.ID] = user

	psvc := newProposalService(users, proposals, &recordingProvider{text: "draft"})
	for i := 0; i < 3; i++ {
		_, _, err := psvc.Generate(context.Background(), "u1", generateReq())
		require.NoError(t, err)
	}

	svc := newAdminService(users, proposals, &fakeAnalyticsRepo{})
	require.NoError(t, svc.DeleteUser("u1"))

	count, err := proposals.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	_, err = users.FindByID("u1")
	assert.Error(t, err)

	err = svc.DeleteUser("u1")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestActivity_ClampsLimit(t *testing.T) {
	user := freeUser(0, time.Now())
	user.Plan = models.PlanPro
	users := newFakeUserRepo(user)
	proposals := newFakeProposalRepo()
	proposals.owners[user.ID] = user

	psvc := newProposalService(users, proposals, &recordingProvider{text: "draft"})
	for i := 0; i < 60; i++ {
		_, _, err := psvc.Generate(context.Background(), "u1", generateReq())
		require.NoError(t, err)
	}

	svc := newAdminService(users, proposals, &fakeAnalyticsRepo{})

	rows, err := svc.Activity(0)
	require.NoError(t, err)
	assert.Len(t, rows, defaultActivity)

	rows, err = svc.Activity(200)
	require.NoError(t, err)
	assert.Len(t, rows, maxActivity)
}

func TestUsage_ClampsWindow(t *testing.T) {
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), &fakeAnalyticsRepo{})

	report, err := svc.Usage(0)
	require.NoError(t, err)
	assert.Equal(t, defaultDays, report.Days)

	report, err = svc.Usage(3)
	require.NoError(t, err)
	assert.Equal(t, minUsageDays, report.Days)

	report, err = svc.Usage(365)
	require.NoError(t, err)
	assert.Equal(t, maxUsageDays, report.Days)
}

func TestUsage_ScoreRounding(t *testing.T) {
	analytics := &fakeAnalyticsRepo{
		daily: []repositories.DailyUsage{
			{Day: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Proposals: 4, AvgScore: 82.5},
			{Day: time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), Proposals: 2, AvgScore: 71.2},
		},
		top: []repositories.TopUser{
			{UserID: "u1", Name: "Dana", Plan: "Pro", Proposals: 6, AvgScore: 82.46},
		},
	}
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), analytics)

	report, err := svc.Usage(30)
	require.NoError(t, err)

	// Daily averages are whole numbers; top-user averages keep one decimal.
	require.Len(t, report.Daily, 2)
	assert.Equal(t, 83, report.Daily[0].AvgScore)
	assert.Equal(t, 71, report.Daily[1].AvgScore)
	require.Len(t, report.Top, 1)
	assert.Equal(t, 82.5, report.Top[0].AvgScore)
}

func TestGeo_TopSevenPlusOther(t *testing.T) {
	analytics := &fakeAnalyticsRepo{
		countries: []repositories.CountryCount{
			{Country: "United States", Users: 50},
			{Country: "Canada", Users: 20},
			{Country: "United Kingdom", Users: 10},
			{Country: "Germany", Users: 5},
			{Country: "France", Users: 5},
			{Country: "Japan", Users: 5},
			{Country: "Australia", Users: 3},
			{Country: "Brazil", Users: 2},
		},
	}
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), analytics)

	rows, err := svc.Geo()
	require.NoError(t, err)
	require.Len(t, rows, 8)

	assert.Equal(t, "United States", rows[0].Country)
	assert.Equal(t, 50.0, rows[0].Pct)
	assert.Equal(t, "Australia", rows[6].Country)
	assert.Equal(t, 3.0, rows[6].Pct)

	other := rows[7]
	assert.Equal(t, "Other", other.Country)
	assert.Equal(t, int64(2), other.Users)
	assert.Equal(t, 2.0, other.Pct)
}

func TestGeo_FewCountriesNoOtherBucket(t *testing.T) {
	analytics := &fakeAnalyticsRepo{
		countries: []repositories.CountryCount{
			{Country: "Kazakhstan", Users: 2},
			{Country: "Poland", Users: 1},
		},
	}
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), analytics)

	rows, err := svc.Geo()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 66.7, rows[0].Pct)
	assert.Equal(t, 33.3, rows[1].Pct)
}

func TestSettings_ReflectsConfig(t *testing.T) {
	svc := newAdminService(newFakeUserRepo(), newFakeProposalRepo(), &fakeAnalyticsRepo{})

	settings := svc.Settings()
	assert.Equal(t, 10, settings.FreeMonthlyCap)
	assert.Equal(t, 49, settings.ProMonthlyPrice)
	assert.Equal(t, "c4ai-aya-expanse-32b", settings.CohereModel)
	assert.Equal(t, "confident", settings.DefaultTone)
	assert.Equal(t, "medium", settings.DefaultLength)
	assert.False(t, settings.FallbackKeySet)
}
