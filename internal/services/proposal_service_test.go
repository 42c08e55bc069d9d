package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/generation"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type recordingProvider struct {
	calls int
	text  string
	err   error
}

func (p *recordingProvider) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Quota.FreeMonthlyCap = 10
	cfg.Quota.ProMonthlyPrice = 49
	cfg.Cohere.Model = "c4ai-aya-expanse-32b"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLHours = 168
	return cfg
}

func newProposalService(users *fakeUserRepo, proposals *fakeProposalRepo, provider generation.Provider) *ProposalServiceImpl {
	gen := generation.NewGenerator(provider, "server-fallback-key")
	svc := NewProposalService(users, proposals, gen, testConfig()).(*ProposalServiceImpl)
	return svc
}

func freeUser(counter int, resetAt time.Time) *models.User {
	return &models.User{
		BaseModel:          models.BaseModel{ID: "u1", CreatedAt: time.Now()},
		Name:               "Dana",
		Email:              "dana@example.com",
		Role:               models.UserRoleUser,
		Plan:               models.PlanFree,
		ProposalsThisMonth: counter,
		ResetProposalsAt:   resetAt,
	}
}

func generateReq() *dto.GenerateRequest {
	return &dto.GenerateRequest{
		JobDescription: "Build a REST API for an online bookstore with search and checkout",
		Skills:         []string{"Go", "PostgreSQL"},
	}
}

func TestGenerate_FreeUserHappyPath(t *testing.T) {
	users := newFakeUserRepo(freeUser(3, time.Now()))
	proposals := newFakeProposalRepo()
	provider := &recordingProvider{text: "Hello, I can build your bookstore API."}
	svc := newProposalService(users, proposals, provider)

	proposal, meta, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)
	require.NotNil(t, proposal)
	require.NotNil(t, meta)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "Hello, I can build your bookstore API.", proposal.GeneratedText)
	assert.GreaterOrEqual(t, proposal.Score, 60)
	assert.LessOrEqual(t, proposal.Score, 100)

	// Defaults fill the unset knobs.
	assert.Equal(t, "confident", proposal.Tone)
	assert.Equal(t, "medium", proposal.Length)
	assert.Equal(t, "mid", proposal.Experience)

	assert.Equal(t, "Free", meta.Plan)
	assert.Equal(t, 4, meta.ProposalsThisMonth)
	require.NotNil(t, meta.ProposalsRemaining)
	assert.Equal(t, 6, *meta.ProposalsRemaining)
	assert.False(t, meta.CanExportPDF)
	assert.False(t, meta.AdvancedScoring)

	stored, err := users.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.ProposalsThisMonth)
}

func TestGenerate_TitleDerivation(t *testing.T) {
	users := newFakeUserRepo(freeUser(0, time.Now()))
	svc := newProposalService(users, newFakeProposalRepo(), &recordingProvider{text: "draft"})

	long := strings.Repeat("x", 80)
	req := generateReq()
	req.JobDescription = long

	proposal, _, err := svc.Generate(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, long[:60]+"...", proposal.JobTitle)

	req2 := generateReq()
	req2.JobDescription = "Short description"
	proposal2, _, err := svc.Generate(context.Background(), "u1", req2)
	require.NoError(t, err)
	assert.Equal(t, "Short description", proposal2.JobTitle)
}

func TestGenerate_QuotaBoundary(t *testing.T) {
	// One below the cap still generates.
	users := newFakeUserRepo(freeUser(9, time.Now()))
	provider := &recordingProvider{text: "draft"}
	svc := newProposalService(users, newFakeProposalRepo(), provider)

	_, meta, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)
	assert.Equal(t, 10, meta.ProposalsThisMonth)
	require.NotNil(t, meta.ProposalsRemaining)
	assert.Equal(t, 0, *meta.ProposalsRemaining)

	// At the cap the request is rejected before any provider traffic.
	providerCallsBefore := provider.calls
	_, _, err = svc.Generate(context.Background(), "u1", generateReq())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "Free plan limit (10/month)")
	assert.Equal(t, providerCallsBefore, provider.calls)
}

func TestGenerate_MonthRolloverResetsCounter(t *testing.T) {
	lastMonth := time.Now().AddDate(0, -1, 0)
	users := newFakeUserRepo(freeUser(10, lastMonth))
	provider := &recordingProvider{text: "draft"}
	svc := newProposalService(users, newFakeProposalRepo(), provider)

	// At the cap, but the stamp is from last month: rollover unblocks.
	_, meta, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)
	assert.Equal(t, 1, meta.ProposalsThisMonth)

	stored, err := users.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ProposalsThisMonth)
	assert.Equal(t, time.Now().Month(), stored.ResetProposalsAt.Month())
}

func TestGenerate_DecemberToJanuaryRollover(t *testing.T) {
	users := newFakeUserRepo(freeUser(10, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)))
	svc := newProposalService(users, newFakeProposalRepo(), &recordingProvider{text: "draft"})
	svc.now = func() time.Time {
		return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	}

	_, meta, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)
	assert.Equal(t, 1, meta.ProposalsThisMonth)
}

func TestGenerate_ProUserUnlimited(t *testing.T) {
	pro := freeUser(500, time.Now())
	pro.Plan = models.PlanPro
	users := newFakeUserRepo(pro)
	svc := newProposalService(users, newFakeProposalRepo(), &recordingProvider{text: "draft"})

	_, meta, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)

	assert.Equal(t, "Pro", meta.Plan)
	assert.Nil(t, meta.ProposalsRemaining)
	assert.True(t, meta.CanExportPDF)
	assert.True(t, meta.AdvancedScoring)

	// The counter never moves for Pro accounts.
	stored, err := users.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 500, stored.ProposalsThisMonth)
}

func TestGenerate_UserKeyBeatsFallback(t *testing.T) {
	u := freeUser(0, time.Now())
	u.CohereAPIKey = "user-own-key"
	users := newFakeUserRepo(u)

	var seenKey string
	provider := providerFunc(func(ctx context.Context, apiKey, prompt string) (string, error) {
		seenKey = apiKey
		return "draft", nil
	})
	svc := newProposalService(users, newFakeProposalRepo(), provider)

	_, _, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)
	assert.Equal(t, "user-own-key", seenKey)
}

type providerFunc func(ctx context.Context, apiKey, prompt string) (string, error)

func (f providerFunc) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	return f(ctx, apiKey, prompt)
}

func TestGenerate_ProviderErrorDoesNotConsumeQuota(t *testing.T) {
	users := newFakeUserRepo(freeUser(3, time.Now()))
	provider := &recordingProvider{err: apperrors.ErrProviderRateLimited}
	svc := newProposalService(users, newFakeProposalRepo(), provider)

	_, _, err := svc.Generate(context.Background(), "u1", generateReq())
	require.Error(t, err)

	stored, findErr := users.FindByID("u1")
	require.NoError(t, findErr)
	assert.Equal(t, 3, stored.ProposalsThisMonth)
}

func TestDelete_OnlyOwnerCanDelete(t *testing.T) {
	users := newFakeUserRepo(freeUser(0, time.Now()))
	proposals := newFakeProposalRepo()
	svc := newProposalService(users, proposals, &recordingProvider{text: "draft"})

	proposal, _, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)

	err = svc.Delete("someone-else", proposal.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)

	require.NoError(t, svc.Delete("u1", proposal.ID))
	assert.Error(t, svc.Delete("u1", proposal.ID))
}

func TestExportPDF_RequiresProPlan(t *testing.T) {
	users := newFakeUserRepo(freeUser(0, time.Now()))
	proposals := newFakeProposalRepo()
	svc := newProposalService(users, proposals, &recordingProvider{text: "draft"})

	proposal, _, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)

	_, _, err = svc.ExportPDF("u1", proposal.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestExportPDF_ProOwnedProposal(t *testing.T) {
	pro := freeUser(0, time.Now())
	pro.Plan = models.PlanPro
	users := newFakeUserRepo(pro)
	proposals := newFakeProposalRepo()
	svc := newProposalService(users, proposals, &recordingProvider{text: "A generated proposal body."})

	proposal, _, err := svc.Generate(context.Background(), "u1", generateReq())
	require.NoError(t, err)

	data, exported, err := svc.ExportPDF("u1", proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, proposal.ID, exported.ID)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))

	_, _, err = svc.ExportPDF("u1", "missing-id")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
