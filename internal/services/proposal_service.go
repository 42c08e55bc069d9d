package services

import (
	"context"
	"time"

	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/generation"
	"proposalforge_backend/internal/logger"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/pdf"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

// Defaults applied when a generation request leaves a knob empty.
const (
	DefaultExperience = "mid"
	DefaultTone       = "confident"
	DefaultLength     = "medium"
)

type ProposalService interface {
	// Generate runs the full pipeline: quota gate, provider call, scoring,
	// persistence and counter bookkeeping.
	Generate(ctx context.Context, userID string, req *dto.GenerateRequest) (*models.Proposal, *dto.GenerationMeta, error)
	List(userID string) ([]models.Proposal, error)
	Delete(userID, proposalID string) error
	// ExportPDF renders an owned proposal as a PDF document. Pro plan only.
	ExportPDF(userID, proposalID string) ([]byte, *models.Proposal, error)
}

type ProposalServiceImpl struct {
	userRepo     repositories.UserRepository
	proposalRepo repositories.ProposalRepository
	generator    *generation.Generator
	cfg          *config.Config
	now          func() time.Time
}

func NewProposalService(
	userRepo repositories.UserRepository,
	proposalRepo repositories.ProposalRepository,
	generator *generation.Generator,
	cfg *config.Config,
) ProposalService {
	return &ProposalServiceImpl{
		userRepo:     userRepo,
		proposalRepo: proposalRepo,
		generator:    generator,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *ProposalServiceImpl) Generate(ctx context.Context, userID string, req *dto.GenerateRequest) (*models.Proposal, *dto.GenerationMeta, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if err := s.rolloverQuota(ctx, user); err != nil {
		return nil, nil, err
	}

	// The quota gate runs before any provider traffic so a blocked user
	// never spends API credit.
	freeCap := s.cfg.Quota.FreeMonthlyCap
	if !user.IsPro() && user.ProposalsThisMonth >= freeCap {
		return nil, nil, apperrors.ErrQuotaExceeded(freeCap)
	}

	opts := generation.Options{
		JobDescription: req.JobDescription,
		Skills:         req.Skills,
		Experience:     req.Experience,
		Tone:           req.Tone,
		Length:         req.Length,
		Budget:         req.Budget,
		Timeline:       req.Timeline,
	}
	if opts.Skills == nil {
		opts.Skills = []string{}
	}
	if opts.Experience == "" {
		opts.Experience = DefaultExperience
	}
	if opts.Tone == "" {
		opts.Tone = DefaultTone
	}
	if opts.Length == "" {
		opts.Length = DefaultLength
	}

	result, err := s.generator.Generate(ctx, user.CohereAPIKey, opts)
	if err != nil {
		return nil, nil, err
	}

	proposal := &models.Proposal{
		UserID:         user.ID,
		JobTitle:       models.DeriveTitle(req.JobDescription),
		JobDescription: req.JobDescription,
		GeneratedText:  result.Text,
		Score:          result.Score,
		Tone:           opts.Tone,
		Length:         opts.Length,
		Skills:         opts.Skills,
		Experience:     opts.Experience,
		Budget:         req.Budget,
		Timeline:       req.Timeline,
	}
	if err := s.proposalRepo.Create(proposal); err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	// Only Free accounts consume quota, and only after a successful save.
	if !user.IsPro() {
		user.ProposalsThisMonth++
		err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
			"proposals_this_month": user.ProposalsThisMonth,
		})
		if err != nil {
			logger.CtxWithError(ctx, "failed to bump proposal counter", err, "user_id", user.ID)
		}
	}

	return proposal, s.meta(user), nil
}

func (s *ProposalServiceImpl) List(userID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return proposals, nil
}

func (s *ProposalServiceImpl) Delete(userID, proposalID string) error {
	if err := s.proposalRepo.DeleteOwned(proposalID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrProposalNotFound) {
			return apperrors.NewNotFoundError("Proposal not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProposalServiceImpl) ExportPDF(userID, proposalID string) ([]byte, *models.Proposal, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	if !user.IsPro() {
		return nil, nil, apperrors.ErrProPlanRequired
	}

	proposal, err := s.proposalRepo.FindOwned(proposalID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProposalNotFound) {
			return nil, nil, apperrors.NewNotFoundError("Proposal not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	data, err := pdf.RenderProposal(proposal)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return data, proposal, nil
}

// rolloverQuota resets the monthly counter lazily: the first generation
// attempt in a new calendar month zeroes it, whatever day that happens on.
func (s *ProposalServiceImpl) rolloverQuota(ctx context.Context, user *models.User) error {
	now := s.now()
	last := user.ResetProposalsAt
	if now.Month() == last.Month() && now.Year() == last.Year() {
		return nil
	}

	user.ProposalsThisMonth = 0
	user.ResetProposalsAt = now
	err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"proposals_this_month": 0,
		"reset_proposals_at":   now,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProposalServiceImpl) meta(user *models.User) *dto.GenerationMeta {
	m := &dto.GenerationMeta{
		Plan:               string(user.Plan),
		ProposalsThisMonth: user.ProposalsThisMonth,
		CanExportPDF:       user.IsPro(),
		AdvancedScoring:    user.IsPro(),
	}
	if !user.IsPro() {
		remaining := s.cfg.Quota.FreeMonthlyCap - user.ProposalsThisMonth
		if remaining < 0 {
			remaining = 0
		}
		m.ProposalsRemaining = &remaining
	}
	return m
}
