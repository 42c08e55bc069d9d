package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"proposalforge_backend/internal/models"
)

var ErrProposalNotFound = errors.New("proposal not found")

// ProposalFilter drives the admin proposal listing.
type ProposalFilter struct {
	Search   string
	SortKey  string
	SortAsc  bool
	Page     int
	PageSize int
}

var proposalSortColumns = map[string]string{
	"createdAt": "proposals.created_at",
	"score":     "proposals.score",
	"tone":      "proposals.tone",
	"length":    "proposals.length",
}

// ProposalWithOwner is an admin-listing row: proposal summary plus owner
// identity. Heavy text columns are deliberately not selected.
type ProposalWithOwner struct {
	ID         string    `json:"id"`
	JobTitle   string    `json:"jobTitle"`
	Score      int       `json:"score"`
	Tone       string    `json:"tone"`
	Length     string    `json:"length"`
	Experience string    `json:"experience"`
	CreatedAt  time.Time `json:"createdAt"`
	OwnerID    string    `json:"userId"`
	OwnerName  string    `json:"userName"`
	OwnerEmail string    `json:"userEmail"`
	OwnerPlan  string    `json:"userPlan"`
}

type ProposalRepository interface {
	Create(p *models.Proposal) error
	FindByID(id string) (*models.Proposal, error)
	// FindOwned fetches a proposal only when it belongs to userID.
	FindOwned(id, userID string) (*models.Proposal, error)
	// FindByUser lists the user's proposals newest first.
	FindByUser(userID string) ([]models.Proposal, error)
	Delete(id string) error
	DeleteOwned(id, userID string) error
	// DeleteByUser removes every proposal of a user; returns how many.
	DeleteByUser(userID string) (int64, error)
	CountAll() (int64, error)
	// CountByUserIDs maps each user id to their proposal count.
	CountByUserIDs(ids []string) (map[string]int64, error)
	// FindWithFilter lists proposals with owner info, excluding rows owned
	// by admin accounts before pagination and counting.
	FindWithFilter(f ProposalFilter) ([]ProposalWithOwner, int64, error)
	// FindRecentWithOwner returns the newest non-admin proposals.
	FindRecentWithOwner(limit int) ([]ProposalWithOwner, error)
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) Create(p *models.Proposal) error {
	return r.db.Create(p).Error
}

func (r *ProposalRepositoryImpl) FindByID(id string) (*models.Proposal, error) {
	var p models.Proposal
	err := r.db.First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepositoryImpl) FindOwned(id, userID string) (*models.Proposal, error) {
	var p models.Proposal
	err := r.db.First(&p, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepositoryImpl) FindByUser(userID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Proposal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) DeleteOwned(id, userID string) error {
	result := r.db.Delete(&models.Proposal{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) DeleteByUser(userID string) (int64, error) {
	result := r.db.Delete(&models.Proposal{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}

func (r *ProposalRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).Count(&count).Error
	return count, err
}

func (r *ProposalRepositoryImpl) CountByUserIDs(ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID string
		Count  int64
	}
	err := r.db.Model(&models.Proposal{}).
		Select("user_id, COUNT(*) as count").
		Where("user_id IN ?", ids).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func (r *ProposalRepositoryImpl) ownerJoined() *gorm.DB {
	return r.db.Table("proposals").
		Select(`proposals.id, proposals.job_title, proposals.score,
			proposals.tone, proposals.length, proposals.experience,
			proposals.created_at,
			users.id AS owner_id, users.name AS owner_name,
			users.email AS owner_email, users.plan AS owner_plan`).
		Joins("JOIN users ON users.id = proposals.user_id AND users.role = ?", models.UserRoleUser)
}

func (r *ProposalRepositoryImpl) FindWithFilter(f ProposalFilter) ([]ProposalWithOwner, int64, error) {
	query := r.ownerJoined()

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("proposals.job_title ILIKE ? OR proposals.job_description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := proposalSortColumns[f.SortKey]
	if !ok {
		column = "proposals.created_at"
		f.SortAsc = false
	}
	direction := "DESC"
	if f.SortAsc {
		direction = "ASC"
	}

	var rows []ProposalWithOwner
	err := query.
		Order(column + " " + direction).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ProposalRepositoryImpl) FindRecentWithOwner(limit int) ([]ProposalWithOwner, error) {
	var rows []ProposalWithOwner
	err := r.ownerJoined().
		Order("proposals.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
