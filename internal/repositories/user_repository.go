package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"proposalforge_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter drives the admin user listing. SortKey uses wire names; keys
// outside the allow-list fall back to newest-first.
type UserFilter struct {
	Plan     string // "All" disables the plan filter
	Search   string
	SortKey  string
	SortAsc  bool
	Page     int
	PageSize int
}

// Allow-listed sort keys, wire name -> column.
var userSortColumns = map[string]string{
	"name":               "name",
	"createdAt":          "created_at",
	"proposalsThisMonth": "proposals_this_month",
	"plan":               "plan",
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	Delete(userID string) error
	CountByRole(role models.UserRole) (int64, error)
	// FindWithFilter lists non-admin users only, whatever the filter says.
	FindWithFilter(f UserFilter) ([]models.User, int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)

	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	result := r.db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) FindWithFilter(f UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("role = ?", models.UserRoleUser)

	if f.Plan != "" && f.Plan != "All" {
		query = query.Where("plan = ?", f.Plan)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := userSortColumns[f.SortKey]
	if !ok {
		column = "created_at"
		f.SortAsc = false
	}
	direction := "DESC"
	if f.SortAsc {
		direction = "ASC"
	}

	var users []models.User
	err := query.
		Order(column + " " + direction).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
