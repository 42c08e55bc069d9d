package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserPlan string

const (
	PlanFree UserPlan = "Free"
	PlanPro  UserPlan = "Pro"
)

// ValidRole reports whether the value is an assignable role.
func ValidRole(r string) bool {
	return r == string(UserRoleUser) || r == string(UserRoleAdmin)
}

// ValidPlan reports whether the value is an assignable plan.
func ValidPlan(p string) bool {
	return p == string(PlanFree) || p == string(PlanPro)
}

// User is the identity record. PasswordHash and CohereAPIKey are secrets:
// excluded from every outward representation by construction.
type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Plan         UserPlan `gorm:"type:varchar(20);not null;default:'Free'" json:"plan"`
	Country      string   `gorm:"default:''" json:"country"`
	CohereAPIKey string   `gorm:"default:''" json:"-"`

	// Monthly generation counter; ResetProposalsAt records the month the
	// counter belongs to and is rolled lazily on each generation attempt.
	ProposalsThisMonth int       `gorm:"not null;default:0" json:"proposalsThisMonth"`
	ResetProposalsAt   time.Time `gorm:"not null;default:now()" json:"resetProposalsAt"`
}

// IsPro reports whether the user is on the uncapped plan.
func (u *User) IsPro() bool {
	return u.Plan == PlanPro
}

// IsAdmin reports whether the user has the privileged role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
