package models

import "gorm.io/datatypes"

// Proposal is a generated artifact. Immutable after creation except
// deletion; cascade-deleted with the owning user.
type Proposal struct {
	BaseModel
	UserID         string                       `gorm:"type:uuid;not null;index" json:"user"`
	JobTitle       string                       `gorm:"not null" json:"jobTitle"`
	JobDescription string                       `gorm:"type:text;not null" json:"jobDescription"`
	GeneratedText  string                       `gorm:"type:text;not null" json:"generatedText"`
	Score          int                          `gorm:"not null;default:0" json:"score"`
	Tone           string                       `gorm:"default:'confident'" json:"tone"`
	Length         string                       `gorm:"default:'medium'" json:"length"`
	Skills         datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"skills"`
	Experience     string                       `gorm:"default:'mid'" json:"experience"`
	Budget         string                       `json:"budget,omitempty"`
	Timeline       string                       `json:"timeline,omitempty"`
}

// TitleLimit is the length at which a job description gets truncated into
// the derived title.
const TitleLimit = 60

// DeriveTitle builds the stored title from the raw description: the first
// TitleLimit characters plus an ellipsis marker only when truncated.
func DeriveTitle(description string) string {
	runes := []rune(description)
	if len(runes) <= TitleLimit {
		return description
	}
	return string(runes[:TitleLimit]) + "..."
}
