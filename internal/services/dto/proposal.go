package dto

type GenerateRequest struct {
	JobDescription string   `json:"jobDescription" validate:"required,min=10"`
	Skills         []string `json:"skills" validate:"omitempty,max=30,dive,max=60"`
	Experience     string   `json:"experience" validate:"omitempty,max=40"`
	Tone           string   `json:"tone" validate:"omitempty,max=40"`
	Length         string   `json:"length" validate:"omitempty,max=20"`
	Budget         string   `json:"budget" validate:"omitempty,max=100"`
	Timeline       string   `json:"timeline" validate:"omitempty,max=100"`
}

// GenerationMeta accompanies every successful generation so the client can
// render quota state without a second round trip. ProposalsRemaining is nil
// for Pro users (unlimited).
type GenerationMeta struct {
	Plan               string `json:"plan"`
	ProposalsThisMonth int    `json:"proposalsThisMonth"`
	ProposalsRemaining *int   `json:"proposalsRemaining"`
	CanExportPDF       bool   `json:"canExportPdf"`
	AdvancedScoring    bool   `json:"advancedScoring"`
}
