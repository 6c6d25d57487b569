package models

// GORM models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EvaluationRecord is the audit row written after each completed
// evaluation. Best-effort only: a failed insert is logged and the
// webhook response is never affected.
type EvaluationRecord struct {
	BaseModel
	TicketID            string  `json:"ticket_id" gorm:"not null;index"`
	TicketNumber        string  `json:"ticket_number"`
	CacheKey            string  `json:"cache_key" gorm:"index"`
	OverallScore        float64 `json:"overall_score" gorm:"type:decimal(4,1)"`
	ToneEmpathy         int     `json:"tone_empathy"`
	ClarityCompleteness int     `json:"clarity_completeness"`
	StandardOfEnglish   int     `json:"standard_of_english"`
	ProblemResolution   int     `json:"problem_resolution"`
	FollowingStructure  int     `json:"following_structure"`
	ImprovementCount    int     `json:"improvement_count"`
	Product             string  `json:"product"`
	ReplyLength         int     `json:"reply_length"`
	DurationMs          int     `json:"duration_ms"`
	ModelError          string  `json:"model_error"`
}

// EvaluationRepository is the persistence interface for audit rows.
type EvaluationRepository interface {
	Create(record *EvaluationRecord) error
	GetByTicket(ticketID string) ([]EvaluationRecord, error)
	GetRecent(limit int) ([]EvaluationRecord, error)
	AverageScore(from, to time.Time) (float64, error)
}

func (EvaluationRecord) TableName() string { return "evaluation_records" }

func (r *EvaluationRecord) Validate() error {
	if r.TicketID == "" {
		return fmt.Errorf("ticket id is required")
	}
	if r.OverallScore < 0 || r.OverallScore > 10 {
		return fmt.Errorf("overall score out of range: %f", r.OverallScore)
	}
	return nil
}

// GORM hooks
func (r *EvaluationRecord) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}

// FromVerdict fills the score columns from a verdict.
func (r *EvaluationRecord) FromVerdict(v Verdict) {
	r.OverallScore = v.OverallScore
	r.ToneEmpathy = v.Categories.ToneEmpathy.Score
	r.ClarityCompleteness = v.Categories.ClarityCompleteness.Score
	r.StandardOfEnglish = v.Categories.StandardOfEnglish.Score
	r.ProblemResolution = v.Categories.ProblemResolution.Score
	r.FollowingStructure = v.Categories.FollowingStructure.Score
	r.ImprovementCount = len(v.KeyImprovements)
	r.ModelError = v.Error
}
