package repository

import (
	"time"

	"github.com/adelinv/replyscore/internal/models"
	"gorm.io/gorm"
)

// EvaluationRepositoryImpl implements models.EvaluationRepository
type EvaluationRepositoryImpl struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) models.EvaluationRepository {
	return &EvaluationRepositoryImpl{db: db}
}

func (r *EvaluationRepositoryImpl) Create(record *models.EvaluationRecord) error {
	return r.db.Create(record).Error
}

func (r *EvaluationRepositoryImpl) GetByTicket(ticketID string) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *EvaluationRepositoryImpl) GetRecent(limit int) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *EvaluationRepositoryImpl) AverageScore(from, to time.Time) (float64, error) {
	var avg float64
	err := r.db.Model(&models.EvaluationRecord{}).
		Where("created_at BETWEEN ? AND ? AND model_error = ''", from, to).
		Select("COALESCE(AVG(overall_score), 0)").
		Scan(&avg).Error
	return avg, err
}

// RepositoryManager bundles all repositories behind one handle.
type RepositoryManager struct {
	Evaluations models.EvaluationRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Evaluations: NewEvaluationRepository(db),
	}
}
