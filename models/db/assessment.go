package dbmodels

import (
	"eval-board-backend/models"
)

// Assessment - оценка кандидата членом комиссии,
// одна запись на тройку (комиссия, кандидат, оценивающий)
type Assessment struct {
	BaseModel
	BoardID     string `gorm:"type:varchar(36);uniqueIndex:idx_assessment_triple"`
	CandidateID string `gorm:"type:varchar(36);uniqueIndex:idx_assessment_triple"`
	EvaluatorID string `gorm:"type:varchar(36);uniqueIndex:idx_assessment_triple"`
	Score       int
	Notes       string
	Decision    models.HiringStatus `gorm:"type:varchar(50)"`
}
