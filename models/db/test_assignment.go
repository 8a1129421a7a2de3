package dbmodels

import (
	"time"

	"eval-board-backend/models"
)

type TestAssignment struct {
	BaseModel
	// AssignmentID - сквозной числовой номер назначения,
	// выделяется из последовательности независимо от первичного ключа
	AssignmentID     int                     `gorm:"uniqueIndex"`
	CandidateID      string                  `gorm:"type:varchar(36);index"`
	TestID           int                     `gorm:"index"`
	JobID            int                     `gorm:"index"`
	BoardID          *string                 `gorm:"type:varchar(36);index"` // может быть дозаполнен позже
	AssignmentStatus models.AssignmentStatus `gorm:"type:varchar(50)"`
	ScheduledDate    time.Time
	ExpiryDate       time.Time
	CompletionStatus models.CompletionStatus `gorm:"type:varchar(50)"`
	Score            *float64
	MaxScore         *float64
}

type AssignmentFilter struct {
	BoardID     string                  `json:"board_id"`
	CandidateID string                  `json:"candidate_id"`
	TestID      int                     `json:"test_id"`
	JobID       int                     `json:"job_id"`
	Status      models.AssignmentStatus `json:"status"`
}
