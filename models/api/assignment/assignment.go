package assignmentapimodels

import (
	"time"

	"github.com/pkg/errors"

	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	dbmodels "eval-board-backend/models/db"
)

type AssignmentView struct {
	ID               string                  `json:"id"`
	AssignmentID     int                     `json:"assignment_id"`
	CandidateID      string                  `json:"candidate_id"`
	TestID           int                     `json:"test_id"`
	JobID            int                     `json:"job_id"`
	BoardID          *string                 `json:"board_id,omitempty"`
	AssignmentStatus models.AssignmentStatus `json:"assignment_status"`
	ScheduledDate    time.Time               `json:"scheduled_date"`
	ExpiryDate       time.Time               `json:"expiry_date"`
	CompletionStatus models.CompletionStatus `json:"completion_status"`
	Score            *float64                `json:"score,omitempty"`
	MaxScore         *float64                `json:"max_score,omitempty"`
}

func AssignmentConvert(rec dbmodels.TestAssignment) AssignmentView {
	return AssignmentView{
		ID:               rec.ID,
		AssignmentID:     rec.AssignmentID,
		CandidateID:      rec.CandidateID,
		TestID:           rec.TestID,
		JobID:            rec.JobID,
		BoardID:          rec.BoardID,
		AssignmentStatus: rec.AssignmentStatus,
		ScheduledDate:    rec.ScheduledDate,
		ExpiryDate:       rec.ExpiryDate,
		CompletionStatus: rec.CompletionStatus,
		Score:            rec.Score,
		MaxScore:         rec.MaxScore,
	}
}

type StatusChangeData struct {
	Status models.AssignmentStatus `json:"status"`
	Score  *float64                `json:"score"`
}

func (s StatusChangeData) Validate() error {
	if !s.Status.IsValid() {
		return errors.New("неизвестный статус назначения теста")
	}
	return nil
}

type AssignmentFilter struct {
	apimodels.Pagination
	dbmodels.AssignmentFilter
}
