package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eval-board-backend/models"
)

type Board struct {
	BaseModel
	BoardName        string `gorm:"type:varchar(255)"`
	BoardDescription string
	BoardDate        time.Time
	Status           models.BoardStatus `gorm:"type:varchar(50)"`
	// JobIDs - каноническое представление набора вакансий комиссии.
	// JobID - устаревшее скалярное поле, всегда равно JobIDs[0],
	// сохранено для совместимости со старыми читателями.
	JobID      int
	JobIDs     pq.Int64Array    `gorm:"type:integer[]"`
	Candidates []BoardCandidate `gorm:"foreignKey:BoardID"`
}

func (b *Board) AfterDelete(tx *gorm.DB) (err error) {
	if b.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("board_id = ?", b.ID).Delete(&Assessment{})
	tx.Clauses(clause.Returning{}).Where("board_id = ?", b.ID).Delete(&BoardCandidate{})
	return
}

// Normalize приводит набор вакансий к каноническому виду:
// устаревший скаляр мигрирует в список, JobID зеркалирует JobIDs[0]
func (b *Board) Normalize() {
	if len(b.JobIDs) == 0 && b.JobID != 0 {
		b.JobIDs = pq.Int64Array{int64(b.JobID)}
	}
	if len(b.JobIDs) > 0 {
		b.JobID = int(b.JobIDs[0])
	}
}

// EffectiveJobIDs - рабочий набор вакансий с учетом устаревшего скаляра
func (b Board) EffectiveJobIDs() []int {
	if len(b.JobIDs) > 0 {
		result := make([]int, 0, len(b.JobIDs))
		for _, id := range b.JobIDs {
			result = append(result, int(id))
		}
		return result
	}
	if b.JobID != 0 {
		return []int{b.JobID}
	}
	return nil
}

func (b Board) HasJob(jobID int) bool {
	for _, id := range b.EffectiveJobIDs() {
		if id == jobID {
			return true
		}
	}
	return false
}

func (b Board) HasCandidate(candidateID string) bool {
	for _, rec := range b.Candidates {
		if rec.CandidateID == candidateID {
			return true
		}
	}
	return false
}

type BoardCandidate struct {
	BaseModel
	BoardID          string                  `gorm:"type:varchar(36);uniqueIndex:idx_board_candidate"`
	CandidateID      string                  `gorm:"type:varchar(36);uniqueIndex:idx_board_candidate"`
	Candidate        *Candidate              `gorm:"foreignKey:CandidateID"`
	AssessmentStatus models.AssessmentStatus `gorm:"type:varchar(50)"`
	AssignedDate     time.Time
	JobID            int // вакансия комиссии, к которой относится кандидат
}

type BoardFilter struct {
	Search   string             `json:"search"`
	Status   models.BoardStatus `json:"status"`
	JobID    int                `json:"job_id"`
	DateFrom *time.Time         `json:"date_from"`
	DateTo   *time.Time         `json:"date_to"`
}
