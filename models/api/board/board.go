package boardapimodels

import (
	"time"

	"github.com/pkg/errors"

	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	dbmodels "eval-board-backend/models/db"
)

type BoardData struct {
	BoardName        string    `json:"board_name"`        // название комиссии
	BoardDescription string    `json:"board_description"` // описание
	BoardDate        time.Time `json:"board_date"`        // дата проведения
	JobID            int       `json:"job_id"`            // устаревшее поле, одна вакансия
	JobIDs           []int     `json:"job_ids"`           // набор вакансий комиссии
}

func (b BoardData) Validate() error {
	if b.BoardName == "" {
		return errors.New("не указано название комиссии")
	}
	if b.BoardDate.IsZero() {
		return errors.New("не указана дата проведения комиссии")
	}
	if len(b.EffectiveJobIDs()) == 0 {
		return errors.New("должна быть выбрана хотя бы одна вакансия")
	}
	return nil
}

// EffectiveJobIDs - набор вакансий с учетом устаревшего скалярного поля
func (b BoardData) EffectiveJobIDs() []int {
	if len(b.JobIDs) > 0 {
		return b.JobIDs
	}
	if b.JobID != 0 {
		return []int{b.JobID}
	}
	return nil
}

type BoardUpdateData struct {
	BoardName        string             `json:"board_name"`
	BoardDescription string             `json:"board_description"`
	BoardDate        *time.Time         `json:"board_date"`
	Status           models.BoardStatus `json:"status"`
}

type BoardCandidateView struct {
	CandidateID      string                  `json:"candidate_id"`
	FirstName        string                  `json:"first_name"`
	LastName         string                  `json:"last_name"`
	MiddleName       string                  `json:"middle_name"`
	JobID            int                     `json:"job_id"` // вакансия комиссии, по которой проходит кандидат
	AssessmentStatus models.AssessmentStatus `json:"assessment_status"`
	AssignedDate     time.Time               `json:"assigned_date"`
	TestScores       *TestScoresView         `json:"test_scores,omitempty"`
}

type TestScoresView struct {
	AssignmentID     int                     `json:"assignment_id"`
	TestID           int                     `json:"test_id"`
	CompletionStatus models.CompletionStatus `json:"completion_status"`
	Score            *float64                `json:"score,omitempty"`
	MaxScore         *float64                `json:"max_score,omitempty"`
}

type BoardView struct {
	ID               string               `json:"id"`
	BoardName        string               `json:"board_name"`
	BoardDescription string               `json:"board_description"`
	BoardDate        time.Time            `json:"board_date"`
	Status           models.BoardStatus   `json:"status"`
	JobID            int                  `json:"job_id"` // всегда равно job_ids[0]
	JobIDs           []int                `json:"job_ids"`
	Candidates       []BoardCandidateView `json:"candidates"`
	CreationDate     time.Time            `json:"creation_date"`
}

func BoardConvert(rec dbmodels.Board) BoardView {
	result := BoardView{
		ID:               rec.ID,
		BoardName:        rec.BoardName,
		BoardDescription: rec.BoardDescription,
		BoardDate:        rec.BoardDate,
		Status:           rec.Status,
		JobID:            rec.JobID,
		JobIDs:           rec.EffectiveJobIDs(),
		Candidates:       make([]BoardCandidateView, 0, len(rec.Candidates)),
		CreationDate:     rec.CreatedAt,
	}
	for _, bc := range rec.Candidates {
		result.Candidates = append(result.Candidates, BoardCandidateConvert(bc, nil))
	}
	return result
}

func BoardCandidateConvert(rec dbmodels.BoardCandidate, assignment *dbmodels.TestAssignment) BoardCandidateView {
	view := BoardCandidateView{
		CandidateID:      rec.CandidateID,
		JobID:            rec.JobID,
		AssessmentStatus: rec.AssessmentStatus,
		AssignedDate:     rec.AssignedDate,
	}
	if rec.Candidate != nil {
		view.FirstName = rec.Candidate.FirstName
		view.LastName = rec.Candidate.LastName
		view.MiddleName = rec.Candidate.MiddleName
	}
	if assignment != nil {
		scores := TestScoresView{
			AssignmentID:     assignment.AssignmentID,
			TestID:           assignment.TestID,
			CompletionStatus: assignment.CompletionStatus,
		}
		// баллы отдаем только по завершенным тестам
		if assignment.CompletionStatus == models.CompletionStatusCompleted {
			scores.Score = assignment.Score
			scores.MaxScore = assignment.MaxScore
		}
		view.TestScores = &scores
	}
	return view
}

type AssignCandidatesData struct {
	CandidateIDs []string `json:"candidate_ids"`
}

func (a AssignCandidatesData) Validate() error {
	if len(a.CandidateIDs) == 0 {
		return errors.New("не указаны кандидаты для включения в комиссию")
	}
	return nil
}

// AssignResult - итог частично успешной пакетной операции
type AssignResult struct {
	Assigned       int        `json:"assigned"`           // добавлено кандидатов
	AlreadyPresent int        `json:"already_present"`    // уже были в комиссии
	Skipped        int        `json:"skipped"`            // пропущено (не найдены/без вакансии)
	NewJobs        []int      `json:"new_jobs,omitempty"` // вакансии, добавленные в комиссию
	Board          *BoardView `json:"board,omitempty"`
}

type BoardFilter struct {
	apimodels.Pagination
	dbmodels.BoardFilter
}

type AssessmentData struct {
	EvaluatorID string              `json:"evaluator_id"` // ид оценивающего члена комиссии
	Score       int                 `json:"score"`
	Notes       string              `json:"notes"`
	Decision    models.HiringStatus `json:"decision"`
}

func (a AssessmentData) Validate() error {
	if a.EvaluatorID == "" {
		return errors.New("не указан оценивающий член комиссии")
	}
	return nil
}

type BoardStatusData struct {
	Status models.BoardStatus `json:"status"`
}
