package candidateapimodels

import (
	"time"

	"github.com/pkg/errors"

	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	dbmodels "eval-board-backend/models/db"
)

type CandidateData struct {
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	MiddleName    string               `json:"middle_name"`
	Phone         string               `json:"phone"`
	Email         string               `json:"email"`
	UserEmail     string               `json:"user_email"`     // почта привязанной учетной записи
	JobID         *int                 `json:"job_id"`         // привязка к вакансии
	AppliedJobID  *int                 `json:"applied_job_id"` // вакансия отклика
	CurrentJobID  *int                 `json:"current_job_id"` // текущая вакансия
	CandidateType models.CandidateType `json:"candidate_type"`
	HiringStatus  models.HiringStatus  `json:"hiring_status"`
}

func (c CandidateData) Validate() error {
	if c.LastName == "" {
		return errors.New("не указана фамилия кандидата")
	}
	if c.FirstName == "" {
		return errors.New("не указано имя кандидата")
	}
	if c.CandidateType == "" {
		return errors.New("не указан тип кандидата")
	}
	return nil
}

// JobRefs - перечень вакансий из трех полей привязки, без повторов
func (c CandidateData) JobRefs() []int {
	seen := map[int]bool{}
	refs := make([]int, 0, 3)
	for _, ref := range []*int{c.JobID, c.AppliedJobID, c.CurrentJobID} {
		if ref != nil && *ref != 0 && !seen[*ref] {
			seen[*ref] = true
			refs = append(refs, *ref)
		}
	}
	return refs
}

type CandidateView struct {
	CandidateData
	ID           string    `json:"id"`
	CreationDate time.Time `json:"creation_date"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		CandidateData: CandidateData{
			FirstName:     rec.FirstName,
			LastName:      rec.LastName,
			MiddleName:    rec.MiddleName,
			Phone:         rec.Phone,
			Email:         rec.Email,
			UserEmail:     rec.UserEmail,
			JobID:         rec.JobID,
			AppliedJobID:  rec.AppliedJobID,
			CurrentJobID:  rec.CurrentJobID,
			CandidateType: rec.CandidateType,
			HiringStatus:  rec.HiringStatus,
		},
		ID:           rec.ID,
		CreationDate: rec.CreatedAt,
	}
}

type CandidateFilter struct {
	apimodels.Pagination
	dbmodels.CandidateFilter
}
