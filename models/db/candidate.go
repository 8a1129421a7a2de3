package dbmodels

import (
	"eval-board-backend/models"
)

type Candidate struct {
	BaseModel
	FirstName     string               `gorm:"type:varchar(255)"`
	LastName      string               `gorm:"type:varchar(255)"`
	MiddleName    string               `gorm:"type:varchar(255)"`
	Phone         string               `gorm:"type:varchar(255)"`
	Email         string               `gorm:"type:varchar(255)"`
	UserEmail     string               `gorm:"type:varchar(255)"` // почта привязанной учетной записи, пусто = уведомления не отправляются
	JobID         *int                 `gorm:"index"`
	AppliedJobID  *int                 `gorm:"index"`
	CurrentJobID  *int                 `gorm:"index"`
	CandidateType models.CandidateType `gorm:"type:varchar(50)"`
	HiringStatus  models.HiringStatus  `gorm:"type:varchar(50)"`
}

// JobRefs - все три исторических поля привязки к вакансии
func (c Candidate) JobRefs() []int {
	refs := make([]int, 0, 3)
	for _, ref := range []*int{c.JobID, c.AppliedJobID, c.CurrentJobID} {
		if ref != nil && *ref != 0 {
			refs = append(refs, *ref)
		}
	}
	return refs
}

// BoardJobID - вакансия кандидата для включения в комиссию,
// приоритет у текущей вакансии, затем вакансия отклика
func (c Candidate) BoardJobID() (int, bool) {
	if c.CurrentJobID != nil && *c.CurrentJobID != 0 {
		return *c.CurrentJobID, true
	}
	if c.AppliedJobID != nil && *c.AppliedJobID != 0 {
		return *c.AppliedJobID, true
	}
	return 0, false
}

type CandidateFilter struct {
	Search        string               `json:"search"`
	JobID         int                  `json:"job_id"`
	CandidateType models.CandidateType `json:"candidate_type"`
	HiringStatus  models.HiringStatus  `json:"hiring_status"`
}
