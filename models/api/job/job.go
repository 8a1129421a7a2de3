package jobapimodels

import (
	"time"

	"github.com/pkg/errors"

	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	dbmodels "eval-board-backend/models/db"
)

type JobData struct {
	JobID          int    `json:"job_id"`          // бизнес-идентификатор вакансии
	JobName        string `json:"job_name"`        // название
	OrganizationID int    `json:"organization_id"` // ид организации
	InstituteID    int    `json:"institute_id"`    // ид института
	DepartmentID   int    `json:"department_id"`   // ид подразделения
	CategoryID     int    `json:"category_id"`     // ид категории
	TestID         *int   `json:"test_id"`         // привязанный тест
	VacancyCount   int    `json:"vacancy_count"`   // кол-во мест, 0 = без ограничения
}

func (j JobData) Validate() error {
	if j.JobID <= 0 {
		return errors.New("не указан идентификатор вакансии")
	}
	if j.JobName == "" {
		return errors.New("не указано название вакансии")
	}
	if j.VacancyCount < 0 {
		return errors.New("количество мест не может быть отрицательным")
	}
	return nil
}

type JobView struct {
	JobData
	ID           string           `json:"id"`
	Status       models.JobStatus `json:"status"`
	CreationDate time.Time        `json:"creation_date"`
}

func JobConvert(rec dbmodels.Job) JobView {
	return JobView{
		JobData: JobData{
			JobID:          rec.JobID,
			JobName:        rec.JobName,
			OrganizationID: rec.OrganizationID,
			InstituteID:    rec.InstituteID,
			DepartmentID:   rec.DepartmentID,
			CategoryID:     rec.CategoryID,
			TestID:         rec.TestID,
			VacancyCount:   rec.VacancyCount,
		},
		ID:           rec.ID,
		Status:       rec.Status,
		CreationDate: rec.CreatedAt,
	}
}

type JobFilter struct {
	apimodels.Pagination
	dbmodels.JobFilter
}
