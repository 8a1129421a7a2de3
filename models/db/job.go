package dbmodels

import (
	"eval-board-backend/models"
)

type Job struct {
	BaseModel
	JobID          int    `gorm:"uniqueIndex"` // бизнес-идентификатор вакансии
	JobName        string `gorm:"type:varchar(255)"`
	OrganizationID int
	InstituteID    int
	DepartmentID   int
	CategoryID     int
	TestID         *int             // привязанный тест, может отсутствовать
	VacancyCount   int              // 0 = без ограничения
	Status         models.JobStatus `gorm:"type:varchar(50)"`
}

type JobFilter struct {
	Search         string           `json:"search"`
	OrganizationID int              `json:"organization_id"`
	InstituteID    int              `json:"institute_id"`
	DepartmentID   int              `json:"department_id"`
	CategoryID     int              `json:"category_id"`
	Status         models.JobStatus `json:"status"`
}
