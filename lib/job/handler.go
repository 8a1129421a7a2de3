package jobhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eval-board-backend/db"
	candidatestore "eval-board-backend/lib/candidate/store"
	jobstore "eval-board-backend/lib/job/store"
	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	jobapimodels "eval-board-backend/models/api/job"
	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(data jobapimodels.JobData) (id string, hMsg string, err error)
	Update(jobID int, data jobapimodels.JobData) error
	GetByJobID(jobID int) (item jobapimodels.JobView, err error)
	Delete(jobID int) error
	List(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	// HasVacancy проверяет, можно ли привязать к вакансии еще одного кандидата.
	// Вакансия не найдена - мест нет. VacancyCount = 0 - без ограничения.
	// tx позволяет выполнять проверку в транзакции вместе с привязкой.
	HasVacancy(tx *gorm.DB, jobID int, excludeCandidateID string) (bool, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          jobstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          jobstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) getLogger(jobID int) *log.Entry {
	return log.WithField("job_id", jobID)
}

func (i impl) Create(data jobapimodels.JobData) (id string, hMsg string, err error) {
	existed, err := i.store.GetByJobID(data.JobID)
	if err != nil {
		return "", "", err
	}
	if existed != nil {
		return "", "вакансия с таким идентификатором уже существует", nil
	}
	rec := dbmodels.Job{
		JobID:          data.JobID,
		JobName:        data.JobName,
		OrganizationID: data.OrganizationID,
		InstituteID:    data.InstituteID,
		DepartmentID:   data.DepartmentID,
		CategoryID:     data.CategoryID,
		TestID:         data.TestID,
		VacancyCount:   data.VacancyCount,
		Status:         models.JobStatusOpened,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	i.getLogger(data.JobID).Info("Создана вакансия")
	return id, "", nil
}

func (i impl) Update(jobID int, data jobapimodels.JobData) error {
	rec, err := i.store.GetByJobID(jobID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "вакансия не найдена")
	}
	updMap := map[string]interface{}{
		"job_name":        data.JobName,
		"organization_id": data.OrganizationID,
		"institute_id":    data.InstituteID,
		"department_id":   data.DepartmentID,
		"category_id":     data.CategoryID,
		"test_id":         data.TestID,
		"vacancy_count":   data.VacancyCount,
	}
	return i.store.Update(jobID, updMap)
}

func (i impl) GetByJobID(jobID int) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByJobID(jobID)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, errors.Wrap(apimodels.ErrNotFound, "вакансия не найдена")
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) Delete(jobID int) error {
	rec, err := i.store.GetByJobID(jobID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "вакансия не найдена")
	}
	return i.store.Delete(jobID)
}

func (i impl) List(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter.JobFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	recs, err := i.store.List(filter.JobFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]jobapimodels.JobView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, jobapimodels.JobConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) HasVacancy(tx *gorm.DB, jobID int, excludeCandidateID string) (bool, error) {
	jStore := i.store
	cStore := i.candidateStore
	if tx != nil {
		jStore = jobstore.NewInstance(tx)
		cStore = candidatestore.NewInstance(tx)
	}
	rec, err := jStore.GetByJobID(jobID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		// закрываемся: нет вакансии - нет мест
		return false, nil
	}
	if rec.VacancyCount == 0 {
		return true, nil
	}
	count, err := cStore.CountBoundToJob(jobID, excludeCandidateID)
	if err != nil {
		return false, err
	}
	return count < int64(rec.VacancyCount), nil
}
