package candidatehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eval-board-backend/db"
	candidatestore "eval-board-backend/lib/candidate/store"
	jobhandler "eval-board-backend/lib/job"
	jobstore "eval-board-backend/lib/job/store"
	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	candidateapimodels "eval-board-backend/models/api/candidate"
	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(data candidateapimodels.CandidateData) (id string, hMsg string, err error)
	Update(id string, data candidateapimodels.CandidateData) (hMsg string, err error)
	GetByID(id string) (item candidateapimodels.CandidateView, err error)
	Delete(id string) error
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	// Aggregate собирает кандидатов по набору вакансий без повторов.
	// jobOf - вакансия, по которой кандидат попал в выборку
	// (первая по порядку вакансий на входе).
	Aggregate(jobIDs []int) (list []dbmodels.Candidate, jobOf map[string]int, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       candidatestore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		jobProvider: jobhandler.Instance,
	}
}

type impl struct {
	store       candidatestore.Provider
	jobStore    jobstore.Provider
	jobProvider jobhandler.Provider
}

func (i impl) getLogger(id string) *log.Entry {
	return log.WithField("candidate_id", id)
}

// checkVacancies прогоняет проверку мест по каждому из полей привязки,
// отказ по любому полю отклоняет операцию целиком
func (i impl) checkVacancies(tx *gorm.DB, data candidateapimodels.CandidateData, excludeCandidateID string) (hMsg string, err error) {
	for _, jobID := range data.JobRefs() {
		ok, err := i.jobProvider.HasVacancy(tx, jobID, excludeCandidateID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "по вакансии нет свободных мест", nil
		}
	}
	return "", nil
}

func (i impl) Create(data candidateapimodels.CandidateData) (id string, hMsg string, err error) {
	recID := ""
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		hMsg, err = i.checkVacancies(tx, data, "")
		if err != nil || hMsg != "" {
			return err
		}
		rec := dbmodels.Candidate{
			FirstName:     data.FirstName,
			LastName:      data.LastName,
			MiddleName:    data.MiddleName,
			Phone:         data.Phone,
			Email:         data.Email,
			UserEmail:     data.UserEmail,
			JobID:         data.JobID,
			AppliedJobID:  data.AppliedJobID,
			CurrentJobID:  data.CurrentJobID,
			CandidateType: data.CandidateType,
			HiringStatus:  data.HiringStatus,
		}
		if rec.HiringStatus == "" {
			rec.HiringStatus = models.HiringStatusApplied
		}
		store := candidatestore.NewInstance(tx)
		recID, err = store.Create(rec)
		return err
	})
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	i.getLogger(recID).Info("Создан кандидат")
	return recID, "", nil
}

func (i impl) Update(id string, data candidateapimodels.CandidateData) (hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.Wrap(apimodels.ErrNotFound, "кандидат не найден")
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		hMsg, err = i.checkVacancies(tx, data, id)
		if err != nil || hMsg != "" {
			return err
		}
		updMap := map[string]interface{}{
			"first_name":     data.FirstName,
			"last_name":      data.LastName,
			"middle_name":    data.MiddleName,
			"phone":          data.Phone,
			"email":          data.Email,
			"user_email":     data.UserEmail,
			"job_id":         data.JobID,
			"applied_job_id": data.AppliedJobID,
			"current_job_id": data.CurrentJobID,
			"candidate_type": data.CandidateType,
			"hiring_status":  data.HiringStatus,
		}
		store := candidatestore.NewInstance(tx)
		return store.Update(id, updMap)
	})
	return hMsg, err
}

func (i impl) GetByID(id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, errors.Wrap(apimodels.ErrNotFound, "кандидат не найден")
	}
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "кандидат не найден")
	}
	return i.store.Delete(id)
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter.CandidateFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	recs, err := i.store.List(filter.CandidateFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]candidateapimodels.CandidateView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, candidateapimodels.CandidateConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Aggregate(jobIDs []int) (list []dbmodels.Candidate, jobOf map[string]int, err error) {
	list = []dbmodels.Candidate{}
	jobOf = map[string]int{}
	seen := map[string]bool{}
	for _, jobID := range jobIDs {
		job, err := i.jobStore.GetByJobID(jobID)
		if err != nil {
			return nil, nil, err
		}
		if job == nil {
			// не найденная вакансия не прерывает сборку
			log.WithField("job_id", jobID).Warn("вакансия не найдена, пропущена при сборке кандидатов")
			continue
		}
		candidates, err := i.store.ListByAppliedJob(jobID)
		if err != nil {
			return nil, nil, err
		}
		for _, rec := range candidates {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			jobOf[rec.ID] = jobID
			list = append(list, rec)
		}
	}
	return list, jobOf, nil
}
