package candidatestore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	GetByIDs(ids []string) (list []dbmodels.Candidate, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListByAppliedJob(jobID int) (list []dbmodels.Candidate, err error)
	// CountBoundToJob считает кандидатов, привязанных к вакансии
	// любым из трех исторических полей
	CountBoundToJob(jobID int, excludeCandidateID string) (count int64, err error)
	ListCount(filter dbmodels.CandidateFilter) (count int64, err error)
	List(filter dbmodels.CandidateFilter, page, limit int) (list []dbmodels.Candidate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByIDs(ids []string) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Where("id IN ?", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Candidate{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListByAppliedJob(jobID int) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Where("applied_job_id = ?", jobID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountBoundToJob(jobID int, excludeCandidateID string) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("job_id = ? OR applied_job_id = ? OR current_job_id = ?", jobID, jobID, jobID)
	if excludeCandidateID != "" {
		tx.Where("id <> ?", excludeCandidateID)
	}
	err = tx.Count(&count).Error
	if err != nil {
		log.WithError(err).Error("ошибка подсчета кандидатов по вакансии")
		return 0, errors.New("ошибка подсчета кандидатов по вакансии")
	}
	return count, nil
}

func (i impl) ListCount(filter dbmodels.CandidateFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества кандидатов")
		return 0, errors.New("ошибка получения общего количества кандидатов")
	}
	return rowCount, nil
}

func (i impl) List(filter dbmodels.CandidateFilter, page, limit int) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	offset := (page - 1) * limit
	tx := i.db.
		Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.CandidateFilter) {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		tx.Where("lower(last_name) like lower(?) OR lower(first_name) like lower(?) OR lower(email) like lower(?)", search, search, search)
	}
	if filter.JobID != 0 {
		tx.Where("job_id = ? OR applied_job_id = ? OR current_job_id = ?", filter.JobID, filter.JobID, filter.JobID)
	}
	if filter.CandidateType != "" {
		tx.Where("candidate_type = ?", filter.CandidateType)
	}
	if filter.HiringStatus != "" {
		tx.Where("hiring_status = ?", filter.HiringStatus)
	}
}
