package jobstore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByJobID(jobID int) (rec *dbmodels.Job, err error)
	ListByJobIDs(jobIDs []int) (list []dbmodels.Job, err error)
	Update(jobID int, updMap map[string]interface{}) error
	Delete(jobID int) error
	ListCount(filter dbmodels.JobFilter) (count int64, err error)
	List(filter dbmodels.JobFilter, page, limit int) (list []dbmodels.Job, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByJobID(jobID int) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("job_id = ?", jobID).
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

func (i impl) ListByJobIDs(jobIDs []int) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	if len(jobIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Model(&dbmodels.Job{}).
		Where("job_id IN ?", jobIDs).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(jobID int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("job_id = ?", jobID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(jobID int) error {
	return i.db.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.Job{}).
		Error
}

func (i impl) ListCount(filter dbmodels.JobFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Job{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества вакансий")
		return 0, errors.New("ошибка получения общего количества вакансий")
	}
	return rowCount, nil
}

func (i impl) List(filter dbmodels.JobFilter, page, limit int) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	offset := (page - 1) * limit
	tx := i.db.
		Model(dbmodels.Job{})
	i.addFilter(tx, filter)
	err = tx.
		Order("job_id").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.JobFilter) {
	if filter.Search != "" {
		tx.Where("lower(job_name) like lower(?)", "%"+filter.Search+"%")
	}
	if filter.OrganizationID != 0 {
		tx.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.InstituteID != 0 {
		tx.Where("institute_id = ?", filter.InstituteID)
	}
	if filter.DepartmentID != 0 {
		tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.CategoryID != 0 {
		tx.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
}
