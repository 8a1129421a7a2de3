package boardstore

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Board) (id string, err error)
	GetByID(id string) (rec *dbmodels.Board, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateJobSet сохраняет расширенный набор вакансий,
	// поддерживая зеркало устаревшего скалярного поля
	UpdateJobSet(id string, jobIDs []int) error
	Delete(id string) error
	AddCandidates(recs []dbmodels.BoardCandidate) error
	DeleteCandidate(boardID, candidateID string) error
	UpdateCandidateStatus(boardID, candidateID string, updMap map[string]interface{}) error
	ListCount(filter dbmodels.BoardFilter) (count int64, err error)
	List(filter dbmodels.BoardFilter, page, limit int) (list []dbmodels.Board, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Board) (id string, err error) {
	rec.Normalize()
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Board, error) {
	rec := dbmodels.Board{}
	err := i.db.
		Model(&dbmodels.Board{}).
		Where("id = ?", id).
		Preload("Candidates").
		Preload("Candidates.Candidate").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Board{}).
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

func (i impl) UpdateJobSet(id string, jobIDs []int) error {
	if len(jobIDs) == 0 {
		return errors.New("набор вакансий комиссии не может быть пустым")
	}
	arr := make(pq.Int64Array, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		arr = append(arr, int64(jobID))
	}
	return i.Update(id, map[string]interface{}{
		"job_ids": arr,
		"job_id":  jobIDs[0],
	})
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Board{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) AddCandidates(recs []dbmodels.BoardCandidate) error {
	if len(recs) == 0 {
		return nil
	}
	return i.db.
		Omit(clause.Associations).
		Create(&recs).
		Error
}

func (i impl) DeleteCandidate(boardID, candidateID string) error {
	rec := dbmodels.BoardCandidate{}
	tx := i.db.
		Clauses(clause.Returning{}).
		Where("board_id = ?", boardID).
		Where("candidate_id = ?", candidateID).
		Delete(&rec)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("кандидат не состоит в комиссии")
	}
	return nil
}

func (i impl) UpdateCandidateStatus(boardID, candidateID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.BoardCandidate{}).
		Where("board_id = ?", boardID).
		Where("candidate_id = ?", candidateID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("кандидат не состоит в комиссии")
	}
	return nil
}

func (i impl) ListCount(filter dbmodels.BoardFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Board{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества комиссий")
		return 0, errors.New("ошибка получения общего количества комиссий")
	}
	return rowCount, nil
}

func (i impl) List(filter dbmodels.BoardFilter, page, limit int) (list []dbmodels.Board, err error) {
	list = []dbmodels.Board{}
	offset := (page - 1) * limit
	tx := i.db.
		Model(dbmodels.Board{})
	i.addFilter(tx, filter)
	err = tx.
		Preload("Candidates").
		Order("board_date desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.BoardFilter) {
	if filter.Search != "" {
		tx.Where("lower(board_name) like lower(?)", "%"+filter.Search+"%")
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.JobID != 0 {
		tx.Where("? = ANY(job_ids) OR job_id = ?", filter.JobID, filter.JobID)
	}
	if filter.DateFrom != nil {
		tx.Where("board_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx.Where("board_date <= ?", *filter.DateTo)
	}
}
