package assignmentstore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	CreateBatch(recs []dbmodels.TestAssignment) error
	GetByAssignmentID(assignmentID int) (rec *dbmodels.TestAssignment, err error)
	Update(assignmentID int, updMap map[string]interface{}) error
	ListByBoard(boardID string) (list []dbmodels.TestAssignment, err error)
	ListByJobIDs(jobIDs []int) (list []dbmodels.TestAssignment, err error)
	// SetBoardID дозаполняет board_id на записях, созданных до появления комиссии
	SetBoardID(ids []string, boardID string) error
	ListCount(filter dbmodels.AssignmentFilter) (count int64, err error)
	List(filter dbmodels.AssignmentFilter, page, limit int) (list []dbmodels.TestAssignment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(recs []dbmodels.TestAssignment) error {
	if len(recs) == 0 {
		return nil
	}
	return i.db.
		Create(&recs).
		Error
}

func (i impl) GetByAssignmentID(assignmentID int) (*dbmodels.TestAssignment, error) {
	rec := dbmodels.TestAssignment{}
	err := i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("assignment_id = ?", assignmentID).
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

func (i impl) Update(assignmentID int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("assignment_id = ?", assignmentID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) ListByBoard(boardID string) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	err = i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("board_id = ?", boardID).
		Order("assignment_id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByJobIDs(jobIDs []int) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	if len(jobIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("job_id IN ?", jobIDs).
		Order("assignment_id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetBoardID(ids []string, boardID string) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("id IN ?", ids).
		Update("board_id", boardID).
		Error
}

func (i impl) ListCount(filter dbmodels.AssignmentFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.TestAssignment{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества назначений")
		return 0, errors.New("ошибка получения общего количества назначений")
	}
	return rowCount, nil
}

func (i impl) List(filter dbmodels.AssignmentFilter, page, limit int) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	offset := (page - 1) * limit
	tx := i.db.
		Model(dbmodels.TestAssignment{})
	i.addFilter(tx, filter)
	err = tx.
		Order("assignment_id desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.AssignmentFilter) {
	if filter.BoardID != "" {
		tx.Where("board_id = ?", filter.BoardID)
	}
	if filter.CandidateID != "" {
		tx.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.TestID != 0 {
		tx.Where("test_id = ?", filter.TestID)
	}
	if filter.JobID != 0 {
		tx.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		tx.Where("assignment_status = ?", filter.Status)
	}
}
