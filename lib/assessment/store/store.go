package assessmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	// Upsert сохраняет оценку по тройке (комиссия, кандидат, оценивающий)
	Upsert(rec dbmodels.Assessment) (id string, err error)
	ListByBoardCandidate(boardID, candidateID string) (list []dbmodels.Assessment, err error)
	DeleteByBoardCandidate(boardID, candidateID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Upsert(rec dbmodels.Assessment) (id string, err error) {
	err = i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "board_id"}, {Name: "candidate_id"}, {Name: "evaluator_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "notes", "decision", "updated_at"}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByBoardCandidate(boardID, candidateID string) (list []dbmodels.Assessment, err error) {
	list = []dbmodels.Assessment{}
	err = i.db.
		Model(&dbmodels.Assessment{}).
		Where("board_id = ?", boardID).
		Where("candidate_id = ?", candidateID).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения оценок кандидата")
	}
	return list, nil
}

func (i impl) DeleteByBoardCandidate(boardID, candidateID string) error {
	return i.db.
		Where("board_id = ?", boardID).
		Where("candidate_id = ?", candidateID).
		Delete(&dbmodels.Assessment{}).
		Error
}
