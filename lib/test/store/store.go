package teststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	GetByTestID(testID int) (rec *dbmodels.Test, err error)
	ListByTestIDs(testIDs []int) (list []dbmodels.Test, err error)
	Save(rec dbmodels.Test) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByTestID(testID int) (*dbmodels.Test, error) {
	rec := dbmodels.Test{}
	err := i.db.
		Model(&dbmodels.Test{}).
		Where("test_id = ?", testID).
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

func (i impl) ListByTestIDs(testIDs []int) (list []dbmodels.Test, err error) {
	list = []dbmodels.Test{}
	if len(testIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Model(&dbmodels.Test{}).
		Where("test_id IN ?", testIDs).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Save(rec dbmodels.Test) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
