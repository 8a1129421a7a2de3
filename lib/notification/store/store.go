package notificationstore

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.NotificationLog) error
	ListByAssignment(assignmentID int) (list []dbmodels.NotificationLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.NotificationLog) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return i.db.
		Create(&rec).
		Error
}

func (i impl) ListByAssignment(assignmentID int) (list []dbmodels.NotificationLog, err error) {
	list = []dbmodels.NotificationLog{}
	err = i.db.
		Model(&dbmodels.NotificationLog{}).
		Where("assignment_id = ?", assignmentID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
