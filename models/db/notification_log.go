package dbmodels

import (
	"eval-board-backend/models"
)

// NotificationLog - журнал попыток отправки уведомлений,
// отправка не влияет на результат основной операции
type NotificationLog struct {
	BaseModel
	RecipientKind models.NotifyRecipientKind `gorm:"type:varchar(50)"`
	Recipient     string                     `gorm:"type:varchar(255)"`
	AssignmentID  int                        `gorm:"index"`
	BoardID       *string                    `gorm:"type:varchar(36)"`
	Status        models.NotifyStatus        `gorm:"type:varchar(50)"`
	ErrorText     string
}
