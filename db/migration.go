package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "eval-board-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Job{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Job")
	}
	if err := DB.AutoMigrate(&dbmodels.Test{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Test")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.Board{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Board")
	}
	if err := DB.AutoMigrate(&dbmodels.BoardCandidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BoardCandidate")
	}
	if err := DB.AutoMigrate(&dbmodels.TestAssignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TestAssignment")
	}
	if err := DB.AutoMigrate(&dbmodels.Assessment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Assessment")
	}
	if err := DB.AutoMigrate(&dbmodels.Sequence{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Sequence")
	}
	if err := DB.AutoMigrate(&dbmodels.NotificationLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NotificationLog")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
