package sequencestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	// NextBatch атомарно выделяет n последовательных номеров
	// и возвращает первый из них. Параллельные пакеты не пересекаются.
	NextBatch(name string, n int) (first int, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) NextBatch(name string, n int) (first int, err error) {
	if n <= 0 {
		return 0, errors.New("размер пакета должен быть положительным")
	}
	var last int64
	err = i.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Raw("UPDATE sequences SET value = value + ? WHERE name = ? RETURNING value", n, name).Scan(&last)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// счетчик еще не заведен, инициализируем от максимального
		// выданного номера (миграция со схемы без счетчика)
		var maxID int64
		err := tx.
			Model(&dbmodels.TestAssignment{}).
			Select("COALESCE(MAX(assignment_id), 0)").
			Scan(&maxID).
			Error
		if err != nil {
			return err
		}
		err = tx.Exec("INSERT INTO sequences (name, value) VALUES (?, ?) ON CONFLICT (name) DO NOTHING", name, maxID).Error
		if err != nil {
			return err
		}
		return tx.Raw("UPDATE sequences SET value = value + ? WHERE name = ? RETURNING value", n, name).Scan(&last).Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "ошибка выделения номеров из последовательности")
	}
	return int(last) - n + 1, nil
}
