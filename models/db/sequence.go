package dbmodels

// Sequence - выделенный счетчик для сквозных номеров,
// обновляется атомарно (см. sequencestore)
type Sequence struct {
	Name  string `gorm:"primaryKey;type:varchar(100)"`
	Value int64
}

const SequenceTestAssignment = "test_assignment"
