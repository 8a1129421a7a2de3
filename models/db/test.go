package dbmodels

type Test struct {
	BaseModel
	TestID          int    `gorm:"uniqueIndex"`
	TestName        string `gorm:"type:varchar(255)"`
	DurationMinutes int
	MaxScore        int
}
