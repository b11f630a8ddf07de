package models

type Metric struct {
	Name string `gorm:"primaryKey;size:50" json:"name"`
	Num  int64  `gorm:"not null;default:0" json:"num"`
}

func (Metric) TableName() string { return "metrics" }

const (
	MetricAccess = "access"
	MetricAnswer = "answer"
)
