package models

import "time"

// Answer rows are append-only: corrections arrive as new rows, never
// updates. AnswerUUID groups all rows written by one respondent traversal.
type Answer struct {
	AnswerSectionUUID string    `gorm:"column:AnswerSectionUUID;primaryKey;size:36" json:"AnswerSectionUUID"`
	FormUUID          string    `gorm:"column:FormUUID;size:36;not null;index:idx_answer_form_section" json:"FormUUID"`
	SectionUUID       string    `gorm:"column:SectionUUID;size:36;not null;index:idx_answer_form_section" json:"SectionUUID"`
	AnswerUUID        string    `gorm:"column:AnswerUUID;size:36;not null;index" json:"AnswerUUID"`
	Answer            string    `gorm:"column:Answer;type:text;not null" json:"Answer"`
	CreatedAt         time.Time `gorm:"column:CreatedAt" json:"CreatedAt"`
}

func (Answer) TableName() string { return "Answer" }
