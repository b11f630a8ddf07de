package models

import "time"

// SectionType is the tag stored on a Section that selects how its
// descriptor is interpreted and how its answers are aggregated.
type SectionType string

const (
	SectionRadio     SectionType = "radio"
	SectionCheckbox  SectionType = "checkbox"
	SectionText      SectionType = "text"
	SectionStar      SectionType = "star"
	SectionTwoChoice SectionType = "two_choice"
	SectionSlider    SectionType = "slider"
)

// NormalizeSectionType maps stored type tags to their canonical value.
// Old rows carry "check" where the UI now writes "checkbox".
func NormalizeSectionType(s string) SectionType {
	if s == "check" {
		return SectionCheckbox
	}
	return SectionType(s)
}

func (t SectionType) Known() bool {
	switch t {
	case SectionRadio, SectionCheckbox, SectionText, SectionStar, SectionTwoChoice, SectionSlider:
		return true
	}
	return false
}

type Section struct {
	SectionUUID  string      `gorm:"column:SectionUUID;primaryKey;size:36" json:"SectionUUID"`
	FormUUID     string      `gorm:"column:FormUUID;size:36;not null;index" json:"FormUUID"`
	SectionName  string      `gorm:"column:SectionName;size:255;not null" json:"SectionName"`
	SectionOrder int         `gorm:"column:SectionOrder;not null" json:"SectionOrder"`
	SectionType  SectionType `gorm:"column:SectionType;size:20;not null" json:"SectionType"`
	SectionDesc  string      `gorm:"column:SectionDesc;type:text" json:"SectionDesc"`
	Delete       bool        `gorm:"column:Delete;not null;default:false;index" json:"Delete"`
	CreatedAt    time.Time   `gorm:"column:CreatedAt" json:"CreatedAt"`
	UpdatedAt    time.Time   `gorm:"column:UpdatedAt" json:"UpdatedAt"`
}

func (Section) TableName() string { return "Section" }
