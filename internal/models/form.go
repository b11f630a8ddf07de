package models

import "time"

// Column names mirror the production schema exactly (CamelCase, so always
// referenced through quoted identifiers).
type Form struct {
	FormUUID       string    `gorm:"column:FormUUID;primaryKey;size:36" json:"FormUUID"`
	FormName       string    `gorm:"column:FormName;size:255;not null" json:"FormName"`
	FormMessage    string    `gorm:"column:FormMessage;type:text" json:"FormMessage"`
	SingleResponse bool      `gorm:"column:singleResponse;not null;default:false" json:"singleResponse"`
	Delete         bool      `gorm:"column:Delete;not null;default:false;index" json:"Delete"`
	UserID         *uint     `gorm:"column:UserID;index" json:"UserID,omitempty"`
	Sections       []Section `gorm:"foreignKey:FormUUID;references:FormUUID" json:"sections,omitempty"`
	CreatedAt      time.Time `gorm:"column:CreatedAt" json:"CreatedAt"`
	UpdatedAt      time.Time `gorm:"column:UpdatedAt" json:"UpdatedAt"`
}

func (Form) TableName() string { return "Form" }
