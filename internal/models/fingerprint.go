package models

import "time"

// FingerPrint marks a (form, device) pair as having responded. At most one
// row exists per pair; the unique index backstops the check-then-insert in
// the fingerprint service when two submissions race.
type FingerPrint struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FormUUID    string    `gorm:"column:FormUUID;size:36;not null;uniqueIndex:idx_fingerprint_form" json:"FormUUID"`
	Fingerprint string    `gorm:"column:fingerprint;size:128;not null;uniqueIndex:idx_fingerprint_form" json:"fingerprint"`
	Hash        string    `gorm:"column:hash;size:64;not null" json:"hash"`
	CreatedAt   time.Time `json:"created_at"`
}

func (FingerPrint) TableName() string { return "FingerPrint" }
