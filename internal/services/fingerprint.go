package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"

	"gorm.io/gorm"
)

type FingerprintService struct {
	db *gorm.DB
}

func NewFingerprintService(db *gorm.DB) *FingerprintService {
	return &FingerprintService{db: db}
}

// HashFingerprint derives the stored hash for a (form, device) pair. The
// hash is deterministic so two near-simultaneous submissions from one
// device collide on the same record.
func HashFingerprint(formUUID, fingerprint string) string {
	sum := sha256.Sum256([]byte(formUUID + ":" + fingerprint))
	return hex.EncodeToString(sum[:])
}

// CheckDuplicate reports whether this device already responded to the
// form. Absence and presence are both non-error outcomes; an error return
// means the check itself failed, and callers treat that as "allow" rather
// than blocking a respondent on infrastructure trouble.
func (s *FingerprintService) CheckDuplicate(formUUID, fingerprint string) (bool, error) {
	if formUUID == "" || fingerprint == "" {
		return false, fault.Validation("fingerprint and FormUUID are required")
	}

	var record models.FingerPrint
	err := s.db.Where(map[string]any{"FormUUID": formUUID, "fingerprint": fingerprint}).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fault.NewInternalError("check fingerprint", err)
	}
	return true, nil
}

// Record marks a (form, device) pair as having responded. It is
// idempotent: a pair that is already recorded, including by a racing
// insert, reports created=false and no error.
func (s *FingerprintService) Record(formUUID, fingerprint string) (bool, error) {
	if formUUID == "" || fingerprint == "" {
		return false, fault.Validation("fingerprint and FormUUID are required")
	}

	exists, err := s.CheckDuplicate(formUUID, fingerprint)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	record := models.FingerPrint{
		FormUUID:    formUUID,
		Fingerprint: fingerprint,
		Hash:        HashFingerprint(formUUID, fingerprint),
	}
	if err := s.db.Create(&record).Error; err != nil {
		// A concurrent submission may have won the insert; the unique
		// index turns that into an error we re-check rather than surface.
		if again, checkErr := s.CheckDuplicate(formUUID, fingerprint); checkErr == nil && again {
			return false, nil
		}
		return false, fault.NewInternalError("record fingerprint", err)
	}
	return true, nil
}
