package services

import (
	"encoding/json"
	"errors"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/stats"

	"gorm.io/gorm"
)

type StatisticsService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewStatisticsService(db *gorm.DB, c cache.Cache) *StatisticsService {
	return &StatisticsService{db: db, cache: c}
}

type StatisticsForm struct {
	FormUUID string `json:"FormUUID"`
	FormName string `json:"FormName"`
}

type FormStatistics struct {
	Form       StatisticsForm                     `json:"form"`
	Sections   []models.Section                   `json:"sections"`
	Statistics map[string]stats.SectionStatistics `json:"statistics"`
}

// GetFormStatistics assembles the full report: one aggregation per
// non-deleted section, keyed by section id.
func (s *StatisticsService) GetFormStatistics(formUUID string) (*FormStatistics, error) {
	var form models.Form
	err := s.db.Where(map[string]any{"FormUUID": formUUID, "Delete": false}).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("form not found")
		}
		return nil, fault.NewInternalError("load form", err)
	}

	sections, err := loadSections(s.db, s.cache, formUUID)
	if err != nil {
		return nil, err
	}

	statistics := make(map[string]stats.SectionStatistics, len(sections))
	for _, section := range sections {
		st, err := s.CalculateSectionStatistics(formUUID, section.SectionUUID)
		if err != nil {
			return nil, err
		}
		statistics[section.SectionUUID] = *st
	}

	return &FormStatistics{
		Form:       StatisticsForm{FormUUID: form.FormUUID, FormName: form.FormName},
		Sections:   sections,
		Statistics: statistics,
	}, nil
}

// CalculateSectionStatistics recomputes one section from all of its stored
// rows. The live-update path calls this for every observed answer insert:
// recomputation from scratch is always consistent because aggregation is a
// pure function of the full row set.
func (s *StatisticsService) CalculateSectionStatistics(formUUID, sectionUUID string) (*stats.SectionStatistics, error) {
	var section models.Section
	err := s.db.Where(map[string]any{"SectionUUID": sectionUUID, "FormUUID": formUUID, "Delete": false}).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("section not found")
		}
		return nil, fault.NewInternalError("load section", err)
	}

	var answers []models.Answer
	err = s.db.Where(map[string]any{"FormUUID": formUUID, "SectionUUID": sectionUUID}).Find(&answers).Error
	if err != nil {
		return nil, fault.NewInternalError("load answers", err)
	}

	raws := make([]string, len(answers))
	for i, a := range answers {
		raws[i] = a.Answer
	}

	result := stats.Aggregate(section.SectionType, raws)
	return &result, nil
}

// loadSections returns a form's non-deleted sections in display order,
// served through the cache when a fresh entry exists.
func loadSections(db *gorm.DB, c cache.Cache, formUUID string) ([]models.Section, error) {
	key := cache.SectionsKey(formUUID)
	if raw, ok := c.Get(key); ok {
		var sections []models.Section
		if err := json.Unmarshal([]byte(raw), &sections); err == nil {
			return sections, nil
		}
		c.Delete(key)
	}

	var sections []models.Section
	err := db.Where(map[string]any{"FormUUID": formUUID, "Delete": false}).
		Order(`"SectionOrder" ASC`).
		Find(&sections).Error
	if err != nil {
		return nil, fault.NewInternalError("load sections", err)
	}

	if raw, err := json.Marshal(sections); err == nil {
		c.Set(key, string(raw), cache.SectionsTTL)
	}
	return sections, nil
}
