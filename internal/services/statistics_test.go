package services

import (
	"errors"
	"testing"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/stats"
)

func TestGetFormStatisticsNotFound(t *testing.T) {
	svc := NewStatisticsService(newTestDB(t), cache.Noop{})

	if _, err := svc.GetFormStatistics("missing"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGetFormStatisticsIgnoresDeletedForm(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	db.Model(&models.Form{}).Where(map[string]any{"FormUUID": form.FormUUID}).Update("Delete", true)

	svc := NewStatisticsService(db, cache.Noop{})
	if _, err := svc.GetFormStatistics(form.FormUUID); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("deleted form: err = %v, want not found", err)
	}
}

func TestGetFormStatisticsAggregatesEverySection(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	radio := seedSection(t, db, form.FormUUID, 1, models.SectionRadio)
	text := seedSection(t, db, form.FormUUID, 2, models.SectionText)
	deleted := seedSection(t, db, form.FormUUID, 3, models.SectionStar)
	db.Model(&models.Section{}).Where(map[string]any{"SectionUUID": deleted.SectionUUID}).Update("Delete", true)

	raw, _ := stats.EncodeEnvelope("a")
	seedAnswer(t, db, form.FormUUID, radio.SectionUUID, raw)
	seedAnswer(t, db, form.FormUUID, radio.SectionUUID, raw)

	svc := NewStatisticsService(db, cache.Noop{})
	result, err := svc.GetFormStatistics(form.FormUUID)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Sections) != 2 {
		t.Fatalf("sections = %d, deleted ones must not appear", len(result.Sections))
	}
	if result.Sections[0].SectionUUID != radio.SectionUUID {
		t.Error("sections out of display order")
	}
	if result.Statistics[radio.SectionUUID].TotalResponses != 2 {
		t.Errorf("radio totalResponses = %d", result.Statistics[radio.SectionUUID].TotalResponses)
	}
	if result.Statistics[text.SectionUUID].TotalResponses != 0 {
		t.Errorf("text totalResponses = %d", result.Statistics[text.SectionUUID].TotalResponses)
	}
	if result.Form.FormUUID != form.FormUUID {
		t.Errorf("form = %+v", result.Form)
	}
}

func TestCalculateSectionStatisticsUnknownSection(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)

	svc := NewStatisticsService(db, cache.Noop{})
	if _, err := svc.CalculateSectionStatistics(form.FormUUID, "missing"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCalculateSectionStatisticsWrongForm(t *testing.T) {
	db := newTestDB(t)
	formA := seedForm(t, db, 1)
	formB := seedForm(t, db, 1)
	section := seedSection(t, db, formA.FormUUID, 1, models.SectionText)

	svc := NewStatisticsService(db, cache.Noop{})
	if _, err := svc.CalculateSectionStatistics(formB.FormUUID, section.SectionUUID); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("section of another form: err = %v, want not found", err)
	}
}

func TestLoadSectionsCacheRoundTrip(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	seedSection(t, db, form.FormUUID, 1, models.SectionText)

	c := newSpyCache()

	first, err := loadSections(db, c, form.FormUUID)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("sections = %d", len(first))
	}
	if _, ok := c.Get(cache.SectionsKey(form.FormUUID)); !ok {
		t.Fatal("miss did not populate the cache")
	}

	// Second read is served from the cache: rows added behind its back
	// stay invisible until invalidation.
	seedSection(t, db, form.FormUUID, 2, models.SectionText)
	second, err := loadSections(db, c, form.FormUUID)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 {
		t.Errorf("sections = %d, expected the cached snapshot", len(second))
	}
}

func TestLoadSectionsPoisonedCacheEntry(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	seedSection(t, db, form.FormUUID, 1, models.SectionText)

	c := newSpyCache()
	c.Set(cache.SectionsKey(form.FormUUID), "not json", 0)

	sections, err := loadSections(db, c, form.FormUUID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Errorf("sections = %d, poisoned entry must fall through to the db", len(sections))
	}
	if c.deletedCount() == 0 {
		t.Error("poisoned entry was not evicted")
	}
}
