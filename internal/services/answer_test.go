package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/events"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/stats"
	"github.com/cube5963/feedo-cfes/internal/workerpool"

	"gorm.io/gorm"
)

func newAnswerService(t *testing.T, db *gorm.DB, hub *events.Hub) *AnswerService {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pool := workerpool.NewWorkerPool(ctx, 2, 32)
	statistics := NewStatisticsService(db, cache.Noop{})
	return NewAnswerService(db, statistics, NewEmotionService(""), NewMetricsService(db), hub, pool)
}

func TestSaveAnswerValidation(t *testing.T) {
	svc := newAnswerService(t, newTestDB(t), events.NewHub())

	err := svc.SaveAnswer("", "s", "a", "data")
	if !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSaveAnswerAppendsRows(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	section := seedSection(t, db, form.FormUUID, 1, models.SectionRadio)
	svc := newAnswerService(t, db, events.NewHub())

	raw, _ := stats.EncodeEnvelope("a")
	for i := 0; i < 3; i++ {
		if err := svc.SaveAnswer(form.FormUUID, section.SectionUUID, "session-1", raw); err != nil {
			t.Fatal(err)
		}
	}

	var count int64
	db.Model(&models.Answer{}).Count(&count)
	if count != 3 {
		t.Errorf("rows = %d, repeated saves must append", count)
	}
}

func TestSaveAnswerBumpsMetric(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	section := seedSection(t, db, form.FormUUID, 1, models.SectionText)
	svc := newAnswerService(t, db, events.NewHub())

	raw, _ := stats.EncodeEnvelope("hello")
	if err := svc.SaveAnswer(form.FormUUID, section.SectionUUID, "session-1", raw); err != nil {
		t.Fatal(err)
	}

	n, err := NewMetricsService(db).Get(models.MetricAnswer)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("answer metric = %d, want 1", n)
	}
}

func TestSaveAnswerBroadcastsRecompute(t *testing.T) {
	db := newTestDB(t)
	form := seedForm(t, db, 1)
	section := seedSection(t, db, form.FormUUID, 1, models.SectionRadio)

	hub := events.NewHub()
	ch := hub.Subscribe(form.FormUUID)
	defer hub.Unsubscribe(form.FormUUID, ch)

	svc := newAnswerService(t, db, hub)
	raw, _ := stats.EncodeEnvelope("a")
	if err := svc.SaveAnswer(form.FormUUID, section.SectionUUID, "session-1", raw); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-ch:
		if event.Type != events.TypeStatisticsUpdate {
			t.Errorf("type = %s", event.Type)
		}
		if event.SectionUUID != section.SectionUUID {
			t.Errorf("sectionUUID = %s", event.SectionUUID)
		}
		if event.Statistics == nil || event.Statistics.TotalResponses != 1 {
			t.Errorf("statistics = %+v", event.Statistics)
		}
		if event.Timestamp == "" {
			t.Error("missing timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast within 2s of a saved answer")
	}
}
