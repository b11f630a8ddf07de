package services

import (
	"context"
	"log"
	"time"

	"github.com/cube5963/feedo-cfes/internal/events"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/workerpool"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerService struct {
	db         *gorm.DB
	statistics *StatisticsService
	emotion    *EmotionService
	metrics    *MetricsService
	hub        *events.Hub
	pool       *workerpool.WorkerPool
}

func NewAnswerService(db *gorm.DB, statistics *StatisticsService, emotion *EmotionService,
	metrics *MetricsService, hub *events.Hub, pool *workerpool.WorkerPool) *AnswerService {
	return &AnswerService{
		db:         db,
		statistics: statistics,
		emotion:    emotion,
		metrics:    metrics,
		hub:        hub,
		pool:       pool,
	}
}

// SaveAnswer appends one answer row. Rows are never updated or deleted: a
// respondent revisiting a section simply produces another row under the
// same session id. On success the section's statistics are recomputed off
// the request path and pushed to live viewers.
func (s *AnswerService) SaveAnswer(formUUID, sectionUUID, answerUUID, answerData string) error {
	if formUUID == "" || sectionUUID == "" || answerUUID == "" || answerData == "" {
		return fault.Validation("form_id, section_id, answer_id and answer_data are required")
	}

	row := models.Answer{
		AnswerSectionUUID: uuid.NewString(),
		FormUUID:          formUUID,
		SectionUUID:       sectionUUID,
		AnswerUUID:        answerUUID,
		Answer:            answerData,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fault.NewInternalError("save answer", err)
	}

	if err := s.metrics.Increment(models.MetricAnswer); err != nil {
		log.Printf("answer: increment metric: %v", err)
	}

	s.dispatch(row)
	return nil
}

// dispatch queues the post-write work: statistics recompute + broadcast,
// and emotion prediction for text answers. Redundant recomputes from
// concurrent writes are wasteful but never incorrect.
func (s *AnswerService) dispatch(row models.Answer) {
	s.pool.Submit(func(_ context.Context) {
		result, err := s.statistics.CalculateSectionStatistics(row.FormUUID, row.SectionUUID)
		if err != nil {
			log.Printf("answer: recompute statistics for section %s: %v", row.SectionUUID, err)
			return
		}

		s.hub.Broadcast(row.FormUUID, events.StatisticsUpdate(row.SectionUUID, *result))

		if result.SectionType == models.SectionText && s.emotion.IsAvailable() {
			s.pool.Submit(workerpool.WithRetry(3, 2*time.Second, func() error {
				return s.emotion.Predict(row.AnswerSectionUUID)
			}))
		}
	})
}
