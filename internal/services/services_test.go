package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cube5963/feedo-cfes/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The DSN is keyed by
// the test name so tests never see each other's rows even when the
// connection pool hands out more than one connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Section{},
		&models.Answer{},
		&models.FingerPrint{},
		&models.Metric{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedForm(t *testing.T, db *gorm.DB, userID uint) *models.Form {
	t.Helper()
	form := models.Form{
		FormUUID: uuid.NewString(),
		FormName: "test form",
		UserID:   &userID,
	}
	if err := db.Create(&form).Error; err != nil {
		t.Fatalf("seed form: %v", err)
	}
	return &form
}

func seedSection(t *testing.T, db *gorm.DB, formUUID string, order int, sectionType models.SectionType) *models.Section {
	t.Helper()
	section := models.Section{
		SectionUUID:  uuid.NewString(),
		FormUUID:     formUUID,
		SectionName:  fmt.Sprintf("section %d", order),
		SectionOrder: order,
		SectionType:  sectionType,
	}
	if err := db.Create(&section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}
	return &section
}

func seedAnswer(t *testing.T, db *gorm.DB, formUUID, sectionUUID, answerData string) {
	t.Helper()
	answer := models.Answer{
		AnswerSectionUUID: uuid.NewString(),
		FormUUID:          formUUID,
		SectionUUID:       sectionUUID,
		AnswerUUID:        uuid.NewString(),
		Answer:            answerData,
	}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("seed answer: %v", err)
	}
}

// spyCache records stores and invalidations so tests can assert cache
// behavior without a TTL clock.
type spyCache struct {
	mu      sync.Mutex
	data    map[string]string
	deleted []string
}

func newSpyCache() *spyCache {
	return &spyCache{data: make(map[string]string)}
}

func (c *spyCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *spyCache) Set(key, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *spyCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
}

func (c *spyCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]string)
}

func (c *spyCache) deletedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deleted)
}
