package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/events"
	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/services"
	"github.com/cube5963/feedo-cfes/internal/workerpool"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type respondFixture struct {
	db     *gorm.DB
	router *gin.Engine
}

// startedState decodes the slice of the respond snapshot the tests
// assert on; the config arrives as free-form JSON.
type startedState struct {
	SessionID string `json:"session_id"`
	Total     int    `json:"total"`
	Section   struct {
		SectionUUID string         `json:"SectionUUID"`
		Config      map[string]any `json:"config"`
	} `json:"section"`
}

func newRespondFixture(t *testing.T) *respondFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(&models.Form{}, &models.Section{}, &models.Answer{}, &models.FingerPrint{}, &models.Metric{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	pool := workerpool.NewWorkerPool(ctx, 1, 8)
	hub := events.NewHub()

	statistics := services.NewStatisticsService(db, cache.Noop{})
	answers := services.NewAnswerService(db, statistics, services.NewEmotionService(""), services.NewMetricsService(db), hub, pool)
	respond := services.NewRespondService(db, cache.Noop{}, answers)
	fingerprints := services.NewFingerprintService(db)

	h := NewRespondHandler(respond, fingerprints)
	router := gin.New()
	router.POST("/respond/start", h.Start)
	router.GET("/respond/sessions/:sessionId", h.GetState)
	router.POST("/respond/sessions/:sessionId/answer", h.Answer)
	router.POST("/respond/sessions/:sessionId/next", h.Next)
	router.POST("/respond/sessions/:sessionId/complete", h.Complete)

	return &respondFixture{db: db, router: router}
}

func (f *respondFixture) seedForm(t *testing.T, singleResponse bool, sections int) *models.Form {
	t.Helper()
	form := models.Form{FormUUID: uuid.NewString(), FormName: "f", SingleResponse: singleResponse}
	if err := f.db.Create(&form).Error; err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= sections; i++ {
		section := models.Section{
			SectionUUID:  uuid.NewString(),
			FormUUID:     form.FormUUID,
			SectionName:  fmt.Sprintf("q%d", i),
			SectionOrder: i,
			SectionType:  models.SectionText,
		}
		if err := f.db.Create(&section).Error; err != nil {
			t.Fatal(err)
		}
	}
	return &form
}

func (f *respondFixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestStartNewRespondent(t *testing.T) {
	f := newRespondFixture(t)
	form := f.seedForm(t, true, 2)

	w := f.post(t, "/respond/start", fmt.Sprintf(`{"form_id":%q,"fingerprint":"device-1"}`, form.FormUUID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var state startedState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	if state.SessionID == "" || state.Total != 2 {
		t.Errorf("state = %+v", state)
	}
	if state.Section.Config == nil {
		t.Error("section payload missing its parsed config")
	}
}

func TestStartBlocksRecordedFingerprint(t *testing.T) {
	f := newRespondFixture(t)
	form := f.seedForm(t, true, 1)
	services.NewFingerprintService(f.db).Record(form.FormUUID, "device-1")

	w := f.post(t, "/respond/start", fmt.Sprintf(`{"form_id":%q,"fingerprint":"device-1"}`, form.FormUUID))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	// Multi-response forms ignore the guard entirely.
	multi := f.seedForm(t, false, 1)
	services.NewFingerprintService(f.db).Record(multi.FormUUID, "device-1")
	w = f.post(t, "/respond/start", fmt.Sprintf(`{"form_id":%q,"fingerprint":"device-1"}`, multi.FormUUID))
	if w.Code != http.StatusOK {
		t.Fatalf("multi-response status = %d, want 200", w.Code)
	}
}

func TestCheckDuplicateFailsOpen(t *testing.T) {
	f := newRespondFixture(t)
	form := f.seedForm(t, true, 1)

	// Break the guard's storage; the respondent must still get in.
	if err := f.db.Migrator().DropTable(&models.FingerPrint{}); err != nil {
		t.Fatal(err)
	}

	w := f.post(t, "/respond/start", fmt.Sprintf(`{"form_id":%q,"fingerprint":"device-1"}`, form.FormUUID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, a failed check must allow the respondent", w.Code)
	}
}

func TestCompleteRecordsFingerprint(t *testing.T) {
	f := newRespondFixture(t)
	form := f.seedForm(t, true, 1)

	w := f.post(t, "/respond/start", fmt.Sprintf(`{"form_id":%q}`, form.FormUUID))
	var state startedState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}

	if w := f.post(t, "/respond/sessions/"+state.SessionID+"/answer", `{"value":"done"}`); w.Code != http.StatusOK {
		t.Fatalf("answer status = %d", w.Code)
	}
	w = f.post(t, "/respond/sessions/"+state.SessionID+"/complete", `{"fingerprint":"device-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body %s", w.Code, w.Body.String())
	}

	duplicate, err := services.NewFingerprintService(f.db).CheckDuplicate(form.FormUUID, "device-1")
	if err != nil {
		t.Fatal(err)
	}
	if !duplicate {
		t.Error("fingerprint not recorded on completion")
	}
}

func TestStartUnknownForm(t *testing.T) {
	f := newRespondFixture(t)
	w := f.post(t, "/respond/start", `{"form_id":"missing"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
