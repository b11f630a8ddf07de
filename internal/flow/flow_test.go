package flow

import (
	"errors"
	"testing"

	"github.com/cube5963/feedo-cfes/internal/models"
)

type savedRow struct {
	formUUID    string
	sectionUUID string
	answerUUID  string
	answerData  string
}

type recordingWriter struct {
	rows []savedRow
	err  error
}

func (w *recordingWriter) SaveAnswer(formUUID, sectionUUID, answerUUID, answerData string) error {
	if w.err != nil {
		return w.err
	}
	w.rows = append(w.rows, savedRow{formUUID, sectionUUID, answerUUID, answerData})
	return nil
}

func testSections(n int) []models.Section {
	sections := make([]models.Section, n)
	for i := range sections {
		sections[i] = models.Section{
			SectionUUID: string(rune('a' + i)),
			SectionType: models.SectionText,
		}
	}
	return sections
}

func TestNewRequiresSections(t *testing.T) {
	if _, err := New("form", nil, "", &recordingWriter{}); !errors.Is(err, ErrNoSections) {
		t.Fatalf("err = %v, want ErrNoSections", err)
	}
}

func TestNewMintsSessionID(t *testing.T) {
	f, err := New("form", testSections(1), "", &recordingWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if f.SessionID() == "" {
		t.Error("expected a minted session id")
	}

	resumed, err := New("form", testSections(1), "carried-id", &recordingWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if resumed.SessionID() != "carried-id" {
		t.Errorf("session id = %q, want the carried one", resumed.SessionID())
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	f, _ := New("form", testSections(2), "", &recordingWriter{})
	if err := f.Next(); !errors.Is(err, ErrUnanswered) {
		t.Fatalf("err = %v, want ErrUnanswered", err)
	}
	if f.Index() != 0 {
		t.Errorf("index moved to %d on rejected Next", f.Index())
	}
}

func TestNextPersistsOneRow(t *testing.T) {
	w := &recordingWriter{}
	f, _ := New("form-1", testSections(2), "", w)

	if err := f.Answer("hello"); err != nil {
		t.Fatal(err)
	}
	if err := f.Next(); err != nil {
		t.Fatal(err)
	}

	if len(w.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(w.rows))
	}
	row := w.rows[0]
	if row.formUUID != "form-1" || row.sectionUUID != "a" {
		t.Errorf("row = %+v", row)
	}
	if row.answerUUID != f.SessionID() {
		t.Errorf("row tagged %q, want session id %q", row.answerUUID, f.SessionID())
	}
	if row.answerData != `{"text":"hello","predict":""}` {
		t.Errorf("answerData = %s", row.answerData)
	}
	if f.Index() != 1 {
		t.Errorf("index = %d, want 1", f.Index())
	}
}

func TestNextAtEnd(t *testing.T) {
	f, _ := New("form", testSections(1), "", &recordingWriter{})
	f.Answer("x")
	if err := f.Next(); !errors.Is(err, ErrAtEnd) {
		t.Fatalf("err = %v, want ErrAtEnd", err)
	}
}

func TestPreviousOptionalPersist(t *testing.T) {
	w := &recordingWriter{}
	f, _ := New("form", testSections(3), "", w)
	f.Answer("one")
	f.Next()

	// Back without answering section b: nothing to persist.
	if err := f.Previous(); err != nil {
		t.Fatal(err)
	}
	if len(w.rows) != 1 {
		t.Errorf("rows = %d, Previous without an answer must not write", len(w.rows))
	}

	// Forward again and back with an answer this time.
	f.Next()
	f.Answer("two")
	if err := f.Previous(); err != nil {
		t.Fatal(err)
	}
	if len(w.rows) != 3 {
		t.Errorf("rows = %d, want 3 (revisits append, never update)", len(w.rows))
	}
}

func TestPreviousAtStart(t *testing.T) {
	f, _ := New("form", testSections(2), "", &recordingWriter{})
	if err := f.Previous(); !errors.Is(err, ErrAtStart) {
		t.Fatalf("err = %v, want ErrAtStart", err)
	}
}

func TestCompleteOnlyOnLast(t *testing.T) {
	w := &recordingWriter{}
	f, _ := New("form", testSections(2), "", w)
	f.Answer("one")

	if err := f.Complete(); !errors.Is(err, ErrNotLast) {
		t.Fatalf("err = %v, want ErrNotLast", err)
	}

	f.Next()
	f.Answer("two")
	if err := f.Complete(); err != nil {
		t.Fatal(err)
	}
	if !f.Done() {
		t.Error("flow not done after Complete")
	}
	if len(w.rows) != 2 {
		t.Errorf("rows = %d, want 2", len(w.rows))
	}

	if err := f.Answer("late"); !errors.Is(err, ErrCompleted) {
		t.Errorf("Answer after Complete: err = %v", err)
	}
	if err := f.Next(); !errors.Is(err, ErrCompleted) {
		t.Errorf("Next after Complete: err = %v", err)
	}
	if err := f.Complete(); !errors.Is(err, ErrCompleted) {
		t.Errorf("second Complete: err = %v", err)
	}
}

func TestNextSwallowsWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("store down")}
	f, _ := New("form", testSections(2), "", w)
	f.Answer("hello")

	if err := f.Next(); err != nil {
		t.Fatalf("Next must not surface write errors, got %v", err)
	}
	if f.Index() != 1 {
		t.Errorf("index = %d, the respondent still advances", f.Index())
	}
}
