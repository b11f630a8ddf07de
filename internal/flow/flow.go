package flow

import (
	"errors"
	"log"

	"github.com/cube5963/feedo-cfes/internal/models"
	"github.com/cube5963/feedo-cfes/internal/stats"

	"github.com/google/uuid"
)

var (
	ErrNoSections = errors.New("form has no sections")
	ErrUnanswered = errors.New("current section has no answer")
	ErrAtStart    = errors.New("already at the first section")
	ErrAtEnd      = errors.New("already at the last section")
	ErrNotLast    = errors.New("not at the last section")
	ErrCompleted  = errors.New("traversal already completed")
)

// Writer persists one answer row. Implemented by the answer service; tests
// substitute recorders.
type Writer interface {
	SaveAnswer(formUUID, sectionUUID, answerUUID, answerData string) error
}

// Flow walks one respondent through a form's ordered sections. Answers
// accumulate per section and are persisted on navigation; every persisted
// write is a brand-new row tagged with the session id, so revisiting a
// section via Previous/Next produces additional rows rather than updates.
//
// Write failures are logged and swallowed: a respondent is never trapped
// mid-survey because the store hiccuped.
type Flow struct {
	formUUID  string
	sections  []models.Section
	sessionID string
	index     int
	answers   map[string]any
	writer    Writer
	done      bool
}

// New starts or resumes a traversal. An empty sessionID means a fresh
// traversal and mints a new id; callers resuming after a reload pass the id
// they carried in their addressable state.
func New(formUUID string, sections []models.Section, sessionID string, writer Writer) (*Flow, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Flow{
		formUUID:  formUUID,
		sections:  sections,
		sessionID: sessionID,
		answers:   make(map[string]any),
		writer:    writer,
	}, nil
}

func (f *Flow) SessionID() string { return f.sessionID }
func (f *Flow) Index() int        { return f.index }
func (f *Flow) Total() int        { return len(f.sections) }
func (f *Flow) Done() bool        { return f.done }

func (f *Flow) Current() models.Section {
	return f.sections[f.index]
}

// Answer records a value for the current section without persisting or
// navigating. Re-answering overwrites the accumulated value.
func (f *Flow) Answer(value any) error {
	if f.done {
		return ErrCompleted
	}
	f.answers[f.Current().SectionUUID] = value
	return nil
}

// Next persists the current answer and advances. It is rejected when the
// current section has not been answered.
func (f *Flow) Next() error {
	if f.done {
		return ErrCompleted
	}
	if _, ok := f.answers[f.Current().SectionUUID]; !ok {
		return ErrUnanswered
	}
	if f.index+1 >= len(f.sections) {
		return ErrAtEnd
	}
	f.persist(f.Current())
	f.index++
	return nil
}

// Previous moves back one section. The current answer is persisted when
// present, but unlike Next an answer is not required.
func (f *Flow) Previous() error {
	if f.done {
		return ErrCompleted
	}
	if f.index == 0 {
		return ErrAtStart
	}
	if _, ok := f.answers[f.Current().SectionUUID]; ok {
		f.persist(f.Current())
	}
	f.index--
	return nil
}

// Complete persists the final answer and ends the traversal. Only
// available on the last section.
func (f *Flow) Complete() error {
	if f.done {
		return ErrCompleted
	}
	if f.index != len(f.sections)-1 {
		return ErrNotLast
	}
	if _, ok := f.answers[f.Current().SectionUUID]; ok {
		f.persist(f.Current())
	}
	f.done = true
	return nil
}

func (f *Flow) persist(section models.Section) {
	value := f.answers[section.SectionUUID]
	data, err := stats.EncodeEnvelope(value)
	if err != nil {
		log.Printf("flow: encode answer for section %s: %v", section.SectionUUID, err)
		return
	}
	if err := f.writer.SaveAnswer(f.formUUID, section.SectionUUID, f.sessionID, data); err != nil {
		log.Printf("flow: save answer for section %s: %v", section.SectionUUID, err)
	}
}
