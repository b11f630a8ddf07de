package services

import (
	"errors"
	"sync"
	"time"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/flow"
	"github.com/cube5963/feedo-cfes/internal/models"

	"gorm.io/gorm"
)

// sessionTTL bounds how long an untouched traversal stays resumable.
// Evicting one loses nothing durable: every persisted answer row is
// already in the store.
const sessionTTL = 30 * time.Minute

// RespondService keeps one live submission flow per respondent session.
// Sessions are addressed by the session id the client carries between
// requests, so a reload after the first question resumes the same
// traversal instead of minting a new one.
type RespondService struct {
	db     *gorm.DB
	cache  cache.Cache
	writer flow.Writer

	mu       sync.Mutex
	sessions map[string]*respondSession
}

type respondSession struct {
	flow    *flow.Flow
	form    models.Form
	touched time.Time
}

func NewRespondService(db *gorm.DB, c cache.Cache, writer flow.Writer) *RespondService {
	return &RespondService{
		db:       db,
		cache:    c,
		writer:   writer,
		sessions: make(map[string]*respondSession),
	}
}

// RespondState is the snapshot handed to the client after every
// transition: where the respondent is, what to render, and the completion
// message once done.
type RespondState struct {
	SessionID string          `json:"session_id"`
	FormUUID  string          `json:"FormUUID"`
	FormName  string          `json:"FormName"`
	Index     int             `json:"index"`
	Total     int             `json:"total"`
	Done      bool            `json:"done"`
	Section   *SectionPayload `json:"section,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Start begins a traversal, or resumes one when the caller presents a
// session id that is still live.
func (s *RespondService) Start(formUUID, sessionID string) (*RespondState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictStale(time.Now())

	if sessionID != "" {
		if session, ok := s.sessions[sessionID]; ok && session.form.FormUUID == formUUID {
			session.touched = time.Now()
			return s.state(session), nil
		}
	}

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

	f, err := flow.New(formUUID, sections, sessionID, s.writer)
	if err != nil {
		return nil, fault.NewClientError("start traversal", err)
	}

	session := &respondSession{flow: f, form: form, touched: time.Now()}
	s.sessions[f.SessionID()] = session
	return s.state(session), nil
}

// evictStale drops traversals nobody has touched within sessionTTL, so
// the registry only grows with active respondents. Caller holds the lock.
func (s *RespondService) evictStale(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.touched) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}

// FormByUUID loads a live form without touching session state. The
// duplicate guard needs the form before a session exists.
func (s *RespondService) FormByUUID(formUUID string) (*models.Form, error) {
	var form models.Form
	err := s.db.Where(map[string]any{"FormUUID": formUUID, "Delete": false}).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("form not found")
		}
		return nil, fault.NewInternalError("load form", err)
	}
	return &form, nil
}

func (s *RespondService) Form(sessionID string) (*models.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	form := session.form
	return &form, nil
}

func (s *RespondService) Answer(sessionID string, value any) (*RespondState, error) {
	return s.transition(sessionID, func(f *flow.Flow) error {
		return f.Answer(value)
	})
}

func (s *RespondService) Next(sessionID string) (*RespondState, error) {
	return s.transition(sessionID, (*flow.Flow).Next)
}

func (s *RespondService) Previous(sessionID string) (*RespondState, error) {
	return s.transition(sessionID, (*flow.Flow).Previous)
}

// Complete ends the traversal and releases the session.
func (s *RespondService) Complete(sessionID string) (*RespondState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.flow.Complete(); err != nil {
		return nil, fault.NewClientError("complete", err)
	}

	delete(s.sessions, sessionID)
	return s.state(session), nil
}

func (s *RespondService) State(sessionID string) (*RespondState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

func (s *RespondService) transition(sessionID string, op func(*flow.Flow) error) (*RespondState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(session.flow); err != nil {
		return nil, fault.NewClientError("transition", err)
	}
	return s.state(session), nil
}

func (s *RespondService) session(sessionID string) (*respondSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fault.NotFound("session not found")
	}
	session.touched = time.Now()
	return session, nil
}

func (s *RespondService) state(session *respondSession) *RespondState {
	f := session.flow
	state := &RespondState{
		SessionID: f.SessionID(),
		FormUUID:  session.form.FormUUID,
		FormName:  session.form.FormName,
		Index:     f.Index(),
		Total:     f.Total(),
		Done:      f.Done(),
	}
	if f.Done() {
		state.Message = session.form.FormMessage
	} else {
		payload := toSectionPayload(f.Current())
		state.Section = &payload
	}
	return state
}
