package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"course-admin/internal/adminapi"
	"course-admin/internal/domain"
)

// Gateway is the slice of the admin API the session drives. adminapi.Client
// implements it; tests substitute fakes.
type Gateway interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
	CreateCourse(ctx context.Context, f domain.Fields) error
	UpdateCourse(ctx context.Context, id string, f domain.Fields) error
	DeleteCourse(ctx context.Context, id string) error
}

// State is the session's position in its lifecycle. Ready and Editing are the
// rest states; the others cover an in-flight gateway call. An error and a
// populated list may coexist: the error slot is orthogonal to State.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Editing
	Submitting
	Deleting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Deleting:
		return "deleting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrBusy is returned for any intent issued while a gateway call is in
// flight. Intents are never queued; the caller re-issues once the session is
// back at rest.
var ErrBusy = errors.New("session: operation in flight")

// ErrNoDraft is returned when a draft-scoped intent arrives with no draft open.
var ErrNoDraft = errors.New("session: no draft open")

// ErrUnknownCourse is returned by Edit for an id that is not in the list.
var ErrUnknownCourse = errors.New("session: course not in list")

// Session owns the course directory's client state: the current list, the
// optional draft being edited, and the last gateway error. All user intents
// funnel through it; it serializes them against the gateway and performs a
// full re-fetch after every successful mutation, never trusting its own
// optimistic view of server state.
type Session struct {
	gw Gateway

	mu      sync.Mutex
	state   State
	busy    bool
	courses []domain.Course
	draft   *domain.Draft
	lastErr *adminapi.Error
}

func New(gw Gateway) *Session {
	return &Session{gw: gw, state: Idle}
}

// begin claims the single in-flight slot, or rejects with ErrBusy.
func (s *Session) begin(op State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.state = op
	return nil
}

// settle releases the in-flight slot and returns to the matching rest state.
func (s *Session) settle() {
	s.busy = false
	if s.draft != nil {
		s.state = Editing
	} else {
		s.state = Ready
	}
}

// Load replaces the whole list from the backend. On success the error slot is
// cleared; on failure the list is left untouched and the error slot records
// the fetch failure.
func (s *Session) Load(ctx context.Context) error {
	if err := s.begin(Loading); err != nil {
		return err
	}

	courses, err := s.gw.ListCourses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.settle()

	if err != nil {
		s.lastErr = asOpError(adminapi.KindFetch, err)
		return s.lastErr
	}
	s.courses = courses
	s.lastErr = nil
	return nil
}

// AddNew opens an all-blank draft with no identity. An already-open draft is
// silently replaced; the error slot is left as is.
func (s *Session) AddNew() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.draft = domain.NewDraft()
	s.state = Editing
	return nil
}

// Edit opens a draft seeded with a copy of the listed course's fields,
// carrying its id. The copy never aliases the list entry: edits do not touch
// the list until a submit succeeds and the refresh lands.
func (s *Session) Edit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	for _, c := range s.courses {
		if c.ID == id {
			s.draft = domain.EditOf(c)
			s.state = Editing
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCourse, id)
}

// SetDraftFields overwrites the open draft's editable fields. This is the
// form-input path; it is rejected while a submit is in flight so edits never
// race the request body.
func (s *Session) SetDraftFields(f domain.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	if s.draft == nil {
		return ErrNoDraft
	}
	s.draft.Fields = f
	return nil
}

// Cancel discards the draft. No network call; list and error slot unchanged.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.draft = nil
	if s.state == Editing {
		s.state = Ready
	}
	return nil
}

// Submit sends the open draft: create when it has no identity, update when it
// does. On success the draft and error slot are cleared and the list is
// re-fetched. On failure the draft stays open with the operator's edits so
// they can correct and retry.
//
// A nil return with no draft open is deliberate: submit without a draft is a
// no-op. If the mutation succeeds but the refresh fails, the returned error
// is the fetch error and the cleared draft is the evidence the save landed.
func (s *Session) Submit(ctx context.Context) error {
	if err := s.begin(Submitting); err != nil {
		return err
	}

	s.mu.Lock()
	if s.draft == nil {
		s.settle()
		s.mu.Unlock()
		return nil
	}
	draft := s.draft.Clone()
	s.mu.Unlock()

	var err error
	if id, ok := draft.CourseID(); ok {
		err = s.gw.UpdateCourse(ctx, id, draft.Fields)
	} else {
		err = s.gw.CreateCourse(ctx, draft.Fields)
	}

	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		defer s.settle()
		s.lastErr = asOpError(adminapi.KindSave, err)
		return s.lastErr
	}

	s.mu.Lock()
	s.draft = nil
	s.lastErr = nil
	s.mu.Unlock()

	return s.refresh(ctx)
}

// Delete removes a course by id and re-fetches the list. Confirmation is the
// caller's job; by the time Delete runs the operator already said yes. On
// failure the list is unchanged and the error slot carries the HTTP status.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.begin(Deleting); err != nil {
		return err
	}

	if err := s.gw.DeleteCourse(ctx, id); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		defer s.settle()
		s.lastErr = asOpError(adminapi.KindDelete, err)
		return s.lastErr
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	return s.refresh(ctx)
}

// refresh re-runs the list fetch at the tail of a successful mutation. The
// busy slot is still held by the mutation; only the fetch outcome lands in
// the error slot.
func (s *Session) refresh(ctx context.Context) error {
	courses, err := s.gw.ListCourses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.settle()

	if err != nil {
		s.lastErr = asOpError(adminapi.KindFetch, err)
		return s.lastErr
	}
	s.courses = courses
	s.lastErr = nil
	return nil
}

// Courses returns a copy of the current list.
func (s *Session) Courses() []domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Draft returns a copy of the open draft, or nil.
func (s *Session) Draft() *domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	return s.draft.Clone()
}

// Err returns the last gateway error, or nil after the latest success.
func (s *Session) Err() *adminapi.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ErrorMessage returns the operator-facing text for the error slot, or "".
func (s *Session) ErrorMessage() string {
	if e := s.Err(); e != nil {
		return e.Message()
	}
	return ""
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// asOpError keeps the taxonomy intact when the gateway already classified the
// failure, and treats anything else as a transport failure.
func asOpError(kind adminapi.Kind, err error) *adminapi.Error {
	if ae, ok := adminapi.AsError(err); ok {
		return ae
	}
	return &adminapi.Error{Kind: kind, Cause: adminapi.CauseTransport, Err: err}
}
