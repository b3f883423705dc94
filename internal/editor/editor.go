// Package editor implements the per-section edit lifecycle behind the admin
// console forms: view, edit a draft copy, save through the data store, and
// roll back on cancel. A failed save keeps the draft so nothing the user
// typed is lost.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go-portfolio-console/internal/domain"
)

type State int

const (
	Viewing State = iota
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyEditing = errors.New("edit already in progress")
	ErrNotEditing     = errors.New("no edit in progress")
	ErrSaveInProgress = errors.New("save already in progress")
)

// Saver is the slice of the data store the editor needs.
type Saver interface {
	UpdateSection(ctx context.Context, name string, payload json.RawMessage, token string) error
}

// SectionEditor cycles one section through Viewing, Editing and Saving for
// the lifetime of the console session. The confirmed payload only advances
// when the store acknowledges a save.
type SectionEditor struct {
	mu        sync.Mutex
	store     Saver
	section   string
	state     State
	confirmed json.RawMessage
	draft     json.RawMessage
	lastErr   string
}

func New(store Saver, section string, confirmed json.RawMessage) *SectionEditor {
	return &SectionEditor{
		store:     store,
		section:   section,
		state:     Viewing,
		confirmed: cloneRaw(confirmed),
	}
}

func (e *SectionEditor) Section() string {
	return e.section
}

func (e *SectionEditor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Confirmed returns the last server-acknowledged payload.
func (e *SectionEditor) Confirmed() json.RawMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRaw(e.confirmed)
}

// Draft returns the unsaved working copy, nil outside an edit.
func (e *SectionEditor) Draft() json.RawMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRaw(e.draft)
}

// Err returns the message from the last failed validation or save.
func (e *SectionEditor) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Edit starts an edit, seeding the draft with a copy of the confirmed data.
func (e *SectionEditor) Edit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Viewing {
		return ErrAlreadyEditing
	}
	e.draft = cloneRaw(e.confirmed)
	e.state = Editing
	e.lastErr = ""
	return nil
}

// SetDraft replaces the working copy.
func (e *SectionEditor) SetDraft(payload json.RawMessage) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	e.draft = cloneRaw(payload)
	return nil
}

// Cancel discards the draft and restores the confirmed data. Nothing reaches
// the data store.
func (e *SectionEditor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Saving {
		return ErrSaveInProgress
	}
	if e.state != Editing {
		return ErrNotEditing
	}
	e.draft = nil
	e.state = Viewing
	e.lastErr = ""
	return nil
}

// Submit validates the draft locally and, if it passes, saves it through the
// store. Local validation failures make no network call. A failed save
// returns to Editing with the draft intact; a successful one promotes the
// draft to confirmed. Submit is not re-enterable while a save is in flight.
func (e *SectionEditor) Submit(ctx context.Context, token string) error {
	e.mu.Lock()
	if e.state == Saving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}
	if e.state != Editing {
		e.mu.Unlock()
		return ErrNotEditing
	}

	draft := cloneRaw(e.draft)
	if err := domain.ValidateSection(e.section, draft); err != nil {
		e.lastErr = err.Error()
		e.mu.Unlock()
		return err
	}

	e.state = Saving
	e.mu.Unlock()

	err := e.store.UpdateSection(ctx, e.section, draft, token)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = Editing
		e.lastErr = err.Error()
		return err
	}
	e.confirmed = draft
	e.draft = nil
	e.state = Viewing
	e.lastErr = ""
	return nil
}

func cloneRaw(payload json.RawMessage) json.RawMessage {
	if payload == nil {
		return nil
	}
	cp := make(json.RawMessage, len(payload))
	copy(cp, payload)
	return cp
}
