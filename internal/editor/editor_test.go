package editor_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-console/internal/domain"
	"go-portfolio-console/internal/editor"
)

type fakeSaver struct {
	mu      sync.Mutex
	calls   int
	err     error
	gate    chan struct{} // when set, UpdateSection blocks until closed
	started chan struct{}
}

func (f *fakeSaver) UpdateSection(ctx context.Context, name string, payload json.RawMessage, token string) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.err
}

func (f *fakeSaver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var validInfo = json.RawMessage(`{"name":"Dana Smith","title":"Engineer"}`)

func TestEditLifecycle(t *testing.T) {
	saver := &fakeSaver{}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	assert.Equal(t, editor.Viewing, ed.State())
	assert.Nil(t, ed.Draft())

	require.NoError(t, ed.Edit())
	assert.Equal(t, editor.Editing, ed.State())
	assert.JSONEq(t, string(validInfo), string(ed.Draft()))

	// a second Edit while editing is rejected
	assert.ErrorIs(t, ed.Edit(), editor.ErrAlreadyEditing)
}

func TestCancelRestoresConfirmedWithoutNetwork(t *testing.T) {
	saver := &fakeSaver{}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	require.NoError(t, ed.Edit())
	require.NoError(t, ed.SetDraft(json.RawMessage(`{"name":"Changed","title":"CTO"}`)))
	require.NoError(t, ed.Cancel())

	assert.Equal(t, editor.Viewing, ed.State())
	assert.Nil(t, ed.Draft())
	assert.JSONEq(t, string(validInfo), string(ed.Confirmed()))
	assert.Equal(t, 0, saver.callCount())
}

func TestSubmitLocalValidationFailureMakesNoCall(t *testing.T) {
	saver := &fakeSaver{}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	require.NoError(t, ed.Edit())
	require.NoError(t, ed.SetDraft(json.RawMessage(`{"title":"No name"}`)))

	err := ed.Submit(context.Background(), "token")
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, saver.callCount())
	assert.Equal(t, editor.Editing, ed.State())
	assert.NotEmpty(t, ed.Err())
}

func TestSubmitFailureKeepsDraftAndConfirmed(t *testing.T) {
	saver := &fakeSaver{err: errors.New("server rejected the update")}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	draft := json.RawMessage(`{"name":"Dana Smith","title":"Staff Engineer"}`)
	require.NoError(t, ed.Edit())
	require.NoError(t, ed.SetDraft(draft))

	err := ed.Submit(context.Background(), "token")
	require.Error(t, err)

	assert.Equal(t, editor.Editing, ed.State())
	assert.JSONEq(t, string(draft), string(ed.Draft()))
	assert.JSONEq(t, string(validInfo), string(ed.Confirmed()))
	assert.Equal(t, "server rejected the update", ed.Err())
}

func TestSubmitSuccessPromotesDraft(t *testing.T) {
	saver := &fakeSaver{}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	draft := json.RawMessage(`{"name":"Dana Smith","title":"Staff Engineer"}`)
	require.NoError(t, ed.Edit())
	require.NoError(t, ed.SetDraft(draft))
	require.NoError(t, ed.Submit(context.Background(), "token"))

	assert.Equal(t, editor.Viewing, ed.State())
	assert.Nil(t, ed.Draft())
	assert.JSONEq(t, string(draft), string(ed.Confirmed()))
	assert.Empty(t, ed.Err())
	assert.Equal(t, 1, saver.callCount())
}

func TestSubmitNotReenterableWhileSaving(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	saver := &fakeSaver{gate: gate, started: started}
	ed := editor.New(saver, domain.SectionPersonalInfo, validInfo)

	require.NoError(t, ed.Edit())
	require.NoError(t, ed.SetDraft(validInfo))

	done := make(chan error, 1)
	go func() {
		done <- ed.Submit(context.Background(), "token")
	}()

	<-started
	assert.Equal(t, editor.Saving, ed.State())
	assert.ErrorIs(t, ed.Submit(context.Background(), "token"), editor.ErrSaveInProgress)
	assert.ErrorIs(t, ed.Cancel(), editor.ErrSaveInProgress)

	close(gate)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, saver.callCount())
}
