package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/events"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

type document struct {
	component.Base
	loaded bool
}

func (d *document) Dependency(r route.Route, args route.Args) bool {
	return d.loaded
}

func newBase(t *testing.T, opts ...Option) (*Base, *document) {
	t.Helper()
	doc := &document{loaded: true}
	reg := component.NewRegistry().MustRegister("document", doc)
	return New(reg, opts...), doc
}

func TestRun_CallsCallbackWithArgs(t *testing.T) {
	b, _ := newBase(t)

	var got route.Args
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		got = args
		return "saved", nil
	}))

	result, ran, err := b.Run("document/save", route.Args{"status": "publish"})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, "saved", result)
	assert.Equal(t, route.Args{"status": "publish"}, got)
}

func TestRun_CurrentDuringCallbackOnly(t *testing.T) {
	b, _ := newBase(t)

	var duringIs, duringRunning bool
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		duringIs = b.Is("document/save")
		duringRunning = b.IsRunning("document/save")
		return nil, nil
	}))

	_, _, err := b.Run("document/save", nil)
	require.NoError(t, err)

	assert.True(t, duringIs)
	assert.True(t, duringRunning)
	assert.False(t, b.Is("document/save"))
	assert.False(t, b.IsRunning("document/save"))
	assert.Empty(t, b.Containers())
	assert.Empty(t, b.Trace())
}

func TestRun_NotFound(t *testing.T) {
	b, _ := newBase(t)

	_, ran, err := b.Run("document/missing", nil)
	assert.False(t, ran)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsError(err))
	assert.Contains(t, err.Error(), "commands: `document/missing` not found")
}

func TestRun_InvalidCommand(t *testing.T) {
	b, _ := newBase(t)

	_, _, err := b.Run("", nil)
	assert.ErrorIs(t, err, route.ErrEmptyRoute)
}

func TestRun_DependencyRejects(t *testing.T) {
	b, doc := newBase(t)
	doc.loaded = false

	calls := 0
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		calls++
		return nil, nil
	}))

	_, ran, err := b.Run("document/save", nil)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, calls)
}

func TestRun_CallbackError(t *testing.T) {
	b, _ := newBase(t)
	boom := errors.New("boom")
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		return nil, boom
	}))

	_, ran, err := b.Run("document/save", nil)
	assert.True(t, ran)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.Trace())
	_, ok := b.Current("document")
	assert.False(t, ok)
}

func TestRun_CallbackErrorRestoresPrevious(t *testing.T) {
	b, _ := newBase(t)
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		return nil, errors.New("boom")
	}))

	b.SetCurrent("document", route.MustParse("document/open"), route.Args{"id": 1})
	_, _, err := b.Run("document/save", nil)
	require.Error(t, err)

	cur, ok := b.Current("document")
	require.True(t, ok)
	assert.Equal(t, "document/open", cur.String())
	args, _ := b.CurrentArgs("document")
	assert.Equal(t, route.Args{"id": 1}, args)
}

func TestRegister_RequiresComponent(t *testing.T) {
	b, _ := newBase(t)

	err := b.Register("navigator/open", nil)
	assert.ErrorIs(t, err, component.ErrNotFound)

	require.NoError(t, b.Register("document/save", nil))
	require.NoError(t, b.Register("document/publish", nil))
	assert.True(t, b.IsRegistered("document/save"))
	assert.Equal(t, []string{"document/publish", "document/save"}, b.Commands())
}

func TestRunShortcut_ForwardsEvent(t *testing.T) {
	b, _ := newBase(t)

	var got route.Args
	require.NoError(t, b.Register("document/save", func(args route.Args) (any, error) {
		got = args
		return nil, nil
	}))

	require.NoError(t, b.RunShortcut("document/save", "ctrl+s"))
	assert.Equal(t, route.Args{"event": "ctrl+s"}, got)
}

type recordingHooks struct {
	before []Invocation
	after  []Invocation
	allow  bool
}

func (h *recordingHooks) BeforeRun(inv Invocation) (bool, error) {
	h.before = append(h.before, inv)
	return h.allow, nil
}

func (h *recordingHooks) AfterRun(inv Invocation, result any) error {
	h.after = append(h.after, inv)
	return nil
}

func TestSetHooks(t *testing.T) {
	b, _ := newBase(t)
	require.NoError(t, b.Register("document/save", nil))

	hooks := &recordingHooks{allow: true}
	b.SetHooks(hooks)

	_, ran, err := b.Run("document/save", route.Args{"id": 1}, WithRefresh(), WithReOpen())
	require.NoError(t, err)
	assert.True(t, ran)

	require.Len(t, hooks.before, 1)
	require.Len(t, hooks.after, 1)
	assert.True(t, hooks.before[0].Flags.Refresh)
	assert.True(t, hooks.before[0].Flags.ReOpen)

	// These hooks do not clear the current entry, so it persists.
	assert.True(t, b.Is("document/save"))
	args, ok := b.CurrentArgs("document")
	require.True(t, ok)
	assert.Equal(t, route.Args{"id": 1}, args)
}

func TestRun_PublishesEvent(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()

	var got []events.Event
	bus.Subscribe(events.CommandRun, func(e events.Event) { got = append(got, e) })

	b, _ := newBase(t, WithBus(bus))
	require.NoError(t, b.Register("document/save", nil))

	_, _, err := b.Run("document/save", nil)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "document", got[0].Container)
	assert.Equal(t, "document/save", got[0].Route)
}

func TestError(t *testing.T) {
	b, _ := newBase(t)
	b.SetScope("routes")

	err := b.Error("something diverged")
	assert.EqualError(t, err, "routes: something diverged")
	assert.True(t, IsError(err))
	assert.False(t, IsError(errors.New("plain")))
}
