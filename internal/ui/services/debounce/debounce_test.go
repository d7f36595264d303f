package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) fn(v string) tea.Cmd {
	r.calls = append(r.calls, v)
	return nil
}

func fired(t *testing.T, cmd tea.Cmd) FiredMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(FiredMsg)
	require.True(t, ok)
	return msg
}

func TestRapidSchedulesFireOnceWithLastValue(t *testing.T) {
	d := New(time.Millisecond, nil)
	rec := &recorder{}

	var cmds []tea.Cmd
	for _, v := range []string{"c", "ca", "cat"} {
		cmds = append(cmds, d.Schedule(v, rec.fn))
	}
	for _, cmd := range cmds {
		d.Fire(fired(t, cmd))
	}

	assert.Equal(t, []string{"cat"}, rec.calls)
	assert.False(t, d.Pending())
}

func TestFireIsOneShot(t *testing.T) {
	d := New(time.Millisecond, nil)
	rec := &recorder{}

	msg := fired(t, d.Schedule("dogs", rec.fn))
	d.Fire(msg)
	d.Fire(msg)

	assert.Equal(t, []string{"dogs"}, rec.calls)
}

func TestFireReturnsScheduledCommand(t *testing.T) {
	d := New(0, nil)
	type doneMsg struct{ v string }

	cmd := d.Schedule("cat", func(v string) tea.Cmd {
		return func() tea.Msg { return doneMsg{v} }
	})
	out := d.Fire(fired(t, cmd))

	require.NotNil(t, out)
	assert.Equal(t, doneMsg{"cat"}, out())
}

func TestBlankValueClearsSynchronously(t *testing.T) {
	cleared := 0
	d := New(time.Millisecond, func() { cleared++ })
	rec := &recorder{}

	pending := d.Schedule("cat", rec.fn)
	require.True(t, d.Pending())

	assert.Nil(t, d.Schedule("   ", rec.fn))
	assert.Equal(t, 1, cleared)
	assert.False(t, d.Pending())

	d.Fire(fired(t, pending))
	assert.Empty(t, rec.calls)
}

func TestCancel(t *testing.T) {
	d := New(time.Millisecond, nil)
	rec := &recorder{}

	msg := fired(t, d.Schedule("cat", rec.fn))
	d.Cancel()
	d.Fire(msg)

	assert.Empty(t, rec.calls)
}

func TestMessagesFromAnotherDebouncerAreIgnored(t *testing.T) {
	a := New(time.Millisecond, nil)
	b := New(time.Millisecond, nil)
	rec := &recorder{}

	msgA := fired(t, a.Schedule("from-a", rec.fn))
	b.Schedule("from-b", rec.fn)
	b.Fire(msgA)

	assert.Empty(t, rec.calls)
	assert.True(t, b.Pending())
}

func TestIntervalIsHonoured(t *testing.T) {
	d := New(30*time.Millisecond, nil)
	start := time.Now()
	fired(t, d.Schedule("cat", (&recorder{}).fn))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, d.Interval())
}
