// Package debounce delays an action until a stream of triggers goes quiet.
//
// The timer is a tea.Tick whose message carries the sequence number it was
// scheduled under; a message whose number is no longer current is ignored,
// which is how an earlier schedule gets cancelled.
package debounce

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered when a scheduled quiet interval elapses
type FiredMsg struct {
	id    uint64
	owner *Debouncer
	Value string
}

// Debouncer holds at most one pending call
type Debouncer struct {
	interval time.Duration
	seq      uint64
	pending  func(string) tea.Cmd
	onBlank  func()
}

// New creates a debouncer. onBlank runs synchronously when a blank value is scheduled.
func New(interval time.Duration, onBlank func()) *Debouncer {
	return &Debouncer{interval: interval, onBlank: onBlank}
}

// Interval returns the quiet period
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Schedule replaces any pending call with fn(value), to run once the interval
// passes without another Schedule. A blank value cancels instead and calls onBlank.
func (d *Debouncer) Schedule(value string, fn func(string) tea.Cmd) tea.Cmd {
	d.seq++
	if strings.TrimSpace(value) == "" {
		d.pending = nil
		if d.onBlank != nil {
			d.onBlank()
		}
		return nil
	}

	d.pending = fn
	id := d.seq
	return tea.Tick(d.interval, func(time.Time) tea.Msg {
		return FiredMsg{id: id, owner: d, Value: value}
	})
}

// Fire runs the pending call if msg belongs to the latest schedule
func (d *Debouncer) Fire(msg FiredMsg) tea.Cmd {
	if msg.owner != d || msg.id != d.seq || d.pending == nil {
		return nil
	}
	fn := d.pending
	d.pending = nil
	return fn(msg.Value)
}

// Cancel drops the pending call, if any
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = nil
}

// Pending reports whether a call is waiting for its interval
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}
