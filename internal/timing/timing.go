// Package timing records how long each stage of a completion request takes.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer tracks the duration of consecutive stages.
// Each Mark closes the stage that started at the previous mark.
type Timer struct {
	start  time.Time
	last   time.Time
	stages map[string]time.Duration
	order  []string
	now    func() time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	t := &Timer{now: now}
	t.Reset()
	return t
}

// Mark closes the current stage under label and returns its duration.
// Marking the same label twice accumulates.
func (t *Timer) Mark(label string) time.Duration {
	current := t.now()
	d := current.Sub(t.last)
	t.last = current

	if _, seen := t.stages[label]; !seen {
		t.order = append(t.order, label)
	}
	t.stages[label] += d
	return d
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration recorded for a stage
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.stages[label]
	return d, ok
}

// Stages returns stage labels in the order they were first marked
func (t *Timer) Stages() []string {
	return append([]string(nil), t.order...)
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.3fms", millis(t.Elapsed()))

	if len(t.order) > 0 {
		b.WriteString(" (")
		for i, label := range t.order {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %.3fms", label, millis(t.stages[label]))
		}
		b.WriteString(")")
	}

	return b.String()
}

// Reset restarts the timer and forgets every stage
func (t *Timer) Reset() {
	t.start = t.now()
	t.last = t.start
	t.stages = make(map[string]time.Duration)
	t.order = nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
