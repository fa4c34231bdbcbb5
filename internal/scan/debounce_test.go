package scan

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounce_CoalescesBursts(t *testing.T) {
	var fires atomic.Int32
	d := NewDebounce(20*time.Millisecond, func() { fires.Add(1) })
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Schedule()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fires.Load(); got != 1 {
		t.Errorf("fires = %d, want 1", got)
	}
}

func TestDebounce_FiresAgainAfterQuiet(t *testing.T) {
	var fires atomic.Int32
	d := NewDebounce(10*time.Millisecond, func() { fires.Add(1) })
	defer d.Stop()

	d.Schedule()
	time.Sleep(50 * time.Millisecond)
	d.Schedule()
	time.Sleep(50 * time.Millisecond)

	if got := fires.Load(); got != 2 {
		t.Errorf("fires = %d, want 2", got)
	}
}

func TestDebounce_Stop(t *testing.T) {
	var fires atomic.Int32
	d := NewDebounce(10*time.Millisecond, func() { fires.Add(1) })

	d.Schedule()
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := fires.Load(); got != 0 {
		t.Errorf("fires after Stop = %d, want 0", got)
	}
}
