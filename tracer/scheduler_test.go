package tracer

import (
	"testing"
	"time"
)

func assertRows(t *testing.T, specIndex int, exp, got []uint32) {
	t.Helper()
	if len(exp) != len(got) {
		t.Fatalf("[spec %d] expected %d block assignments; got %d", specIndex, len(exp), len(got))
	}
	for idx := range exp {
		if exp[idx] != got[idx] {
			t.Fatalf("[spec %d] expected tracer %d to be assigned %d rows; got %d (assignment: %v)", specIndex, idx, exp[idx], got[idx], got)
		}
	}
}

func TestNaiveScheduler(t *testing.T) {
	specs := []struct {
		speeds  []float32
		frameH  uint32
		expRows []uint32
	}{
		{[]float32{1, 2}, 10, []uint32{4, 6}},
		{[]float32{2, 1}, 10, []uint32{7, 3}},
		{[]float32{1, 1000}, 10, []uint32{1, 9}},
		{[]float32{0, 0}, 10, []uint32{5, 5}},
		{[]float32{1, 1}, 1, []uint32{1, 0}},
		{[]float32{1, 1, 1}, 2, []uint32{1, 1, 0}},
		{[]float32{1, 1, 2}, 8, []uint32{2, 2, 4}},
	}

	for specIndex, spec := range specs {
		tracers := make([]Tracer, len(spec.speeds))
		for idx, speed := range spec.speeds {
			tracers[idx] = newMockTracer(speed)
		}

		assertRows(t, specIndex, spec.expRows, NaiveScheduler().Schedule(tracers, spec.frameH))
	}
}

func TestPerfectScheduler(t *testing.T) {
	// Tracers have the same speed estimate
	tr1 := newMockTracer(1)
	tr2 := newMockTracer(1)
	tracers := []Tracer{tr1, tr2}

	specs := []struct {
		renderTimes [2]time.Duration
		expRows     []uint32
	}{
		// No feedback yet; rows are split by speed estimate
		{[2]time.Duration{1, 5}, []uint32{5, 5}},
		// Tracer 1 was five times faster
		{[2]time.Duration{1, 5}, []uint32{9, 1}},
		// Tracer 2 caught up and overtook tracer 1
		{[2]time.Duration{5, 1}, []uint32{7, 3}},
	}

	sch := PerfectScheduler()
	for specIndex, spec := range specs {
		tr1.stats.RenderTime = spec.renderTimes[0]
		tr2.stats.RenderTime = spec.renderTimes[1]

		rows := sch.Schedule(tracers, 10)
		assertRows(t, specIndex, spec.expRows, rows)

		tr1.stats.BlockH = rows[0]
		tr2.stats.BlockH = rows[1]
	}
}

func TestPerfectSchedulerFallsBackToSpeedEstimates(t *testing.T) {
	tr1 := newMockTracer(1)
	tr2 := newMockTracer(3)
	sch := PerfectScheduler()
	assertRows(t, 0, []uint32{2, 6}, sch.Schedule([]Tracer{tr1, tr2}, 8))

	// Missing render time invalidates the collected stats
	tr1.stats.BlockH, tr1.stats.RenderTime = 2, 0
	tr2.stats.BlockH, tr2.stats.RenderTime = 6, time.Millisecond
	assertRows(t, 1, []uint32{2, 6}, sch.Schedule([]Tracer{tr1, tr2}, 8))

	// A change in the number of tracers discards previous assignments
	tr1.stats.RenderTime = time.Millisecond
	tr3 := newMockTracer(4)
	assertRows(t, 2, []uint32{1, 3, 4}, sch.Schedule([]Tracer{tr1, tr2, tr3}, 8))
}

func TestSchedulerCoversFrame(t *testing.T) {
	tracers := make([]Tracer, 0)
	for i := 0; i < 7; i++ {
		tracers = append(tracers, newMockTracer(float32(i%3+1)))
	}

	for _, frameH := range []uint32{3, 7, 16, 100, 1081} {
		var total uint32
		for _, rows := range NaiveScheduler().Schedule(tracers, frameH) {
			total += rows
		}
		if total != frameH {
			t.Fatalf("expected %d scheduled rows; got %d", frameH, total)
		}
	}
}

// A tracer that only reports a speed estimate and stats.
type mockTracer struct {
	Tracer

	speed float32
	stats *Stats
}

func newMockTracer(speed float32) *mockTracer {
	return &mockTracer{
		speed: speed,
		stats: &Stats{},
	}
}

func (mt *mockTracer) SpeedEstimate() float32 {
	return mt.speed
}

func (mt *mockTracer) Stats() *Stats {
	return mt.stats
}
