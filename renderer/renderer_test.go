package renderer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/scene/builtin"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/achilleasa/spheretrace/types"
)

func testOptions() Options {
	return Options{
		FrameW:          16,
		FrameH:          10,
		SamplesPerPixel: 2,
		Seed:            7,
	}
}

func TestOptionsValidate(t *testing.T) {
	specs := []struct {
		opts   Options
		expErr error
	}{
		{Options{FrameW: 0, FrameH: 10, SamplesPerPixel: 1}, ErrInvalidFrameSize},
		{Options{FrameW: 10, FrameH: 0, SamplesPerPixel: 1}, ErrInvalidFrameSize},
		{Options{FrameW: 10, FrameH: 10, SamplesPerPixel: 0}, ErrInvalidSampleCount},
		{Options{FrameW: 10, FrameH: 10, SamplesPerPixel: 1}, nil},
	}

	for specIndex, spec := range specs {
		err := spec.opts.Validate()
		if err != spec.expErr {
			t.Fatalf("[spec %d] expected error %v; got %v", specIndex, spec.expErr, err)
		}
	}
}

func TestRendererSceneValidation(t *testing.T) {
	opts := testOptions()

	_, err := NewDefault(nil, tracer.NaiveScheduler(), opts)
	if err != ErrSceneNotDefined {
		t.Fatalf("expected error %v; got %v", ErrSceneNotDefined, err)
	}

	_, err = NewSerial(scene.NewScene(), opts)
	if err != ErrCameraNotDefined {
		t.Fatalf("expected error %v; got %v", ErrCameraNotDefined, err)
	}

	opts.SamplesPerPixel = 0
	_, err = NewDefault(builtin.Simple(opts.FrameW, opts.FrameH), tracer.NaiveScheduler(), opts)
	if err != ErrInvalidSampleCount {
		t.Fatalf("expected error %v; got %v", ErrInvalidSampleCount, err)
	}
}

func renderDefault(t *testing.T, scheduler tracer.BlockScheduler, opts Options) ([]uint8, FrameStats) {
	r, err := NewDefault(builtin.Simple(opts.FrameW, opts.FrameH), scheduler, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	return r.Frame().Pix, r.Stats()
}

func TestDefaultRendererIsDeterministic(t *testing.T) {
	opts := testOptions()
	opts.NumWorkers = 1
	expFrame, _ := renderDefault(t, tracer.NaiveScheduler(), opts)

	for _, numWorkers := range []int{2, 3, 7} {
		opts.NumWorkers = numWorkers
		frame, _ := renderDefault(t, tracer.NaiveScheduler(), opts)
		if !bytes.Equal(expFrame, frame) {
			t.Fatalf("expected frame rendered with %d workers to match the single worker frame", numWorkers)
		}

		frame, _ = renderDefault(t, tracer.PerfectScheduler(), opts)
		if !bytes.Equal(expFrame, frame) {
			t.Fatalf("expected frame rendered with %d workers and the perfect scheduler to match the single worker frame", numWorkers)
		}
	}
}

func TestDefaultRendererStats(t *testing.T) {
	opts := testOptions()
	opts.NumWorkers = 3
	_, stats := renderDefault(t, tracer.NaiveScheduler(), opts)

	if len(stats.Tracers) != 3 {
		t.Fatalf("expected stats for 3 tracers; got %d", len(stats.Tracers))
	}

	var rows uint32
	var percent float32
	for _, stat := range stats.Tracers {
		rows += stat.Rows
		percent += stat.FramePercent
	}
	if rows != opts.FrameH {
		t.Fatalf("expected tracers to render %d rows in total; got %d", opts.FrameH, rows)
	}
	if percent < 99.9 || percent > 100.1 {
		t.Fatalf("expected frame percentages to add up to 100; got %f", percent)
	}

	table := stats.Table()
	for _, exp := range []string{"Tracer", "Render time", "cpu-0", "cpu-2", "TOTAL"} {
		if !strings.Contains(table, exp) {
			t.Fatalf("expected stats table to contain %q; got\n%s", exp, table)
		}
	}
}

func TestDefaultRendererCapsWorkersToFrameHeight(t *testing.T) {
	opts := testOptions()
	opts.FrameH = 3
	opts.NumWorkers = 10
	_, stats := renderDefault(t, tracer.NaiveScheduler(), opts)

	if len(stats.Tracers) != 3 {
		t.Fatalf("expected worker count to be capped to 3; got %d", len(stats.Tracers))
	}
}

func TestDefaultRendererInterrupted(t *testing.T) {
	opts := testOptions()
	opts.NumWorkers = 2
	r, err := NewDefault(builtin.Simple(opts.FrameW, opts.FrameH), tracer.NaiveScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx, cancelFn := context.WithCancel(context.Background())
	cancelFn()

	if err = r.Render(ctx); err != ErrInterrupted {
		t.Fatalf("expected error %v; got %v", ErrInterrupted, err)
	}
}

func TestSerialRendererMatchesCast(t *testing.T) {
	opts := testOptions()
	sc := builtin.Simple(opts.FrameW, opts.FrameH)

	r, err := NewSerial(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	params := tracer.Params{FrameW: opts.FrameW, FrameH: opts.FrameH, SamplesPerPixel: opts.SamplesPerPixel}
	expRGB := tracer.Cast(params, sc, sc.Camera, types.NewRand(opts.Seed, 0), nil)

	frame := r.Frame()
	for y := 0; y < int(opts.FrameH); y++ {
		for x := 0; x < int(opts.FrameW); x++ {
			offset := 3 * (y*int(opts.FrameW) + x)
			c := frame.RGBAAt(x, y)
			if c.R != expRGB[offset] || c.G != expRGB[offset+1] || c.B != expRGB[offset+2] || c.A != 255 {
				t.Fatalf("expected pixel (%d, %d) to be %v; got %v", x, y, expRGB[offset:offset+3], c)
			}
		}
	}

	stats := r.Stats()
	if len(stats.Tracers) != 1 || stats.Tracers[0].Rows != opts.FrameH {
		t.Fatalf("expected a single tracer stat covering %d rows; got %+v", opts.FrameH, stats.Tracers)
	}
}

func TestToRGBA(t *testing.T) {
	rgb := []uint8{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	img := toRGBA(2, 2, rgb)

	if c := img.RGBAAt(1, 0); c.R != 4 || c.G != 5 || c.B != 6 || c.A != 255 {
		t.Fatalf("expected pixel (1, 0) to be {4 5 6 255}; got %v", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 7 || c.G != 8 || c.B != 9 || c.A != 255 {
		t.Fatalf("expected pixel (0, 1) to be {7 8 9 255}; got %v", c)
	}
}
