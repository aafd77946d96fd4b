// Package bench drives a scene headlessly: a scripted drag across the field,
// a release, and then frames until the field is back at rest.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/restfield/internal/particle"
	"github.com/san-kum/restfield/internal/scene"
	"go.uber.org/zap"
)

const DefaultFrameMS = 1000.0 / 60

type Options struct {
	Layout particle.Layout
	// DragFrames is how many frames the pointer is held while sweeping
	// left to right across the middle row.
	DragFrames int
	// MaxFrames bounds the whole run.
	MaxFrames int
	FrameMS   float64
}

func DefaultOptions() Options {
	return Options{
		Layout:     particle.Layout{Width: 160, Height: 96},
		DragFrames: 60,
		MaxFrames:  2000,
		FrameMS:    DefaultFrameMS,
	}
}

// FrameStat is one row of the per-frame trace.
type FrameStat struct {
	Frame           int     `csv:"frame"`
	Timestamp       float64 `csv:"timestamp_ms"`
	PointerX        float64 `csv:"pointer_x"`
	PointerY        float64 `csv:"pointer_y"`
	PointerActive   bool    `csv:"pointer_active"`
	Moving          int     `csv:"moving"`
	MaxDisplacement float64 `csv:"max_displacement"`
	Resting         bool    `csv:"resting"`
}

type Report struct {
	Grid       particle.Grid
	Particles  int
	Frames     []FrameStat
	Dispatched uint64
	// SettleFrames counts frames from pointer release until the engine slept.
	SettleFrames int
	Settled      bool
	Elapsed      time.Duration
}

// Moving returns the moving-particle series, for plotting.
func (r *Report) Moving() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = float64(f.Moving)
	}
	return out
}

// WriteCSV writes the frame trace with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(r.Frames, w)
}

// Run builds a scene from cfg and replays the scripted drag.
func Run(ctx context.Context, cfg particle.FieldConfig, opts Options, log *zap.Logger) (*Report, error) {
	if opts.FrameMS <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %f", opts.FrameMS)
	}
	if opts.MaxFrames <= 0 {
		return nil, fmt.Errorf("max frames must be positive, got %d", opts.MaxFrames)
	}
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{Frames: make([]FrameStat, 0, opts.MaxFrames)}
	var sc *scene.Scene
	frame := 0
	ts := 0.0

	sc, err := scene.New(cfg, particle.NopSprites,
		scene.WithLogger(log),
		scene.WithRender(func() {
			st := sc.Field.Stats()
			pos := sc.Buffer.Position()
			report.Frames = append(report.Frames, FrameStat{
				Frame:           frame,
				Timestamp:       ts,
				PointerX:        pos.X,
				PointerY:        pos.Y,
				PointerActive:   sc.Buffer.IsActive(),
				Moving:          st.Particles - st.Resting,
				MaxDisplacement: st.MaxDisplacement,
				Resting:         sc.Field.IsResting(),
			})
		}),
	)
	if err != nil {
		return nil, err
	}
	defer sc.Destroy()

	if err := sc.Resize(opts.Layout); err != nil {
		return nil, err
	}
	report.Grid = sc.Field.Grid()
	report.Particles = sc.Field.Len()

	start := time.Now()
	y := opts.Layout.Height / 2
	released := -1

	for frame = 1; frame <= opts.MaxFrames; frame++ {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		switch {
		case frame == 1 && opts.DragFrames > 0:
			sc.PointerDown(0, y)
		case frame <= opts.DragFrames:
			x := opts.Layout.Width * float64(frame) / float64(opts.DragFrames)
			sc.PointerMove(x, y)
		case frame == opts.DragFrames+1:
			sc.PointerUp()
			released = frame
		}

		ts += opts.FrameMS
		sc.Frame(ts)

		if released > 0 && !sc.Busy() {
			report.Settled = true
			report.SettleFrames = frame - released
			break
		}
	}

	report.Elapsed = time.Since(start)
	report.Dispatched = sc.Engine.Frames()
	log.Info("bench finished",
		zap.Int("particles", report.Particles),
		zap.Uint64("dispatched", report.Dispatched),
		zap.Int("settle_frames", report.SettleFrames),
		zap.Bool("settled", report.Settled),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
