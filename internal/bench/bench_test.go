package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/san-kum/restfield/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Layout = particle.Layout{Width: 40, Height: 20}
	opts.DragFrames = 20
	return opts
}

func testConfig() particle.FieldConfig {
	cfg := particle.DefaultFieldConfig()
	cfg.Particle.Threshold = 6
	return cfg
}

func TestRunSettles(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	report, err := Run(context.Background(), testConfig(), smallOptions(), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 800, report.Particles)
	assert.True(t, report.Settled)
	assert.Positive(t, report.SettleFrames)
	assert.EqualValues(t, len(report.Frames), report.Dispatched)

	last := report.Frames[len(report.Frames)-1]
	assert.True(t, last.Resting)
	assert.Zero(t, last.Moving)
	assert.False(t, last.PointerActive)

	assert.Equal(t, 1, logs.FilterMessage("bench finished").Len())
	assert.Equal(t, 1, logs.FilterMessage("field initialized").Len())
}

func TestRunTraceShowsDisturbance(t *testing.T) {
	report, err := Run(context.Background(), testConfig(), smallOptions(), nil)
	require.NoError(t, err)

	peak := 0
	for _, f := range report.Frames {
		if f.Moving > peak {
			peak = f.Moving
		}
	}
	assert.Positive(t, peak)
	assert.Len(t, report.Moving(), len(report.Frames))
}

func TestRunWithoutDrag(t *testing.T) {
	opts := smallOptions()
	opts.DragFrames = 0

	report, err := Run(context.Background(), testConfig(), opts, nil)
	require.NoError(t, err)
	assert.True(t, report.Settled)
	assert.Equal(t, 1, report.SettleFrames)
	assert.Len(t, report.Frames, 1)
}

func TestRunRejectsBadOptions(t *testing.T) {
	opts := smallOptions()
	opts.FrameMS = 0
	_, err := Run(context.Background(), testConfig(), opts, nil)
	assert.Error(t, err)

	opts = smallOptions()
	opts.MaxFrames = 0
	_, err = Run(context.Background(), testConfig(), opts, nil)
	assert.Error(t, err)

	opts = smallOptions()
	opts.Layout.Width = -5
	_, err = Run(context.Background(), testConfig(), opts, nil)
	assert.ErrorIs(t, err, particle.ErrInvalidLayout)
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, testConfig(), smallOptions(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Frames)
}

func TestWriteCSV(t *testing.T) {
	report, err := Run(context.Background(), testConfig(), smallOptions(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(report.Frames)+1)
	assert.Equal(t, []string{
		"frame", "timestamp_ms", "pointer_x", "pointer_y", "pointer_active",
		"moving", "max_displacement", "resting",
	}, rows[0])
}
