// Package storage keeps bench runs on disk: one directory per run holding
// metadata.json and a frames.csv trace.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/restfield/internal/bench"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Preset       string    `json:"preset,omitempty"`
	Integrator   string    `json:"integrator"`
	Threshold    float64   `json:"threshold"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Particles    int       `json:"particles"`
	Frames       int       `json:"frames"`
	Dispatched   uint64    `json:"dispatched"`
	SettleFrames int       `json:"settle_frames"`
	Settled      bool      `json:"settled"`
	ElapsedMS    float64   `json:"elapsed_ms"`
}

// NewMetadata fills the report-derived fields of a RunMetadata.
func NewMetadata(r *bench.Report, opts bench.Options) RunMetadata {
	return RunMetadata{
		Width:        opts.Layout.Width,
		Height:       opts.Layout.Height,
		Particles:    r.Particles,
		Frames:       len(r.Frames),
		Dispatched:   r.Dispatched,
		SettleFrames: r.SettleFrames,
		Settled:      r.Settled,
		ElapsedMS:    float64(r.Elapsed) / float64(time.Millisecond),
	}
}

// Save writes a run and returns its ID. A zero Timestamp is set to now.
func (s *Store) Save(meta RunMetadata, frames []bench.FrameStat) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	prefix := meta.Preset
	if prefix == "" {
		prefix = "bench"
	}
	meta.ID = fmt.Sprintf("%s_%d", prefix, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&frames, csvFile); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]bench.FrameStat, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var frames []bench.FrameStat
	if err := gocsv.UnmarshalFile(file, &frames); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}
