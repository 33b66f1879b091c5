package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

// ErrNoFrames is returned when saving or verifying an empty trace
var ErrNoFrames = errors.New("replay: no frames")

// TraceVersion is written into every trace
const TraceVersion = "1.0"

// Recorder captures hit results frame by frame
type Recorder struct {
	data      TraceData
	recording bool
	frame     int
	last      *config.CollisionConfig
}

// NewRecorder creates a new recorder for the named arena
func NewRecorder(arena string) *Recorder {
	return &Recorder{
		data: TraceData{
			Version:   TraceVersion,
			Arena:     arena,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameSample, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records one frame. Settings are stored only when they differ
// from the previous frame.
func (r *Recorder) RecordFrame(x, y float64, hits []int, settings config.CollisionConfig) {
	if !r.recording {
		return
	}

	sample := FrameSample{
		F:    r.frame,
		X:    x,
		Y:    y,
		Hits: slices.Clone(hits),
	}
	if r.last == nil || *r.last != settings {
		s := settings
		sample.Cfg = &s
		r.last = &s
	}

	r.data.Frames = append(r.data.Frames, sample)
	r.frame++
}

// Save writes the trace to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded trace
func (r *Recorder) Data() TraceData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
