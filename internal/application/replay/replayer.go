package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

// Target is what a trace is verified against
type Target interface {
	Configure(ctx context.Context, s config.CollisionConfig) error
	Hits(x, y float64) ([]int, error)
}

// Mismatch is a frame whose hits differ from the recording
type Mismatch struct {
	Frame int
	Want  []int
	Got   []int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("frame %d: recorded %v, got %v", m.Frame, m.Want, m.Got)
}

// Replayer steps through recorded frames
type Replayer struct {
	data  TraceData
	frame int
}

// NewReplayer creates a new replayer from trace data
func NewReplayer(data TraceData) *Replayer {
	return &Replayer{data: data}
}

// LoadTrace loads trace data from a file
func LoadTrace(filename string) (*TraceData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data TraceData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	return &data, nil
}

// Next returns the current frame and advances
func (r *Replayer) Next() (FrameSample, bool) {
	if r.frame >= len(r.data.Frames) {
		return FrameSample{}, false
	}

	f := r.data.Frames[r.frame]
	r.frame++
	return f, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Verify re-runs every recorded frame against t and returns the frames whose
// hits differ. It always covers the whole trace and leaves the playback
// cursor alone. Hit testing is deterministic, so any mismatch means the maps
// or the detector changed since the trace was recorded.
func (r *Replayer) Verify(ctx context.Context, t Target) ([]Mismatch, error) {
	if r.TotalFrames() == 0 {
		return nil, ErrNoFrames
	}

	var mismatches []Mismatch
	for _, f := range r.data.Frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.Cfg != nil {
			if err := t.Configure(ctx, *f.Cfg); err != nil {
				return nil, fmt.Errorf("frame %d: %w", f.F, err)
			}
		}

		got, err := t.Hits(f.X, f.Y)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f.F, err)
		}
		if !slices.Equal(got, f.Hits) {
			mismatches = append(mismatches, Mismatch{Frame: f.F, Want: f.Hits, Got: got})
		}
	}
	return mismatches, nil
}
