package replay

import "github.com/younwookim/pixelhit/internal/infrastructure/config"

// FrameSample records the player position and hit results for a single frame
type FrameSample struct {
	F    int                     `json:"f"`              // Frame number
	X    float64                 `json:"x"`              // Player X
	Y    float64                 `json:"y"`              // Player Y
	Hits []int                   `json:"hits,omitempty"` // Placement indices that collided
	Cfg  *config.CollisionConfig `json:"cfg,omitempty"`  // Settings in effect from this frame on
}

// TraceData contains all data needed to re-check a recorded session
type TraceData struct {
	Version   string        `json:"version"`
	Arena     string        `json:"arena"`
	StartTime string        `json:"startTime"`
	Frames    []FrameSample `json:"frames"`
}
