package main

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/younwookim/pixelhit/internal/application/replay"
	"github.com/younwookim/pixelhit/internal/application/world"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

// runVerify replays a trace against freshly built pixel maps. The arena named
// in the trace takes precedence over arenaName.
func runVerify(ctx context.Context, fsys fs.FS, arenaName, tracePath string) ([]replay.Mismatch, error) {
	data, err := replay.LoadTrace(tracePath)
	if err != nil {
		return nil, err
	}
	if data.Arena != "" {
		arenaName = data.Arena
	}
	if data.Version != replay.TraceVersion {
		return nil, fmt.Errorf("unsupported trace version %q", data.Version)
	}

	cfg, err := config.NewFSLoader(fsys, "").LoadArena(arenaName)
	if err != nil {
		return nil, err
	}
	w, err := world.Load(ctx, fsys, cfg, nil)
	if err != nil {
		return nil, err
	}

	return replay.NewReplayer(*data).Verify(ctx, w)
}
