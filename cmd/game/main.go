package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/younwookim/pixelhit/internal/application/game"
	"github.com/younwookim/pixelhit/internal/application/scene/arena"
	"github.com/younwookim/pixelhit/internal/application/world"
	"github.com/younwookim/pixelhit/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	arenaName := flag.String("arena", "arena.yaml", "Arena config file inside the config directory")
	recordFlag := flag.String("record", "", "Record hit results to file (e.g., -record trace.json)")
	verifyFlag := flag.String("verify", "", "Re-check a recorded trace and exit")
	flag.Parse()

	fsys, err := configSource(*configDir)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	ctx := context.Background()

	if *verifyFlag != "" {
		mismatches, err := runVerify(ctx, fsys, *arenaName, *verifyFlag)
		if err != nil {
			log.Fatalf("Verify failed: %v", err)
		}
		for _, m := range mismatches {
			log.Print(m)
		}
		if len(mismatches) > 0 {
			log.Printf("%d mismatching frames", len(mismatches))
			os.Exit(1)
		}
		log.Printf("Trace %s verified", *verifyFlag)
		return
	}

	loader := config.NewFSLoader(fsys, *configDir)
	cfg, err := loader.LoadArena(*arenaName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	stats := &arena.Stats{}
	w, err := world.Load(ctx, loader.FS(), cfg, stats.Observe)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	g := game.New(arena.New(w, cfg, stats, *arenaName, *recordFlag), cfg.Display)
	if err := g.Run("Pixel Hit Arena"); err != nil {
		log.Fatal(err)
	}
}

// configSource returns the embedded configs, or dir when set
func configSource(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(configFS, "configs")
}
