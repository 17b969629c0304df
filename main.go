package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/zombietown/prefabs"
	"github.com/milk9111/zombietown/sim"
	"github.com/milk9111/zombietown/storage"
)

func main() {
	storePath := flag.String("store", "zombietown-save.json", "save file path (empty keeps progress in memory)")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory with tuning overrides, watched for edits")
	debug := flag.Bool("debug", false, "draw physics shapes")
	flag.Parse()

	prefabs.Dir = *prefabsDir

	var store storage.Store = storage.NewMemoryStore()
	if *storePath != "" {
		fs, err := storage.OpenFileStore(*storePath)
		if err != nil {
			log.Fatal(err)
		}
		store = fs
	}

	tuning, err := prefabs.LoadTuning(prefabs.GameFile)
	if err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	s, err := sim.New(sim.Options{Tuning: tuning, Store: store, Rand: rand.New(rand.NewSource(*seed))})
	if err != nil {
		log.Fatal(err)
	}

	watcher, err := prefabs.NewWatcher(*prefabsDir)
	if err != nil {
		log.Printf("tuning: hot reload disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	ebiten.SetWindowSize(s.Level().Width, s.Level().Height)
	ebiten.SetWindowTitle("zombietown")

	if err := ebiten.RunGame(NewGame(s, watcher, prefabs.GameFile, *debug)); err != nil {
		log.Fatal(err)
	}
}
