// Command chessrules-cli plays a two-player game over standard input and output.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessrules/internal/cli"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	inMemory   = flag.Bool("memory", false, "keep games and statistics in memory only")
	dataDir    = flag.String("data", "", "data directory, overriding the config file")
	noStore    = flag.Bool("nostore", false, "disable save, load and statistics")
)

func main() {
	flag.Parse()
	log.SetPrefix("[CLI] ")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
		def := config.DefaultConfig
		cfg = &def
	}
	if *inMemory {
		cfg.Storage.InMemory = true
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	// A nil *storage.Storage must not reach cli.New as a non-nil interface.
	var store cli.Store
	if !*noStore {
		s, err := storage.NewStorage(cfg.Storage)
		if err != nil {
			log.Printf("Warning: storage unavailable: %v", err)
		} else {
			defer s.Close()
			store = s
		}
	}

	if err := cli.New(os.Stdout, store).Run(os.Stdin); err != nil {
		log.Printf("read error: %v", err)
	}
}
