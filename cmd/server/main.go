package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"openlr/pkg/api"
	"openlr/pkg/config"
	"openlr/pkg/mapreader"
	"openlr/pkg/observer"
)

func main() {
	mapPath := flag.String("map", "map.osm.pbf", "Path to an OSM PBF extract of the target map")
	configPath := flag.String("config", "", "Path to a decoder config file (YAML/JSON/TOML, optional)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	cacheSize := flag.Int("cache-size", 4096, "Entries per LRU cache layer in front of the map reader")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	start := time.Now()

	v := viper.New()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatal("failed to read config", zap.Error(err))
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatal("failed to load decoder config", zap.Error(err))
	}
	cfg = cfg.Normalize()

	log.Info("loading map", zap.String("path", *mapPath))
	f, err := os.Open(*mapPath)
	if err != nil {
		log.Fatal("failed to open map file", zap.Error(err))
	}
	mem, err := mapreader.LoadOSM(context.Background(), f, log)
	f.Close()
	if err != nil {
		log.Fatal("failed to load map", zap.Error(err))
	}
	log.Info("map loaded", zap.Int("lines", mem.NumLines()), zap.Int("nodes", mem.NumNodes()))

	reader, err := mapreader.NewCached(mem, *cacheSize)
	if err != nil {
		log.Fatal("failed to build cached reader", zap.Error(err))
	}

	// Reclaim memory from parser-time temporaries before serving traffic.
	runtime.GC()
	debug.FreeOSMemory()

	log.Info("ready", zap.Duration("load_time", time.Since(start).Round(time.Millisecond)))

	addr := fmt.Sprintf(":%d", *port)
	srvCfg := api.DefaultConfig(addr)
	srvCfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{NumLines: mem.NumLines(), NumNodes: mem.NumNodes()}
	obs := observer.Multi{observer.NewZapObserver(log), observer.PrometheusObserver{}}
	handlers := api.NewHandlers(reader, cfg, obs, stats)
	srv := api.NewServer(srvCfg, handlers, log)

	if err := api.ListenAndServe(srv, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
