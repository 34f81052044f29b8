// Command decode resolves a single OpenLR location reference against a map
// and prints the decoded location as JSON, without standing up an HTTP
// server. Useful for batch jobs and for reproducing a decode failure
// reported by the service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"openlr/pkg/api"
	"openlr/pkg/config"
	"openlr/pkg/decode"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
)

func main() {
	mapPath := flag.String("map", "", "Path to an OSM PBF extract of the target map (required)")
	referencePath := flag.String("reference", "", "Path to a JSON location reference file (required)")
	configPath := flag.String("config", "", "Path to a decoder config file (YAML/JSON/TOML, optional)")
	op := flag.String("op", "line", "Reference kind: line, point-along-line, or poi-with-access-point")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *mapPath == "" || *referencePath == "" {
		log.Fatal("both -map and -reference are required")
	}

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

	mapFile, err := os.Open(*mapPath)
	if err != nil {
		log.Fatal("failed to open map file", zap.Error(err))
	}
	reader, err := mapreader.LoadOSM(context.Background(), mapFile, log)
	mapFile.Close()
	if err != nil {
		log.Fatal("failed to load map", zap.Error(err))
	}

	refBytes, err := os.ReadFile(*referencePath)
	if err != nil {
		log.Fatal("failed to read reference file", zap.Error(err))
	}

	result, err := runDecode(*op, refBytes, reader, cfg)
	if err != nil {
		log.Fatal("decode failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal("failed to encode result", zap.Error(err))
	}
}

func runDecode(op string, refBytes []byte, reader mapreader.Reader, cfg config.Config) (any, error) {
	switch op {
	case "line":
		var req api.DecodeLineRequest
		if err := json.Unmarshal(refBytes, &req); err != nil {
			return nil, fmt.Errorf("parse reference: %w", err)
		}
		ref := api.ToLineLocationReference(req.Reference)
		loc, err := decode.Line(ref, reader, cfg, nil)
		if err != nil {
			return nil, err
		}
		return loc, nil

	case "point-along-line":
		var req api.DecodePointAlongLineRequest
		if err := json.Unmarshal(refBytes, &req); err != nil {
			return nil, fmt.Errorf("parse reference: %w", err)
		}
		ref := model.PointAlongLineReference{
			Line:             api.ToLineLocationReference(req.Reference),
			PositiveFraction: req.PositiveFraction,
		}
		point, err := decode.PointAlongLine(ref, reader, cfg, nil)
		if err != nil {
			return nil, err
		}
		return point, nil

	case "poi-with-access-point":
		var req api.DecodePOIWithAccessPointRequest
		if err := json.Unmarshal(refBytes, &req); err != nil {
			return nil, fmt.Errorf("parse reference: %w", err)
		}
		ref := model.PoiWithAccessPointReference{
			Line:             api.ToLineLocationReference(req.Reference),
			PositiveFraction: req.PositiveFraction,
			POICoordinate:    model.Coordinate{req.POICoordinate.Lon, req.POICoordinate.Lat},
		}
		poi, err := decode.POIWithAccessPoint(ref, reader, cfg, nil)
		if err != nil {
			return nil, err
		}
		return poi, nil

	default:
		return nil, fmt.Errorf("unknown -op %q", op)
	}
}
