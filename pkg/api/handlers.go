package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"openlr/pkg/config"
	"openlr/pkg/decode"
	"openlr/pkg/decodeerr"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
	"openlr/pkg/observer"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	reader mapreader.Reader
	cfg    config.Config
	obs    observer.Observer
	stats  StatsResponse
}

// NewHandlers creates handlers backed by reader, using cfg for every decode
// call and obs (may be nil) to observe them.
func NewHandlers(reader mapreader.Reader, cfg config.Config, obs observer.Observer, stats StatsResponse) *Handlers {
	return &Handlers{
		reader: reader,
		cfg:    cfg,
		obs:    observer.OrNoop(obs),
		stats:  stats,
	}
}

// HandleDecodeLine handles POST /api/v1/decode/line.
func (h *Handlers) HandleDecodeLine(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req DecodeLineRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	ref := ToLineLocationReference(req.Reference)
	if err := config.ValidateLineReference(ref); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_reference", "")
		return
	}

	loc, err := decode.Line(ref, h.reader, h.cfg, h.obs)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	resp := DecodeLineResponse{
		Lines:          toLineJSONs(loc.Route.Lines),
		PositiveOffset: loc.PositiveOffset,
		NegativeOffset: loc.NegativeOffset,
		TrimmedLength:  loc.TrimmedLength(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDecodePointAlongLine handles POST /api/v1/decode/point-along-line.
func (h *Handlers) HandleDecodePointAlongLine(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req DecodePointAlongLineRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	ref := model.PointAlongLineReference{
		Line:             ToLineLocationReference(req.Reference),
		PositiveFraction: req.PositiveFraction,
	}
	if err := config.ValidatePointAlongLineReference(ref); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_reference", "")
		return
	}

	point, err := decode.PointAlongLine(ref, h.reader, h.cfg, h.obs)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DecodePointAlongLineResponse{Point: toPointJSON(point)})
}

// HandleDecodePOIWithAccessPoint handles
// POST /api/v1/decode/poi-with-access-point.
func (h *Handlers) HandleDecodePOIWithAccessPoint(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req DecodePOIWithAccessPointRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	ref := model.PoiWithAccessPointReference{
		Line:             ToLineLocationReference(req.Reference),
		PositiveFraction: req.PositiveFraction,
		POICoordinate:    model.Coordinate{req.POICoordinate.Lon, req.POICoordinate.Lat},
	}
	if err := config.ValidatePointAlongLineReference(model.PointAlongLineReference{
		Line:             ref.Line,
		PositiveFraction: ref.PositiveFraction,
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_reference", "")
		return
	}

	poi, err := decode.POIWithAccessPoint(ref, h.reader, h.cfg, h.obs)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DecodePOIWithAccessPointResponse{
		AccessPoint:   toPointJSON(poi.AccessPoint),
		POICoordinate: CoordinateJSON{Lon: poi.POICoordinate[0], Lat: poi.POICoordinate[1]},
	})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	return true
}

// ToLineLocationReference converts a wire-format reference into the model
// type the decoder consumes. Exported so other front ends (the one-shot CLI)
// can reuse the same JSON shape as the HTTP API.
func ToLineLocationReference(j LineLocationReferenceJSON) model.LineLocationReference {
	points := make([]model.LRP, len(j.Points))
	for i, p := range j.Points {
		points[i] = model.LRP{
			Coordinate: model.Coordinate{p.Coordinate.Lon, p.Coordinate.Lat},
			FRC:        model.FRC(p.FRC),
			FOW:        model.FOW(p.FOW),
			Bearing:    model.Bearing(p.Bearing),
			LFRCNP:     model.FRC(p.LFRCNP),
			DNP:        p.DNP,
			Last:       p.Last,
		}
	}
	return model.LineLocationReference{
		Points:         points,
		PositiveOffset: j.PositiveOffset,
		NegativeOffset: j.NegativeOffset,
	}
}

func toLineJSONs(lines []model.Line) []LineJSON {
	out := make([]LineJSON, len(lines))
	for i, l := range lines {
		out[i] = LineJSON{ID: string(l.ID()), Length: l.Length()}
	}
	return out
}

func toPointJSON(p model.PointAlongLine) PointJSON {
	return PointJSON{
		Lines:  toLineJSONs(p.Route.Lines),
		LineID: string(p.Line.ID()),
		Offset: p.Offset,
	}
}

// writeDecodeError maps a decodeerr value to the appropriate HTTP status.
func writeDecodeError(w http.ResponseWriter, err error) {
	var invalidRef *decodeerr.InvalidReference
	var invalidOffsets *decodeerr.InvalidOffsets
	var noCandidates *decodeerr.NoCandidates
	var noMatch *decodeerr.NoMatch
	var mapReaderErr *decodeerr.MapReaderError

	switch {
	case errors.As(err, &invalidRef):
		writeError(w, http.StatusBadRequest, "invalid_reference", "")
	case errors.As(err, &invalidOffsets):
		writeError(w, http.StatusUnprocessableEntity, "invalid_offsets", "")
	case errors.As(err, &noCandidates):
		writeError(w, http.StatusUnprocessableEntity, "no_candidates", "")
	case errors.As(err, &noMatch):
		writeError(w, http.StatusNotFound, "no_match", "")
	case errors.As(err, &mapReaderErr):
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
