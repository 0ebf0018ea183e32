package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/schematic/pkg/buildinfo"
	"github.com/matzehuels/schematic/pkg/diagrams/catalog"
	"github.com/matzehuels/schematic/pkg/errors"
	sceneio "github.com/matzehuels/schematic/pkg/io"
	"github.com/matzehuels/schematic/pkg/pipeline"
	"github.com/matzehuels/schematic/pkg/render/sink"
	"github.com/matzehuels/schematic/pkg/scene"
)

// CacheHeader reports HIT or MISS for rendered artifacts.
const CacheHeader = "X-Cache"

// DiagramInfo is one entry of the catalog listing.
type DiagramInfo struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Formats     []string `json:"formats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	formats := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		formats[i] = string(f)
	}
	out := make([]DiagramInfo, 0, len(catalog.All))
	for _, d := range catalog.All {
		out = append(out, DiagramInfo{
			Name:        d.Name,
			Type:        string(d.Type),
			Description: d.Description,
			Formats:     formats,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	format, opts, err := s.renderOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sc, err := d.Build()
	if err != nil {
		writeError(w, err)
		return
	}
	s.render(w, r, d.Name, sc, format, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, opts, err := s.renderOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "scene"
	}
	if err := errors.ValidateDiagramName(name); err != nil {
		writeError(w, err)
		return
	}

	sc, err := sceneio.ReadScene(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, err)
		return
	}
	s.render(w, r, name, sc, format, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, sc *scene.Scene, format sink.Format, opts pipeline.Options) {
	data, cached, err := s.runner.RenderFormat(r.Context(), name, sc, string(format), opts)
	if err != nil {
		s.logger.Error("render failed", "diagram", name, "format", format, "error", err, "request_id", RequestID(r.Context()))
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if cached {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderOptions reads the format path parameter and the scale and dpi
// query parameters over the server defaults.
func (s *Server) renderOptions(r *http.Request) (sink.Format, pipeline.Options, error) {
	opts := pipeline.Options{Scale: s.defaults.Scale, DPI: s.defaults.DPI}
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		return "", opts, err
	}
	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *float64
	}{{"scale", &opts.Scale}, {"dpi", &opts.DPI}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) {
			return "", opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive number, got %q", p.key, v)
		}
		*p.dst = f
	}
	if err := opts.Validate(); err != nil {
		return "", opts, err
	}
	return format, opts, nil
}

// =============================================================================
// Responses
// =============================================================================

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Code: string(errors.GetCode(err)), Message: errors.UserMessage(err)}
	switch {
	case status == http.StatusRequestEntityTooLarge:
		body.Code, body.Message = string(errors.ErrCodeInvalidInput), "request body too large"
	case status == http.StatusInternalServerError:
		// Backend faults keep their code but not their detail.
		if body.Code == "" {
			body.Code = string(errors.ErrCodeInternal)
		}
		body.Message = http.StatusText(status)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
