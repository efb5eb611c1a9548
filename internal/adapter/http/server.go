package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/input"
	"github.com/couchcryptid/impact-sim/internal/observability"
	"github.com/couchcryptid/impact-sim/internal/pipeline"
	"github.com/couchcryptid/impact-sim/internal/presenter"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and simulation HTTP endpoints.
type Server struct {
	httpServer *http.Server
	sim        pipeline.Runner
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1/impact simulation routes.
func NewServer(addr string, sim pipeline.Runner, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		sim:     sim,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/impact", s.handleReport)
	mux.HandleFunc("GET /v1/impact/chart.png", s.handleChart)
	mux.HandleFunc("GET /v1/impact/series.csv", s.handleSeriesCSV)
	mux.HandleFunc("GET /v1/impact/view", s.handleView)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// simulate acquires parameters from the query string and runs them. On
// failure it writes the error response and returns false.
func (s *Server) simulate(w http.ResponseWriter, r *http.Request) (domain.ImpactReport, bool) {
	params, err := input.FromQuery(r.URL.Query())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			pipeline.RecordValidationError(s.metrics, err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return domain.ImpactReport{}, false
		}
		s.logger.Error("acquire parameters failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return domain.ImpactReport{}, false
	}

	report, err := s.sim.Simulate(r.Context(), params)
	if err != nil {
		s.logger.Error("simulation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "simulation failed"})
		return domain.ImpactReport{}, false
	}
	return report, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.simulate(w, r)
	if !ok {
		return
	}
	body, err := json.Marshal(report)
	if err != nil {
		// NaN results from out-of-range angles cannot be encoded.
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "report contains non-finite values",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client disconnects are not actionable
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	report, ok := s.simulate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := presenter.RenderChart(&buf, report.Recovery); err != nil {
		s.logger.Warn("render chart failed", "report_id", report.ID, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client disconnects are not actionable
}

func (s *Server) handleSeriesCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.simulate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := presenter.WriteSeriesCSV(&buf, report.Recovery); err != nil {
		s.logger.Error("write series csv failed", "report_id", report.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "csv export failed"})
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client disconnects are not actionable
}

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<pre>{{.Summary}}</pre>
<img src="/v1/impact/chart.png?{{.Query}}" alt="{{.Title}}">
<p><a href="/v1/impact/series.csv?{{.Query}}">Download series (CSV)</a></p>
</body>
</html>
`))

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	report, ok := s.simulate(w, r)
	if !ok {
		return
	}
	var summary bytes.Buffer
	presenter.WriteSummary(&summary, report) //nolint:errcheck // bytes.Buffer writes do not fail

	var buf bytes.Buffer
	err := viewTemplate.Execute(&buf, map[string]any{
		"Title":   presenter.ChartTitle,
		"Summary": summary.String(),
		"Query":   template.URL(queryFor(report.Parameters)),
	})
	if err != nil {
		s.logger.Error("render view failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "view failed"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client disconnects are not actionable
}

// ViewPath returns the viewer page path for a parameter set.
func ViewPath(p domain.ImpactParameters) string {
	return "/v1/impact/view?" + queryFor(p)
}

// queryFor rebuilds a canonical query string from validated parameters.
func queryFor(p domain.ImpactParameters) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return url.Values{
		domain.FieldDiameter: {format(p.Diameter)},
		domain.FieldVelocity: {format(p.Velocity)},
		domain.FieldDensity:  {format(p.Density)},
		domain.FieldAngle:    {format(p.Angle)},
	}.Encode()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort error response
}
