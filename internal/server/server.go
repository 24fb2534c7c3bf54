// Package server exposes charts, searches and frequency estimates as a
// JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/chart"
	"github.com/litescript/ls-astroclock/internal/dasa"
	"github.com/litescript/ls-astroclock/internal/event"
	"github.com/litescript/ls-astroclock/internal/logging"
	"github.com/litescript/ls-astroclock/internal/position"
	"github.com/litescript/ls-astroclock/internal/search"
	"github.com/litescript/ls-astroclock/internal/state"
	"github.com/litescript/ls-astroclock/internal/version"
)

const (
	defaultSamples = 10000
	maxSamples     = 1000000
	historyLimit   = 50
)

// Deps are the collaborators of the API handler.
type Deps struct {
	Positions *position.Service
	State     *state.Manager // default context; records searches
	Search    search.Options
	Log       *logging.Logger

	// Now is the default time for requests without one.
	Now func() time.Time
}

// NewHandler builds the API router.
func NewHandler(deps Deps) http.Handler {
	if deps.Positions == nil {
		deps.Positions = position.NewService(nil)
	}
	if deps.State == nil {
		deps.State = state.NewManager(state.DefaultConfig())
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Log))

	r.Get("/health", handleHealth(deps))
	r.Route("/v1", func(r chi.Router) {
		r.Get("/positions", handlePositions(deps))
		r.Get("/search", handleSearch(deps))
		r.Get("/frequency", handleFrequency(deps))
		r.Get("/dasa", handleDasa(deps))
		r.Get("/coverage", handleCoverage(deps))
		r.Get("/history", handleHistory(deps))
	})
	return r
}

func requestLogger(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request", "method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "duration", time.Since(start))
		})
	}
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}

func parseError(w http.ResponseWriter, perr *event.ParseError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"message": perr.Msg,
			"type":    "parse_error",
			"offset":  perr.Offset,
			"length":  perr.Length,
		},
	})
}

// Moment is a time in both Julian Day and calendar form.
type Moment struct {
	JD   float64   `json:"jd"`
	Time time.Time `json:"time"`
}

func moment(jd float64) Moment {
	return Moment{JD: jd, Time: astro.Time(jd)}
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": version.Version,
			"tables":  len(deps.Positions.Store().Coverage()),
		})
	}
}

// timeParam reads a time parameter, falling back to def when absent.
func timeParam(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	jd, err := astro.ParseJD(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if !astro.WithinBounds(jd) {
		return 0, fmt.Errorf("%s: %v outside supported range %v..%v", name, jd, astro.MinJD, astro.MaxJD)
	}
	return jd, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, s)
	}
	return v, nil
}

// contextParams overlays zodiac, helio, lat and lng parameters on the
// state's default context.
func contextParams(r *http.Request, def position.Context) (position.Context, error) {
	q := r.URL.Query()
	ctx := def
	if s := q.Get("zodiac"); s != "" {
		z, err := astro.ParseZodiac(s)
		if err != nil {
			return ctx, err
		}
		ctx.Zodiac = z
	}
	if s := q.Get("helio"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return ctx, fmt.Errorf("helio: invalid boolean %q", s)
		}
		ctx.Heliocentric = b
	}
	lat, err := floatParam(r, "lat", ctx.Observer.LatitudeDeg())
	if err != nil {
		return ctx, err
	}
	lng, err := floatParam(r, "lng", ctx.Observer.LongitudeEastDeg())
	if err != nil {
		return ctx, err
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ctx, fmt.Errorf("observer %v, %v out of range", lat, lng)
	}
	if q.Has("lat") || q.Has("lng") {
		ctx.Observer = position.ObserverFromDegrees(lat, lng)
	}
	return ctx, nil
}

// viewParams resolves the view and reference time of a request.
func viewParams(deps Deps, r *http.Request, timeName string) (position.View, float64, error) {
	ctx, err := contextParams(r, deps.State.Context())
	if err != nil {
		return position.View{}, 0, err
	}
	jd, err := timeParam(r, timeName, astro.JulianDay(deps.Now()))
	if err != nil {
		return position.View{}, 0, err
	}
	return deps.Positions.View(ctx), jd, nil
}

func handlePositions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, jd, err := viewParams(deps, r, "jd")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, chart.ExportChart(chart.Compute(view, jd)))
	}
}

// query parses the q parameter, writing the error response on failure.
func query(w http.ResponseWriter, r *http.Request) (*event.Event, bool) {
	q := r.URL.Query().Get("q")
	if q == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "q is required")
		return nil, false
	}
	ev, err := event.Parse(q)
	if err != nil {
		var perr *event.ParseError
		if errors.As(err, &perr) {
			parseError(w, perr)
		} else {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		}
		return nil, false
	}
	return ev, true
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Query   string `json:"query"`
	Forward bool   `json:"forward"`
	From    Moment `json:"from"`
	Start   Moment `json:"start"`
	End     Moment `json:"end"`
	Peak    Moment `json:"peak"`
}

func handleSearch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, ok := query(w, r)
		if !ok {
			return
		}
		view, from, err := viewParams(deps, r, "from")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		forward := true
		if s := r.URL.Query().Get("backward"); s != "" {
			backward, err := strconv.ParseBool(s)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "backward: invalid boolean %q", s)
				return
			}
			forward = !backward
		}

		q := ev.String()
		res, err := search.New(deps.Search).Search(r.Context(), from, event.Bind(ev, view), forward)
		deps.State.RecordSearch(q, forward, from, res, err)
		if err != nil {
			if errors.Is(err, search.ErrTimeout) {
				httpError(w, http.StatusUnprocessableEntity, "search_timeout", "%v", err)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
			return
		}

		deps.Log.Debug("search", "query", q, "start", res.Start)
		writeJSON(w, http.StatusOK, SearchResponse{
			Query:   q,
			Forward: forward,
			From:    moment(from),
			Start:   moment(res.Start),
			End:     moment(res.End),
			Peak:    moment(res.Peak),
		})
	}
}

func handleFrequency(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, ok := query(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		if !q.Has("from") || !q.Has("to") {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "from and to are required")
			return
		}
		view, from, err := viewParams(deps, r, "from")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		to, err := timeParam(r, "to", 0)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		if !(to > from) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "to must be after from")
			return
		}
		samples := defaultSamples
		if s := q.Get("samples"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > maxSamples {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "samples must be 1..%d", maxSamples)
				return
			}
			samples = n
		}
		orb, err := floatParam(r, "orb", 360)
		if err != nil || !(orb > 0) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "orb must be a positive number of degrees")
			return
		}

		f := search.Frequency(event.Bind(ev, view), from, to, samples, astro.DegToRad(orb))
		writeJSON(w, http.StatusOK, map[string]any{
			"query":     ev.String(),
			"from":      moment(from),
			"to":        moment(to),
			"samples":   samples,
			"orb":       orb,
			"frequency": f,
		})
	}
}

func handleDasa(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, jd, err := viewParams(deps, r, "jd")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		depth := dasa.DefaultDepth
		if s := r.URL.Query().Get("depth"); s != "" {
			if depth, err = strconv.Atoi(s); err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "depth: invalid number %q", s)
				return
			}
		}

		periods, err := dasa.FromView(view, jd, depth)
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, "dasa_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"birth":   moment(jd),
			"zodiac":  dasa.View(view).Context().Zodiac.String(),
			"periods": periods,
		})
	}
}

func handleCoverage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"tables": deps.Positions.Store().Coverage(),
		})
	}
}

func handleHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"searches": deps.State.RecentSearches(historyLimit),
		})
	}
}
