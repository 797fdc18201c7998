package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"termcal/internal/calendar"
	"termcal/internal/config"
	"termcal/internal/events"
	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// Server exposes the calendar read-only over HTTP.
type Server struct {
	cfg     *config.Config
	cfgPath string
	store   *events.Store
	today func() model.Date
	mux   *http.ServeMux
}

// NewServer constructs a new Server. cfg supplies the listen address and
// credentials. Preferences are re-read from cfgPath on every request when
// it is set, falling back to cfg. A nil today uses the local date.
func NewServer(cfg *config.Config, cfgPath string, store *events.Store, today func() model.Date) *Server {
	if today == nil {
		today = model.Today
	}
	s := &Server{
		cfg:     cfg,
		cfgPath: cfgPath,
		store:   store,
		today:   today,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Blank credentials disable auth.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="termcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// prefs returns the current preferences.
func (s *Server) prefs() *config.Config {
	if s.cfgPath == "" {
		return s.cfg
	}
	cfg, err := config.Read(s.cfgPath)
	if err != nil {
		appLog.Warn("reload settings failed, using startup values", "path", s.cfgPath, "err", err)
		return s.cfg
	}
	return cfg
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/grid", s.handleGrid)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// cellDTO is a JSON view of a grid entry; placeholders encode as null.
type cellDTO struct {
	Day    int      `json:"day"`
	Today  bool     `json:"today"`
	Events []string `json:"events"`
}

type columnDTO struct {
	Weekday string     `json:"weekday"`
	Label   string     `json:"label"`
	Cells   []*cellDTO `json:"cells"`
}

type gridResponse struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	MonthName   string      `json:"month_name"`
	SundayFirst bool        `json:"sunday_first"`
	Columns     []columnDTO `json:"columns"`
}

type eventsResponse struct {
	Date   string   `json:"date"`
	Today  bool     `json:"today"`
	Events []string `json:"events"`
}

// handleGrid returns the month grid.
//
// GET /api/grid?year=2023&month=5
//   - year, month default to today's
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	q := r.URL.Query()
	year := parseIntDefault(q.Get("year"), today.Year)
	month := parseIntDefault(q.Get("month"), int(today.Month))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	idx, err := s.store.MonthIndex(year, time.Month(month))
	if err != nil {
		appLog.Error("api grid: load events failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	opts := s.prefs().Options()
	g, err := calendar.BuildGrid(year, time.Month(month), opts, today, idx)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := gridResponse{
		Year:        g.Year,
		Month:       int(g.Month),
		MonthName:   calendar.MonthName(g.Month),
		SundayFirst: opts.SundayFirst,
		Columns:     make([]columnDTO, 0, len(g.Columns)),
	}
	for _, col := range g.Columns {
		dto := columnDTO{
			Weekday: col.Weekday.Name(),
			Label:   col.Label,
			Cells:   make([]*cellDTO, 0, len(col.Entries)),
		}
		for _, e := range col.Entries {
			cell, ok := e.Get()
			if !ok {
				dto.Cells = append(dto.Cells, nil)
				continue
			}
			names := cell.Events
			if names == nil {
				names = []string{}
			}
			dto.Cells = append(dto.Cells, &cellDTO{Day: cell.Day, Today: cell.Today, Events: names})
		}
		resp.Columns = append(resp.Columns, dto)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleEvents returns the events on one date.
//
// GET /api/events?date=2023-05-15
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	d := today
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := model.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		d = parsed
	}

	evs, err := s.store.On(d)
	if err != nil {
		appLog.Error("api events: load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	writeJSON(w, http.StatusOK, eventsResponse{
		Date:   d.String(),
		Today:  d == today,
		Events: events.Names(evs),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
