// Package server exposes exam sessions over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/report"
)

// maxBodyBytes caps request bodies; answers are short.
const maxBodyBytes = 1 << 16

// Server ties HTTP routes to an exam.Manager.
type Server struct {
	manager *exam.Manager
	loc     *i18n.Localizer
	logger  *zap.Logger
}

// New returns a server. loc is the fallback language for requests that do
// not ask for one.
func New(m *exam.Manager, loc *i18n.Localizer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{manager: m, loc: loc, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(s.loc))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/questions", s.listQuestions)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/answers", s.submitAnswer)
			r.Post("/restart", s.restartSession)
			r.Get("/report", s.getReport)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}

// Views. Reference answers are only exposed through the report.

type questionView struct {
	ID                 string  `json:"id"`
	Number             int     `json:"number"`
	Topic              string  `json:"topic"`
	TopicLabel         string  `json:"topic_label"`
	Prompt             string  `json:"prompt"`
	Kind               string  `json:"kind"`
	MinExpectedSeconds float64 `json:"min_expected_seconds"`
}

type sessionView struct {
	ID           string               `json:"id"`
	Status       exam.Status          `json:"status"`
	CurrentIndex int                  `json:"current_index"`
	Total        int                  `json:"total"`
	Score        int                  `json:"score"`
	Finished     bool                 `json:"finished"`
	StartedAt    time.Time            `json:"started_at"`
	Question     *questionView        `json:"question,omitempty"`
	Log          []exam.AttemptRecord `json:"log"`
}

type submitRequest struct {
	Answer string `json:"answer"`
}

type submitResponse struct {
	Attempt  exam.AttemptRecord `json:"attempt"`
	Hint     string             `json:"hint,omitempty"`
	Message  string             `json:"message,omitempty"`
	Finished bool               `json:"finished"`
	Session  sessionView        `json:"session"`
}

func (s *Server) question(loc *i18n.Localizer, q bank.QuestionRecord, index int) *questionView {
	return &questionView{
		ID:                 q.ID,
		Number:             index + 1,
		Topic:              string(q.Topic),
		TopicLabel:         loc.T(report.TopicLabel(q.Topic)),
		Prompt:             q.Prompt,
		Kind:               string(q.Kind),
		MinExpectedSeconds: q.MinExpectedSeconds,
	}
}

func (s *Server) session(loc *i18n.Localizer, st *exam.SessionState) sessionView {
	b := s.manager.Engine().Bank()
	v := sessionView{
		ID:           st.ID,
		Status:       st.Status(),
		CurrentIndex: st.CurrentIndex,
		Total:        b.Len(),
		Score:        st.Score,
		Finished:     st.Finished,
		StartedAt:    st.StartedAt,
		Log:          st.Log,
	}
	if v.Log == nil {
		v.Log = []exam.AttemptRecord{}
	}
	if !st.Finished {
		if q, ok := b.At(st.CurrentIndex); ok {
			v.Question = s.question(loc, q, st.CurrentIndex)
		}
	}
	return v
}

func (s *Server) localizer(r *http.Request) *i18n.Localizer {
	return i18n.FromContext(r.Context(), s.loc)
}

// Handlers

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	qs := s.manager.Engine().Bank().All()
	out := make([]*questionView, len(qs))
	for i, q := range qs {
		out[i] = s.question(loc, q, i)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.manager.Create()
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+st.ID)
	writeJSON(w, http.StatusCreated, s.session(s.localizer(r), st))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session(s.localizer(r), st))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(chi.URLParam(r, "sessionID")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondStatus(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	st, out, err := s.manager.Submit(chi.URLParam(r, "sessionID"), req.Answer)
	if err != nil {
		s.respondError(w, err)
		return
	}
	loc := s.localizer(r)
	writeJSON(w, http.StatusOK, submitResponse{
		Attempt:  out.Attempt,
		Hint:     out.Hint,
		Message:  report.Feedback(loc, out.Err),
		Finished: out.Finished,
		Session:  s.session(loc, st),
	})
}

func (s *Server) restartSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.manager.Restart(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session(s.localizer(r), st))
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	st, err := s.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	rep := report.Summarize(s.manager.Engine().Bank(), st)
	loc := s.localizer(r)

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, rep)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.WriteHTML(w, rep, loc); err != nil {
			s.logger.Error("render html report", zap.Error(err))
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteText(w, rep, loc, report.TextOptions{}); err != nil {
			s.logger.Error("render text report", zap.Error(err))
		}
	default:
		s.respondStatus(w, http.StatusBadRequest, fmt.Errorf("unknown report format %q", format))
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exam.ErrSessionNotFound):
		s.respondStatus(w, http.StatusNotFound, err)
	case errors.Is(err, exam.ErrSessionFinished):
		s.respondStatus(w, http.StatusConflict, err)
	case errors.Is(err, exam.ErrEmptyBank):
		s.respondStatus(w, http.StatusUnprocessableEntity, err)
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondStatus(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) respondStatus(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
