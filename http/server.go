package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/snapsearch"
	snaphtml "github.com/fwojciec/snapsearch/html"
	"github.com/golang/groupcache/lru"
)

// DefaultSessionCapacity is the number of search sessions kept for
// follow-up selections.
const DefaultSessionCapacity = 256

// SelectPath is where host pages post card selections.
const SelectPath = "/select"

// Server serves the search page and card selections.
type Server struct {
	server *http.Server

	Searcher snapsearch.Searcher
	Messages snapsearch.Messages
	Logger   *slog.Logger

	mu       sync.Mutex
	sessions *lru.Cache
}

// entry is a search session kept between requests.
type entry struct {
	session    *snapsearch.SearchSession
	controller *snapsearch.SelectionController
	view       *snaphtml.View
}

// NewServer creates a server listening on addr.
func NewServer(addr string, searcher snapsearch.Searcher, logger *slog.Logger) *Server {
	s := &Server{
		Searcher: searcher,
		Messages: snapsearch.DefaultMessages(),
		Logger:   logger,
		sessions: lru.New(DefaultSessionCapacity),
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleSearch)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST "+SelectPath, s.handleSelect)

	return Chain(mux,
		RequestID,
		Recover(s.Logger),
		AccessLog(s.Logger),
	)
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleSearch runs the search for ?q= and renders the host page. A blank
// query renders the neutral prompt page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	view := snaphtml.NewView(
		snaphtml.WithMessages(s.Messages),
		snaphtml.WithEndpoint(SelectPath),
	)

	session, controller, err := s.Searcher.Search(r.Context(), r.URL.Query().Get("q"), view)
	if err != nil && snapsearch.ErrorCode(err) != snapsearch.EEMPTYQUERY {
		s.Error(w, r, err)
		return
	}

	if session != nil {
		view.SessionID = session.ID
		s.mu.Lock()
		s.sessions.Add(session.ID, &entry{session: session, controller: controller, view: view})
		s.mu.Unlock()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := view.Render(w); err != nil {
		s.Logger.Error("render page", "request_id", RequestIDFrom(r.Context()), "err", err)
	}
}

// handleSelect activates a card of a stored session and returns the new
// detail markup. Selecting the active card again returns 204. When the
// session is no longer stored, the card's payload is rendered instead.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.Error(w, r, snapsearch.Errorf(snapsearch.EINVALID, "invalid form: %v", err))
		return
	}
	sessionID := r.PostForm.Get("session")
	cardID := r.PostForm.Get("id")
	payload := r.PostForm.Get("payload")

	if cardID == "" && payload == "" {
		s.Error(w, r, snapsearch.Errorf(snapsearch.EINVALID, "card id or payload required"))
		return
	}

	if markup, changed, ok := s.selectStored(sessionID, cardID); ok {
		if !changed {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeFragment(w, markup)
		return
	}

	detail := &snaphtml.DetailRenderer{Messages: s.Messages}
	writeFragment(w, detail.RenderPayload(payload))
}

// selectStored drives the stored session's controller. ok is false when
// the session or the card is unknown.
func (s *Server) selectStored(sessionID, cardID string) (markup string, changed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.sessions.Get(sessionID)
	if !found {
		return "", false, false
	}
	e := v.(*entry)
	if _, exists := e.session.Record(cardID); !exists {
		return "", false, false
	}

	out := e.controller.HandleInteraction(snapsearch.Interaction{CardID: cardID})
	return e.view.DetailHTML(), out.Changed, true
}

func writeFragment(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(markup))
}

// Error writes err as a plain-text response and logs internal errors.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := snapsearch.ErrorCode(err), snapsearch.ErrorMessage(err)
	if code == snapsearch.EINTERNAL {
		s.Logger.Error("http error",
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	http.Error(w, message, errorStatusCode(code))
}

var codes = map[string]int{
	snapsearch.EINVALID:     http.StatusBadRequest,
	snapsearch.EMALFORMED:   http.StatusBadRequest,
	snapsearch.EEMPTYQUERY:  http.StatusBadRequest,
	snapsearch.ENOTFOUND:    http.StatusNotFound,
	snapsearch.EUNAVAILABLE: http.StatusBadGateway,
	snapsearch.EINTERNAL:    http.StatusInternalServerError,
}

func errorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
