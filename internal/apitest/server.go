// Package apitest runs an in-process fake of the account-manager backend for
// tests. It implements the endpoints the client consumes, keeps its state in
// memory, counts calls per route and can be told to fail a route with a
// given status.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/account-keeper/internal/utils"
	"github.com/MKhiriev/account-keeper/models"
	"github.com/go-chi/chi/v5"
)

// Route keys accepted by [Server.Calls] and [Server.Fail].
const (
	RouteStatus    = "GET /api/auth/status"
	RouteLogin     = "POST /api/auth/login"
	RouteLogout    = "POST /api/auth/logout"
	RouteList      = "GET /api/accounts"
	RouteCreate    = "POST /api/accounts"
	RouteDelete    = "DELETE /api/accounts/{id}"
	RouteSyncAll   = "POST /api/accounts/sync"
	RouteSyncOne   = "POST /api/accounts/{id}/sync"
	sessionCookie  = "session"
	traceIDHeader  = "X-Trace-ID"
	unauthorizedMs = "Authentifizierung erforderlich"
)

type failure struct {
	status int
	body   string
}

// Server is the fake backend. The zero value is not usable; call [New].
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	password string
	sessions map[string]struct{}
	accounts []models.Account
	nextID   int
	calls    map[string]int
	failures map[string]failure
	traceIDs []string
	ids      *utils.UUIDGenerator
	now      func() time.Time
}

// New starts a fake backend accepting password at the login endpoint. It is
// closed automatically when tb finishes.
func New(tb testing.TB, password string) *Server {
	tb.Helper()

	s := &Server{
		password: password,
		sessions: make(map[string]struct{}),
		nextID:   1,
		calls:    make(map[string]int),
		failures: make(map[string]failure),
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	tb.Cleanup(s.Close)

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withTraceID)

	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/status", s.handle(RouteStatus, false, s.status))
		r.Post("/auth/login", s.handle(RouteLogin, false, s.login))
		r.Post("/auth/logout", s.handle(RouteLogout, false, s.logout))

		r.Get("/accounts", s.handle(RouteList, true, s.list))
		r.Post("/accounts", s.handle(RouteCreate, true, s.create))
		r.Post("/accounts/sync", s.handle(RouteSyncAll, true, s.syncAll))
		r.Delete("/accounts/{id}", s.handle(RouteDelete, true, s.remove))
		r.Post("/accounts/{id}/sync", s.handle(RouteSyncOne, true, s.syncOne))
	})

	return r
}

// handle counts the call, applies a programmed failure, enforces the session
// cookie on protected routes and finally runs h with the state lock held.
func (s *Server) handle(route string, protected bool, h func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls[route]++

		if f, ok := s.failures[route]; ok {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}

		if protected && !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, models.Nack(unauthorizedMs))
			return
		}

		h(w, r)
	}
}

// withTraceID echoes the request trace id, issuing one when the caller sent
// none, and records it for [Server.TraceIDs].
func (s *Server) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = s.ids.Generate()
		} else {
			s.mu.Lock()
			s.traceIDs = append(s.traceIDs, traceID)
			s.mu.Unlock()
		}

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return false
	}
	_, ok := s.sessions[c.Value]
	return ok
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	ok := true
	writeJSON(w, http.StatusOK, models.AuthStatusResponse{
		APIResponse:   models.APIResponse{Success: &ok},
		Authenticated: s.authorized(r),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.Nack("Passwort ist erforderlich"))
		return
	}
	if req.Password != s.password {
		writeJSON(w, http.StatusUnauthorized, models.Nack("Falsches Passwort"))
		return
	}

	id := s.ids.Generate()
	s.sessions[id] = struct{}{}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, models.Ack("Login erfolgreich"))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		delete(s.sessions, c.Value)
	}
	writeJSON(w, http.StatusOK, models.Ack("Logout erfolgreich"))
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	ok := true
	writeJSON(w, http.StatusOK, models.AccountsResponse{
		APIResponse: models.APIResponse{Success: &ok},
		Accounts:    append([]models.Account{}, s.accounts...),
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft models.AccountDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.Email == "" || draft.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.Nack("Email and password are required"))
		return
	}
	for _, acc := range s.accounts {
		if acc.Email == draft.Email {
			writeJSON(w, http.StatusBadRequest, models.Nack("Account with this email already exists"))
			return
		}
	}

	s.accounts = append(s.accounts, models.Account{
		ID:        models.AccountID(strconv.Itoa(s.nextID)),
		Email:     draft.Email,
		Status:    models.AccountInactive,
		CreatedAt: models.NewTimestamp(s.now().UTC()),
	})
	s.nextID++
	writeJSON(w, http.StatusOK, models.Ack("Account added successfully"))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := models.AccountID(chi.URLParam(r, "id"))
	for i, acc := range s.accounts {
		if acc.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			writeJSON(w, http.StatusOK, models.Ack("Account deleted successfully"))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Nack("Account not found"))
}

// syncAll marks every account active. The real backend does this
// asynchronously; here the effect is visible to the next list call.
func (s *Server) syncAll(w http.ResponseWriter, _ *http.Request) {
	now := models.NewTimestamp(s.now().UTC())
	for i := range s.accounts {
		s.accounts[i].Status = models.AccountActive
		s.accounts[i].LastLogin = now
	}
	writeJSON(w, http.StatusOK, models.Ack("Synchronization started for "+strconv.Itoa(len(s.accounts))+" accounts"))
}

func (s *Server) syncOne(w http.ResponseWriter, r *http.Request) {
	id := models.AccountID(chi.URLParam(r, "id"))
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].Status = models.AccountActive
			s.accounts[i].LastLogin = models.NewTimestamp(s.now().UTC())
			writeJSON(w, http.StatusOK, models.Ack("Account synchronization started"))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Nack("Account not found"))
}

// Calls returns how many requests route has received.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Fail makes route answer with status and the raw body until [Server.Recover]
// is called.
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

// Recover removes all programmed failures.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// SetAccounts replaces the stored collection.
func (s *Server) SetAccounts(accounts ...models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]models.Account{}, accounts...)
	for _, acc := range accounts {
		if n, err := strconv.Atoi(acc.ID.String()); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
}

// Accounts returns a copy of the stored collection.
func (s *Server) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Account{}, s.accounts...)
}

// ExpireSessions invalidates every issued session cookie, as a server
// restart or session timeout would.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]struct{})
}

// TraceIDs returns the trace ids sent by clients, in arrival order.
func (s *Server) TraceIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.traceIDs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	_, _ = utils.WriteJSON(w, v, status)
}
