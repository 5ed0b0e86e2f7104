package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-console/internal/user"
	"user-console/internal/webui/apiclient"
	"user-console/internal/webui/session"
	"user-console/internal/webui/view"
)

// consoleFixture wires the real handler against a fake user API that counts
// every request it receives.
type consoleFixture struct {
	engine   *gin.Engine
	sessions *session.MemoryStore
	hits     *atomic.Int64
	sid      string
}

func newConsoleFixture(t *testing.T, apiHandler http.Handler) *consoleFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hits := &atomic.Int64{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		apiHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	sessions := session.NewMemory(time.Minute)
	h, err := NewHandler(apiclient.New(api.URL), sessions, zap.NewNop())
	require.NoError(t, err)

	return &consoleFixture{engine: NewEngine(zap.NewNop(), h), sessions: sessions, hits: hits}
}

func staticUsersAPI(users []user.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(users)
	})
}

func (f *consoleFixture) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if f.sid != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: f.sid})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			f.sid = ck.Value
		}
	}
	return w
}

func (f *consoleFixture) state(t *testing.T) view.State {
	t.Helper()
	st, err := f.sessions.Load(context.Background(), f.sid)
	require.NoError(t, err)
	return st
}

func TestIndexFetchesOncePerSession(t *testing.T) {
	f := newConsoleFixture(t, staticUsersAPI([]user.User{
		{ID: 1, Username: "alice", Email: "a@b.com", Token: "secret1"},
	}))

	w := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice")
	require.EqualValues(t, 1, f.hits.Load())

	// subsequent paints render the mirror, no refetch
	w = f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, f.hits.Load())
}

func TestLoadFailureRendersDistinctNotice(t *testing.T) {
	f := newConsoleFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Internal Server Error"})
	}))

	w := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Could not load users")
	require.NotContains(t, w.Body.String(), "No users yet")
	require.True(t, f.state(t).LoadFailed)
}

func TestEmptyListRendersEmptyState(t *testing.T) {
	f := newConsoleFixture(t, staticUsersAPI([]user.User{}))

	w := f.do(t, http.MethodGet, "/", nil)
	require.Contains(t, w.Body.String(), "No users yet")
	require.NotContains(t, w.Body.String(), "Could not load users")
}

func TestInvalidSubmitSendsNoRequest(t *testing.T) {
	f := newConsoleFixture(t, staticUsersAPI([]user.User{}))

	f.do(t, http.MethodGet, "/", nil)
	f.do(t, http.MethodPost, "/users/new", nil)
	fetches := f.hits.Load()

	w := f.do(t, http.MethodPost, "/users/submit", url.Values{
		"username": {"carol"},
		"email":    {"not-an-email"},
		"token":    {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, fetches, f.hits.Load(), "invalid submit must not hit the API")

	st := f.state(t)
	require.Equal(t, view.ModalCreate, st.Modal)
	require.Equal(t, "Please enter a valid email address.", st.Errors.Email)

	// short token likewise
	f.do(t, http.MethodPost, "/users/submit", url.Values{
		"username": {"carol"},
		"email":    {"c@d.com"},
		"token":    {"abc"},
	})
	require.Equal(t, fetches, f.hits.Load())
	require.Equal(t, "Token should be at least 6 characters long.", f.state(t).Errors.Token)
}

func TestCreateAppendsOptimistically(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]user.User{})
	})
	mux.HandleFunc("POST /user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user.User{ID: 7, Username: "carol", Email: "c@d.com", Token: "secret1"})
	})
	f := newConsoleFixture(t, mux)

	f.do(t, http.MethodGet, "/", nil)
	f.do(t, http.MethodPost, "/users/new", nil)
	f.do(t, http.MethodPost, "/users/submit", url.Values{
		"username": {"carol"},
		"email":    {"c@d.com"},
		"token":    {"secret1"},
	})

	st := f.state(t)
	require.Equal(t, view.ModalNone, st.Modal)
	require.Len(t, st.Users, 1)
	require.Equal(t, int64(7), st.Users[0].ID, "mirror takes the server's user, id included")
}

func TestDeleteFailureKeepsModalAndExplains(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]user.User{{ID: 1, Username: "alice", Email: "a@b.com", Token: "secret1"}})
	})
	mux.HandleFunc("DELETE /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "User not found"})
	})
	f := newConsoleFixture(t, mux)

	f.do(t, http.MethodGet, "/", nil)
	f.do(t, http.MethodPost, "/users/1/delete", nil)
	f.do(t, http.MethodPost, "/users/delete/confirm", nil)

	st := f.state(t)
	require.Equal(t, view.ModalDelete, st.Modal, "failed confirm stays open")
	require.NotEmpty(t, st.Flash)
	require.Len(t, st.Users, 1, "mirror untouched on failure")
}
