package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"user-console/internal/user"
)

func fakeAPI(t *testing.T) (*httptest.Server, *map[int64]user.User) {
	t.Helper()
	users := map[int64]user.User{
		1: {ID: 1, Username: "alice", Email: "a@b.com", Token: "secret1"},
	}
	var nextID int64 = 2

	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		out := []user.User{}
		for _, u := range users {
			out = append(out, u)
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /user", func(w http.ResponseWriter, r *http.Request) {
		var in user.User
		json.NewDecoder(r.Body).Decode(&in)
		if in.Username == "" || in.Email == "" || in.Token == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "All fields are required"})
			return
		}
		in.ID = nextID
		nextID++
		users[in.ID] = in
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	})
	mux.HandleFunc("PUT /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "User not found"})
	})
	mux.HandleFunc("DELETE /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "User not found"})
			return
		}
		delete(users, 1)
		json.NewEncoder(w).Encode(map[string]string{"message": "User was deleted!"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &users
}

func TestListAndCreate(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := New(srv.URL)

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "alice", got[0].Username)

	created, err := c.Create(context.Background(), "bob", "b@c.com", "secret2")
	require.NoError(t, err)
	require.Equal(t, int64(2), created.ID)
	require.Equal(t, "bob", created.Username)
}

func TestNotFoundIsASentinel(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := New(srv.URL)

	_, err := c.UpdateToken(context.Background(), 999, "rotated")
	require.ErrorIs(t, err, ErrNotFound)

	err = c.Delete(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRejectionCarriesServerMessage(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := New(srv.URL)

	_, err := c.Create(context.Background(), "", "", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "All fields are required", apiErr.Message)
}

func TestDelete(t *testing.T) {
	srv, users := fakeAPI(t)
	c := New(srv.URL)

	require.NoError(t, c.Delete(context.Background(), 1))
	require.Empty(t, *users)
}
