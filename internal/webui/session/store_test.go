package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-console/internal/user"
	"user-console/internal/webui/view"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemory(time.Minute)
	ctx := context.Background()

	_, err := s.Load(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	st := view.Reduce(view.Initial(), view.UsersLoaded{Users: []user.User{
		{ID: 1, Username: "alice", Email: "a@b.com", Token: "secret1"},
	}})
	require.NoError(t, s.Save(ctx, "sid-1", st))

	got, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, st, got)

	require.NoError(t, s.Delete(ctx, "sid-1"))
	_, err = s.Load(ctx, "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid-1", view.Initial()))
	time.Sleep(25 * time.Millisecond)

	_, err := s.Load(ctx, "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}
