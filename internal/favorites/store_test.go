package favorites

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorindo-sonhos/storefront-client/internal/api"
	"github.com/colorindo-sonhos/storefront-client/internal/credential"
	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
)

type fakeClient struct {
	mu        sync.Mutex
	listing   []product.Product
	addErr    error
	removeErr error
	clearErr  error
	addGate   chan struct{} // when set, Add blocks until closed
	addCalls  int
}

func (f *fakeClient) ListFavorites(context.Context) ([]product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listing, nil
}

func (f *fakeClient) AddFavorite(context.Context, string) error {
	f.mu.Lock()
	f.addCalls++
	gate := f.addGate
	err := f.addErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeClient) RemoveFavorite(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeErr
}

func (f *fakeClient) ClearFavorites(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clearErr
}

func authed(t *testing.T) *credential.Memory {
	t.Helper()
	creds := &credential.Memory{}
	require.NoError(t, creds.Set("tok"))
	return creds
}

func TestToggle_AddAndRemove(t *testing.T) {
	s := New(&fakeClient{}, authed(t))
	ctx := context.Background()

	action, err := s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, action)
	assert.True(t, s.IsFavorite("p1"))

	action, err = s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, action)
	assert.False(t, s.IsFavorite("p1"))
}

func TestToggle_Unauthenticated(t *testing.T) {
	client := &fakeClient{}
	s := New(client, &credential.Memory{})

	_, err := s.Toggle(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Zero(t, client.addCalls, "unauthenticated toggles never reach the network")
	assert.False(t, s.IsFavorite("p1"))
}

func TestToggle_RollbackOnFailure(t *testing.T) {
	apiErr := &api.Error{Message: "backend down", StatusCode: http.StatusInternalServerError}
	client := &fakeClient{addErr: apiErr}
	s := New(client, authed(t))
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Toggle(context.Background(), "p1")

	var gotErr *api.Error
	require.ErrorAs(t, err, &gotErr)
	assert.Equal(t, "backend down", gotErr.Message)
	assert.Empty(t, s.IDs(), "member set ends up exactly as before the failed attempt")
}

func TestToggle_RollbackPreservesOtherMembers(t *testing.T) {
	client := &fakeClient{
		listing:   []product.Product{{ID: "a"}, {ID: "b"}},
		removeErr: &api.Error{Message: "nope", StatusCode: http.StatusBadGateway},
	}
	s := New(client, authed(t))
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Toggle(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestToggle_SecondToggleIgnoredWhilePending(t *testing.T) {
	gate := make(chan struct{})
	client := &fakeClient{addGate: gate}
	s := New(client, authed(t))
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Toggle(ctx, "p1")
		firstDone <- err
	}()

	// Wait until the first toggle is blocked inside the network call.
	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.addCalls == 1
	}, time.Second, time.Millisecond)

	_, err := s.Toggle(ctx, "p1")
	assert.ErrorIs(t, err, ErrTogglePending)
	assert.True(t, s.IsFavorite("p1"), "optimistic state of the first toggle is untouched")

	close(gate)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, client.addCalls, "the ignored toggle fired no request")
	assert.True(t, s.IsFavorite("p1"))

	// A toggle on a different product is not serialized against p1.
	client.mu.Lock()
	client.addGate = nil
	client.mu.Unlock()
	action, err := s.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, action)
}

func TestToggle_SettledToggleAllowsNext(t *testing.T) {
	s := New(&fakeClient{}, authed(t))
	ctx := context.Background()

	_, err := s.Toggle(ctx, "p1")
	require.NoError(t, err)
	_, err = s.Toggle(ctx, "p1")
	require.NoError(t, err, "serialization releases once the first toggle settles")
}

func TestLoad(t *testing.T) {
	client := &fakeClient{listing: []product.Product{{ID: "b"}, {ID: "a"}}}
	s := New(client, authed(t))

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.IsFavorite("a"))
	assert.False(t, s.IsFavorite("z"))
}

func TestClear_WaitsForConfirmation(t *testing.T) {
	client := &fakeClient{
		listing:  []product.Product{{ID: "a"}},
		clearErr: &api.Error{Message: "down", StatusCode: http.StatusInternalServerError},
	}
	s := New(client, authed(t))
	require.NoError(t, s.Load(context.Background()))

	require.Error(t, s.Clear(context.Background()))
	assert.Equal(t, []string{"a"}, s.IDs(), "local set is untouched until the server confirms")

	client.mu.Lock()
	client.clearErr = nil
	client.mu.Unlock()
	require.NoError(t, s.Clear(context.Background()))
	assert.Empty(t, s.IDs())
}

func TestClear_Unauthenticated(t *testing.T) {
	s := New(&fakeClient{}, &credential.Memory{})
	assert.ErrorIs(t, s.Clear(context.Background()), ErrAuthRequired)
}
