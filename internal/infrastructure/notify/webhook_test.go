package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxrates-watch/internal/infrastructure/httpx"
	"fxrates-watch/internal/infrastructure/notify"

	"github.com/stretchr/testify/require"
)

func TestNotify_PostsContent(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := &notify.Webhook{Client: &httpx.Client{HTTP: srv.Client()}}
	require.NoError(t, n.Notify(context.Background(), srv.URL, "💵 **USD/BRL update**"))
	require.Equal(t, map[string]string{"content": "💵 **USD/BRL update**"}, got)
}

func TestNotify_Non2xxIsError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := &notify.Webhook{Client: &httpx.Client{HTTP: srv.Client()}}
	err := n.Notify(context.Background(), srv.URL, "hi")
	require.Error(t, err)

	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusTooManyRequests, se.Code)
	require.Equal(t, 1, calls)
}

func TestNotify_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	n := &notify.Webhook{Client: &httpx.Client{HTTP: srv.Client()}, Timeout: 50 * time.Millisecond}
	require.Error(t, n.Notify(context.Background(), srv.URL, "hi"))
}

func TestNotify_EmptyURL(t *testing.T) {
	n := &notify.Webhook{Client: &httpx.Client{}}
	require.Error(t, n.Notify(context.Background(), "", "hi"))
}
