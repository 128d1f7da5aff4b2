package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestClient_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/doc.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(minimalPDF)
	})
	mux.HandleFunc("/agent.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		_, _ = w.Write(minimalPDF)
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>not a pdf</body></html>"))
	})
	mux.HandleFunc("/missing.pdf", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/slow.pdf", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write(minimalPDF)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(5 * time.Second)

	t.Run("Should return the body of a PDF response", func(t *testing.T) {
		body, err := client.Fetch(context.Background(), srv.URL+"/doc.pdf")
		require.NoError(t, err)
		assert.Equal(t, minimalPDF, body)
	})

	t.Run("Should send the user agent", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), srv.URL+"/agent.pdf")
		assert.NoError(t, err)
	})

	t.Run("Should reject a non-PDF body", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), srv.URL+"/page.html")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotPDF))
	})

	t.Run("Should report non-2xx status", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), srv.URL+"/missing.pdf")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("Should time out slow responses", func(t *testing.T) {
		fast := NewClient(100 * time.Millisecond)
		_, err := fast.Fetch(context.Background(), srv.URL+"/slow.pdf")
		assert.Error(t, err)
	})

	t.Run("Should honour context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Fetch(ctx, srv.URL+"/doc.pdf")
		assert.Error(t, err)
	})
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient(0)
	assert.Equal(t, DefaultTimeout, c.http.GetClient().Timeout)
}
