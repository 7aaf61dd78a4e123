package source

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/lwj1994/imagemeta/errors"
)

// rangedServer serves content with full range-request support.
func rangedServer(t *testing.T, content []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "img.bin", time.Time{}, bytes.NewReader(content))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// plainServer serves the whole body and never advertises range support.
func plainServer(t *testing.T, content []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPRangedReads(t *testing.T) {
	ctx := context.Background()
	content := []byte("0123456789abcdef")
	srv := rangedServer(t, content)

	src := NewHTTP(srv.URL, HTTPOptions{Timeout: 5 * time.Second})
	ok, err := src.Exists(ctx)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if n, _ := src.Length(ctx); n != int64(len(content)) {
		t.Errorf("Length = %d, want %d", n, len(content))
	}
	if !src.SupportsRangeRead() {
		t.Fatal("range-advertising server must yield a range-capable source")
	}

	b, err := src.ReadRange(ctx, 4, 10)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if string(b) != "456789" {
		t.Errorf("ReadRange = %q, want 456789", b)
	}
}

func TestHTTPCapabilityUnknownBeforeProbe(t *testing.T) {
	src := NewHTTP("http://example.invalid/img.png", HTTPOptions{})
	if src.SupportsRangeRead() {
		t.Error("capability must not be claimed before the probe ran")
	}
}

func TestHTTPNonRangedDelegates(t *testing.T) {
	ctx := context.Background()
	content := []byte("png-bytes-here")
	srv := plainServer(t, content)

	src := NewHTTP(srv.URL, HTTPOptions{})
	if _, err := src.Exists(ctx); err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if src.SupportsRangeRead() {
		t.Fatal("server without Accept-Ranges must not be range-capable")
	}

	d, err := src.Delegate(ctx)
	if err != nil {
		t.Fatalf("Delegate: %v", err)
	}
	if !d.SupportsRangeRead() {
		t.Error("delegate must be range-capable")
	}
	b, err := d.ReadRange(ctx, 0, int64(len(content)))
	if err != nil {
		t.Fatalf("delegate ReadRange: %v", err)
	}
	if string(b) != string(content) {
		t.Errorf("delegate content = %q, want %q", b, content)
	}
}

func TestHTTPDelegateSizeCap(t *testing.T) {
	srv := plainServer(t, make([]byte, 4096))

	src := NewHTTP(srv.URL, HTTPOptions{MaxDelegateBytes: 1024})
	_, err := src.Delegate(context.Background())
	if !errors.Is(err, ErrDelegateTooLarge) {
		t.Fatalf("err = %v, want ErrDelegateTooLarge", err)
	}
}

func TestHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	src := NewHTTP(srv.URL, HTTPOptions{})
	ok, err := src.Exists(context.Background())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("404 must report not-exists, not an error")
	}
}

func TestHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	src := NewHTTP(srv.URL, HTTPOptions{})
	_, err := src.Exists(context.Background())
	if err == nil {
		t.Fatal("5xx probe must surface an error")
	}
	if !apperrors.IsCategory(err, apperrors.CategorySource) {
		t.Errorf("err category: %v", err)
	}
}

func TestHTTPUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)

	src := NewHTTP(srv.URL, HTTPOptions{UserAgent: "imagemeta-test/1"})
	if _, err := src.Exists(context.Background()); err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if got != "imagemeta-test/1" {
		t.Errorf("User-Agent = %q", got)
	}
}
