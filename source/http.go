package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lwj1994/imagemeta/core"
	apperrors "github.com/lwj1994/imagemeta/errors"
)

// HTTPOptions configures an HTTP source.
type HTTPOptions struct {
	// Client is used for all requests.  When nil a client with Timeout is
	// constructed.
	Client  *http.Client
	Timeout time.Duration
	// UserAgent is sent on every request when non-empty.
	UserAgent string
	// MaxDelegateBytes caps how large a body Delegate may buffer.
	// 0 = no limit.
	MaxDelegateBytes int64
}

// HTTP serves an image over HTTP(S).  Capability is negotiated once with a
// HEAD request: servers advertising "Accept-Ranges: bytes" are read with
// ranged GETs; anything else reports SupportsRangeRead false, and the
// resolver falls back to Delegate, which buffers the whole body in memory.
type HTTP struct {
	url       string
	client    *http.Client
	userAgent string
	maxBytes  int64

	probed bool
	exists bool
	length int64
	ranged bool
}

// NewHTTP creates an HTTP source for url.
func NewHTTP(url string, opts HTTPOptions) *HTTP {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTP{
		url:       url,
		client:    client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxDelegateBytes,
	}
}

func (s *HTTP) Exists(ctx context.Context) (bool, error) {
	if err := s.probe(ctx); err != nil {
		return false, err
	}
	return s.exists, nil
}

func (s *HTTP) Length(ctx context.Context) (int64, error) {
	if err := s.probe(ctx); err != nil {
		return 0, err
	}
	return s.length, nil
}

// SupportsRangeRead reports the capability negotiated by the last probe.  It
// is false until Exists or Length has run, which matches the resolver's call
// order: existence is always checked first.
func (s *HTTP) SupportsRangeRead() bool { return s.probed && s.ranged }

func (s *HTTP) ReadRange(ctx context.Context, start, end int64) ([]byte, error) {
	if end <= start || start < 0 {
		return nil, nil
	}
	req, err := s.newRequest(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end-1))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySource, "http.read", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		return nil, apperrors.New(apperrors.CategorySource, "http.read",
			fmt.Errorf("range request returned status %d", resp.StatusCode))
	}
	b, err := drain(ctx, resp.Body, end-start+1)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySource, "http.read", err)
	}
	return b, nil
}

// Delegate downloads the whole body into an in-memory Bytes source.
func (s *HTTP) Delegate(ctx context.Context) (core.ByteSource, error) {
	req, err := s.newRequest(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySource, "http.delegate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CategorySource, "http.delegate",
			fmt.Errorf("download returned status %d", resp.StatusCode))
	}
	b, err := drain(ctx, resp.Body, s.maxBytes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySource, "http.delegate", err)
	}
	return NewBytes(b), nil
}

func (s *HTTP) Release(context.Context) error { return nil }

// probe negotiates existence, length, and range capability with one HEAD
// request; the outcome is cached for the life of the source.
func (s *HTTP) probe(ctx context.Context) error {
	if s.probed {
		return nil
	}
	req, err := s.newRequest(ctx, http.MethodHead)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CategorySource, "http.probe", err)
	}
	defer resp.Body.Close()

	s.probed = true
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		s.exists = false
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		s.exists = true
		s.length = resp.ContentLength
		s.ranged = resp.Header.Get("Accept-Ranges") == "bytes" && resp.ContentLength > 0
	default:
		s.probed = false
		return apperrors.New(apperrors.CategorySource, "http.probe",
			fmt.Errorf("head request returned status %d", resp.StatusCode))
	}
	return nil
}

func (s *HTTP) newRequest(ctx context.Context, method string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategorySource, "http.request", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	return req, nil
}
