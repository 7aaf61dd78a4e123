package source

import (
	"bytes"
	"context"
	"testing"
)

func TestBytesRanges(t *testing.T) {
	ctx := context.Background()
	src := NewBytes([]byte("0123456789"))

	ok, err := src.Exists(ctx)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if n, _ := src.Length(ctx); n != 10 {
		t.Errorf("Length = %d, want 10", n)
	}
	if !src.SupportsRangeRead() {
		t.Error("in-memory source must be range-capable")
	}

	tests := []struct {
		start, end int64
		want       string
	}{
		{0, 4, "0123"},
		{8, 20, "89"}, // clamped to the buffer
		{4, 4, ""},
		{-1, 4, ""},
		{12, 14, ""},
	}
	for _, tt := range tests {
		b, err := src.ReadRange(ctx, tt.start, tt.end)
		if err != nil {
			t.Fatalf("ReadRange(%d,%d): %v", tt.start, tt.end, err)
		}
		if string(b) != tt.want {
			t.Errorf("ReadRange(%d,%d) = %q, want %q", tt.start, tt.end, b, tt.want)
		}
	}
}

func TestBytesEmptyDoesNotExist(t *testing.T) {
	ok, err := NewBytes(nil).Exists(context.Background())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("empty buffer must report not-exists")
	}
}

func TestBytesDelegateIsSelf(t *testing.T) {
	src := NewBytes([]byte("x"))
	d, err := src.Delegate(context.Background())
	if err != nil {
		t.Fatalf("Delegate: %v", err)
	}
	if d != src {
		t.Error("range-capable source should delegate to itself")
	}
	if err := src.Release(context.Background()); err != nil {
		t.Errorf("Release: %v", err)
	}
}

func TestDrainRespectsLimit(t *testing.T) {
	ctx := context.Background()

	b, err := drain(ctx, bytes.NewReader([]byte("hello")), 10)
	if err != nil {
		t.Fatalf("drain under limit: %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("drain = %q", b)
	}

	if _, err := drain(ctx, bytes.NewReader(make([]byte, 100)), 10); err != ErrDelegateTooLarge {
		t.Errorf("over limit err = %v, want ErrDelegateTooLarge", err)
	}

	// max <= 0 disables the cap.
	if _, err := drain(ctx, bytes.NewReader(make([]byte, 100)), 0); err != nil {
		t.Errorf("unlimited drain: %v", err)
	}
}

func TestDrainCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := drain(ctx, bytes.NewReader([]byte("data")), 0); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
