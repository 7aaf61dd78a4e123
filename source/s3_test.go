package source

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/lwj1994/imagemeta/errors"
)

// fakeObjectStore is an in-memory ObjectClient.
type fakeObjectStore struct {
	objects map[string][]byte
	err     error
}

func (f *fakeObjectStore) HeadObject(_ context.Context, bucket, key string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	b, ok := f.objects[bucket+"/"+key]
	return int64(len(b)), ok, nil
}

func (f *fakeObjectStore) GetObjectRange(_ context.Context, bucket, key string, start, end int64) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	if end > int64(len(b)) {
		end = int64(len(b))
	}
	if start >= end {
		return nil, nil
	}
	return b[start:end], nil
}

func TestS3RequiresClient(t *testing.T) {
	if _, err := NewS3(nil, "b", "k"); err == nil {
		t.Fatal("nil client must be rejected")
	}
}

func TestS3ReadRange(t *testing.T) {
	ctx := context.Background()
	store := &fakeObjectStore{objects: map[string][]byte{
		"photos/cat.png": []byte("0123456789"),
	}}
	src, err := NewS3(store, "photos", "cat.png")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}

	ok, err := src.Exists(ctx)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if n, _ := src.Length(ctx); n != 10 {
		t.Errorf("Length = %d, want 10", n)
	}
	if !src.SupportsRangeRead() {
		t.Error("object stores are always range-capable")
	}

	b, err := src.ReadRange(ctx, 3, 7)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if string(b) != "3456" {
		t.Errorf("ReadRange = %q, want 3456", b)
	}
}

func TestS3MissingKey(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]byte{}}
	src, _ := NewS3(store, "photos", "gone.png")

	ok, err := src.Exists(context.Background())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("missing key must report not-exists")
	}
}

func TestS3ClientErrorWrapped(t *testing.T) {
	cause := errors.New("throttled")
	src, _ := NewS3(&fakeObjectStore{err: cause}, "b", "k")

	_, err := src.Exists(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped cause", err)
	}
	if !apperrors.IsCategory(err, apperrors.CategorySource) {
		t.Errorf("err category: %v", err)
	}
}
