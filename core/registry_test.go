package core

import (
	"context"
	"testing"
)

// namedDecoder is a registry test double; its probe and parse are never
// called here.
type namedDecoder struct {
	name string
	tag  string
}

func (d *namedDecoder) Name() string                            { return d.name }
func (d *namedDecoder) Valid(context.Context, ByteSource) bool  { return false }
func (d *namedDecoder) Parse(context.Context, ByteSource) Metadata { return None }

func names(decoders []FormatDecoder) []string {
	out := make([]string, len(decoders))
	for i, d := range decoders {
		out[i] = d.Name()
	}
	return out
}

func TestRegistryIterationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedDecoder{name: "a"})
	r.Register(&namedDecoder{name: "b"})
	r.Register(&namedDecoder{name: "c"})

	got := names(r.Decoders())
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestRegistryOverridePreservesPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedDecoder{name: "a"})
	r.Register(&namedDecoder{name: "b", tag: "original"})
	r.Register(&namedDecoder{name: "c"})

	r.Register(&namedDecoder{name: "b", tag: "replacement"})

	got := names(r.Decoders())
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after override: got %v, want %v", got, want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len after override = %d, want 3", r.Len())
	}

	d, ok := r.Lookup("b")
	if !ok {
		t.Fatal("Lookup(b) not found")
	}
	if d.(*namedDecoder).tag != "replacement" {
		t.Errorf("Lookup(b) tag = %q, want replacement", d.(*namedDecoder).tag)
	}
}

func TestRegistrySnapshotIsFresh(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedDecoder{name: "a"})

	snap := r.Decoders()
	r.Register(&namedDecoder{name: "b"})

	if len(snap) != 1 {
		t.Errorf("earlier snapshot grew: %v", names(snap))
	}
	if len(r.Decoders()) != 2 {
		t.Errorf("new traversal missing registration: %v", names(r.Decoders()))
	}
}
