package core

// Registry is an ordered, name-keyed collection of FormatDecoders.
//
// Registration order is iteration order, and re-registering an existing name
// replaces the decoder's behavior while preserving its original position:
// given registry order [A, B, C], re-registering B yields [A, B', C].
//
// The registry carries no synchronization on purpose.  Concurrent Register
// and Decoders calls are not linearized; callers needing strict consistency
// must register all custom decoders at startup, before the first resolution.
type Registry struct {
	order  []string
	byName map[string]FormatDecoder
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]FormatDecoder)}
}

// Register inserts d under its name.  If the name is already present the
// decoder value is overwritten in place without altering its position among
// the other entries.
func (r *Registry) Register(d FormatDecoder) {
	name := d.Name()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = d
}

// Lookup returns the decoder registered under name.
func (r *Registry) Lookup(name string) (FormatDecoder, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Decoders returns the decoders in registration order.  Each call produces a
// fresh snapshot, so every resolution run traverses the registry state as of
// its start.
func (r *Registry) Decoders() []FormatDecoder {
	out := make([]FormatDecoder, 0, len(r.order))
	for _, name := range r.order {
		if d, ok := r.byName[name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered decoders.
func (r *Registry) Len() int { return len(r.order) }
