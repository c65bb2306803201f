package wave

import "time"

// Registry owns the live transients. Order is irrelevant: contributions are
// summed.
type Registry struct {
	items []Transient
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(t Transient) {
	r.items = append(r.items, t)
}

func (r *Registry) AddRipple(rp Ripple) {
	r.Add(RippleTransient(rp))
}

func (r *Registry) AddSpring(s SpringPoint) {
	r.Add(SpringTransient(s))
}

// Purge drops every expired transient in place and returns how many went.
func (r *Registry) Purge(now time.Time) int {
	kept := r.items[:0]
	for _, t := range r.items {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	removed := len(r.items) - len(kept)
	// zero the tail so dropped records are not reachable through the backing array
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = Transient{}
	}
	r.items = kept
	return removed
}

// Sum adds up the influence of every still-active transient at x.
func (r *Registry) Sum(p Params, x float64, now time.Time) float64 {
	var total float64
	for _, t := range r.items {
		if off, ok := t.Influence(p, x, now); ok {
			total += off
		}
	}
	return total
}

func (r *Registry) Len() int {
	return len(r.items)
}

// Counts splits Len by kind.
func (r *Registry) Counts() (ripples, springs int) {
	for _, t := range r.items {
		switch t.Kind {
		case KindRipple:
			ripples++
		case KindSpring:
			springs++
		}
	}
	return ripples, springs
}

// Each calls fn for every held transient.
func (r *Registry) Each(fn func(Transient)) {
	for _, t := range r.items {
		fn(t)
	}
}
