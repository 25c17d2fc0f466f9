package detector

import (
	"fmt"

	"MisinfoScanner/internal/ports"
)

// Registry keeps detectors in registration order, which is the order the
// aggregator fans out and merges issues in.
type Registry struct {
	order     []string
	detectors map[string]ports.Detector
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{detectors: map[string]ports.Detector{}}
}

// Register adds or replaces a detector implementation.
func (r *Registry) Register(det ports.Detector) {
	if r.detectors == nil {
		r.detectors = map[string]ports.Detector{}
	}
	if _, exists := r.detectors[det.Name()]; !exists {
		r.order = append(r.order, det.Name())
	}
	r.detectors[det.Name()] = det
}

// Resolve returns a detector by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Detector, error) {
	if det, ok := r.detectors[name]; ok {
		return det, nil
	}
	return nil, fmt.Errorf("detector %s is not registered", name)
}

// All returns every detector in registration order.
func (r *Registry) All() []ports.Detector {
	out := make([]ports.Detector, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.detectors[name])
	}
	return out
}
