// ABOUTME: Startup loading of capabilities from a static source table.
// ABOUTME: Individual build failures are skipped; an empty registry is fatal.

package capability

// Source builds one capability for registration at startup.
type Source struct {
	// Name identifies the source in logs; it should match the descriptor
	// name the build produces.
	Name string
	// Build constructs the descriptor and implementation. A Build error
	// skips this capability without failing the load.
	Build func() (Descriptor, Invoker, error)
}

// Load registers every source that builds successfully. A source whose Build
// fails (or whose name collides) is logged and skipped. Load returns
// ErrNoCapabilities only when nothing at all could be registered.
func (r *Registry) Load(sources []Source) error {
	for _, src := range sources {
		desc, impl, err := src.Build()
		if err != nil {
			r.logger.Warn("skipping capability, build failed",
				"name", src.Name,
				"error", err,
			)
			continue
		}
		if err := r.Register(desc, impl); err != nil {
			r.logger.Warn("skipping capability, registration failed",
				"name", desc.Name,
				"error", err,
			)
		}
	}

	if r.Len() == 0 {
		return ErrNoCapabilities
	}
	return nil
}
