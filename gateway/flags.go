package gateway

import "context"

// FeatureFlags answers whether handling of an event's logical name is
// enabled. A disabled flag makes the gateway ignore the event entirely - no
// derivation side effects, no engine calls - as a normal, non-error outcome.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
}

// NewStaticFlags creates feature flags backed by a fixed map. Names not
// present in the map are disabled.
func NewStaticFlags(flags map[string]bool) *StaticFlags {
	enabled := make(map[string]bool, len(flags))
	for name, value := range flags {
		enabled[name] = value
	}
	return &StaticFlags{enabled: enabled}
}

type StaticFlags struct {
	enabled map[string]bool
}

func (f *StaticFlags) IsEnabled(_ context.Context, name string) (bool, error) {
	return f.enabled[name], nil
}
