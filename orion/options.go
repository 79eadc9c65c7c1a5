package orion

import (
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/runqueue"
	"github.com/prometheus/client_golang/prometheus"
)

// VRPolicy decides whether VR mode is entered right after a window became
// ready. It is only consulted if the surface is ready.
type VRPolicy func(paused, inVR bool) bool

// DefaultVRPolicy enters VR mode unless the app is paused or already in VR.
func DefaultVRPolicy(paused, inVR bool) bool {
	return !paused && !inVR
}

type AppOptions struct {
	// Host delivers lifecycle commands. Required.
	Host glimpse.Host

	// World renders the frames. Required.
	World World

	// Delegate connects to the VR hardware. Required.
	Delegate device.Delegate

	// Surface creates the surface context on the first window. Required.
	Surface SurfaceFactory

	// AutoEnterVR defaults to DefaultVRPolicy.
	AutoEnterVR VRPolicy

	// Queue receives work from foreign goroutines. A new queue
	// is created if not set.
	Queue *runqueue.Queue

	// Registerer receives the metrics of the app. Defaults to a new registry.
	Registerer prometheus.Registerer

	// Clock measures frame times. Defaults to the real clock.
	Clock clockwork.Clock
}

func (opts *AppOptions) withDefaults() (AppOptions, error) {
	o := *opts

	switch {
	case o.Host == nil:
		return o, errors.New("Host must not be nil")
	case o.World == nil:
		return o, errors.New("World must not be nil")
	case o.Delegate == nil:
		return o, errors.New("Delegate must not be nil")
	case o.Surface == nil:
		return o, errors.New("Surface must not be nil")
	}

	if o.AutoEnterVR == nil {
		o.AutoEnterVR = DefaultVRPolicy
	}

	if o.Queue == nil {
		o.Queue = runqueue.New()
	}

	if o.Registerer == nil {
		o.Registerer = prometheus.NewRegistry()
	}

	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}

	return o, nil
}
