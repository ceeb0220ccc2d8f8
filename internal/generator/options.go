package generator

import (
	"fmt"
	"runtime"

	"github.com/toyz/autoimpl/internal/annotations"
	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/models"
)

// Options configures a generation pass
type Options struct {
	Strategy    models.Strategy
	Marker      annotations.Marker
	Concurrency int // maximum targets transformed in parallel
}

// DefaultOptions returns the named strategy with the AutoImplement marker
func DefaultOptions() Options {
	return Options{
		Strategy:    models.StrategyNamed,
		Marker:      annotations.DefaultMarker(),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Validate checks the options and fills defaults for unset fields
func (o *Options) Validate() error {
	switch o.Strategy {
	case models.StrategyNamed, models.StrategyQualified, models.StrategyInherited:
	default:
		return errors.ConfigurationError("strategy", fmt.Sprintf("unsupported strategy %d", int(o.Strategy)))
	}
	if o.Marker == (annotations.Marker{}) {
		o.Marker = annotations.DefaultMarker()
	}
	if err := o.Marker.Validate(); err != nil {
		return errors.WrapConfigurationError("marker", "validate", err)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return nil
}

// fingerprint identifies the options that change generated output
func (o Options) fingerprint() string {
	return fmt.Sprintf("%s|%s|%s", o.Strategy, o.Marker.Namespace, o.Marker.SimpleName())
}
