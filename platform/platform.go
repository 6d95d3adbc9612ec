// Package platform builds the board's drivers and registers them into the
// HAL. The host build backs every family with in-memory fakes that tests
// can drive; rp2040/rp2350 builds map onto machine peripherals.
package platform

import (
	"github.com/pkg/errors"

	"nimbus-go/config"
	"nimbus-go/hal"
	"nimbus-go/hal/adc"
	"nimbus-go/registry"
	"nimbus-go/x/logx"
	"nimbus-go/x/mathx"
)

// builder creates the driver for one configured instance, registers it and
// initialises it.
type builder func(h *hal.HAL, in config.Instance) (registry.Handle, error)

// Provide registers and initialises every instance cfg lists, family by
// family in config.Families order. The first failure aborts with the
// family and instance in the message.
func Provide(cfg *config.Config, h *hal.HAL, b *Board, log logx.Logger) error {
	log = log.Named("platform")
	for _, family := range config.Families {
		instances := cfg.Instances(family)
		if len(instances) == 0 {
			continue
		}
		build, ok := b.builder(family)
		if !ok {
			return errors.Errorf("platform: board %s has no %s driver", cfg.Board, family)
		}
		for _, in := range instances {
			hd, err := build(h, in)
			if err != nil {
				return errors.Wrapf(err, "platform: %s/%s", family, in.Name)
			}
			log.Infow("driver ready", "family", family, "name", in.Name, "handle", hd)
		}
	}
	return nil
}

// register adds d under in and runs the family's Init on the new handle.
func register[D any](add func(D, string, any) (registry.Handle, error), initFn func(registry.Handle) error, d D, in config.Instance) (registry.Handle, error) {
	hd, err := add(d, in.Name, in.Arg)
	if err != nil {
		return 0, err
	}
	if err := initFn(hd); err != nil {
		return hd, err
	}
	return hd, nil
}

const (
	defaultADCBits = 12
	defaultADCRef  = 3300
)

// millivolts converts a left-justified 16-bit sample, the form machine.ADC
// returns, to millivolts at cfg's resolution and reference.
func millivolts(raw uint16, cfg adc.Config) int32 {
	bits := uint32(cfg.ResolutionBits)
	if bits == 0 {
		bits = defaultADCBits
	}
	counts := uint32(raw) >> (16 - bits)
	return int32(mathx.Rescale(counts, 1<<bits-1, referenceMV(cfg)))
}

func referenceMV(cfg adc.Config) uint32 {
	if cfg.Reference == adc.RefExternal && cfg.ReferenceMV > 0 {
		return cfg.ReferenceMV
	}
	return defaultADCRef
}

// validADC rejects resolutions the 16-bit sample path cannot express.
func validADC(cfg adc.Config) bool {
	return cfg.ResolutionBits <= 16 && (cfg.Reference != adc.RefExternal || cfg.ReferenceMV > 0)
}
