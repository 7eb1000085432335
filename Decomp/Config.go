package Decomp

import (
	"math/bits"

	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"github.com/g-m-twostay/go-centroid/Cover"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// Config of a Decomposer. Start with DefaultConfig.
type Config struct {
	// CoverSize is the minimum number of nodes of a cover element, the root's excepted.
	// 0 means floor(log2(n)). Must be in [0, Cover.MaxCoverSize].
	CoverSize int

	// Threshold is the component size at or below which the standard decomposer takes
	// over. 0 means floor(log2(n))^3; negative disables the fallback.
	Threshold int

	// Logger gets debug events of the run. nil discards them.
	Logger *zerolog.Logger
}

// DefaultConfig picks both parameters from the size of the tree.
func DefaultConfig() Config {
	return Config{}
}

// Validate the parameters without looking at a tree.
func (c Config) Validate() error {
	if c.CoverSize < 0 || c.CoverSize > Cover.MaxCoverSize {
		return Go_Centroid.Errorf(Go_Centroid.BadConfig, "CoverSize must be in [0, %d], got %d", Cover.MaxCoverSize, c.CoverSize)
	}
	return nil
}

func (c Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return c.Logger
}

// threshold resolves Threshold for n nodes. ok is false when the fallback is off.
func threshold[S constraints.Unsigned](c Config, n S) (B S, ok bool) {
	switch {
	case c.Threshold < 0:
		return 0, false
	case c.Threshold > 0:
		if uint64(c.Threshold) > uint64(^S(0)) {
			return ^S(0), true
		}
		return S(c.Threshold), true
	}
	l := uint64(0)
	if n > 1 {
		l = uint64(bits.Len64(uint64(n)) - 1)
	}
	if l3 := l * l * l; l3 < uint64(^S(0)) {
		return S(l3), true
	}
	return ^S(0), true
}
