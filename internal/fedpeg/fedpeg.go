// Package fedpeg resolves the federation scripts a peg-in may pay to.
package fedpeg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/pegforge/internal/script"
)

// Config is one federation peg configuration.
type Config struct {
	// MainchainScript is the script parent-chain deposits pay to. Only its
	// form (P2SH or not) affects matching.
	MainchainScript []byte
	// RedeemScript is the federation script claim scripts are committed into.
	RedeemScript []byte
}

// NewLegacyConfig returns the P2SH-wrapped configuration for a federation script.
func NewLegacyConfig(redeemScript []byte) Config {
	return Config{
		MainchainScript: script.PayToScriptHash(script.PayToWitnessScriptHash(redeemScript)),
		RedeemScript:    clone(redeemScript),
	}
}

// NewSegwitConfig returns the native P2WSH configuration for a federation script.
func NewSegwitConfig(redeemScript []byte) Config {
	return Config{
		MainchainScript: script.PayToWitnessScriptHash(redeemScript),
		RedeemScript:    clone(redeemScript),
	}
}

// IsP2SH reports whether deposits to this configuration are P2SH wrapped.
func (c Config) IsP2SH() bool {
	return script.IsPayToScriptHash(c.MainchainScript)
}

// Destination returns the parent-chain output script a deposit committing to
// claimScript must pay.
func (c Config) Destination(claimScript []byte) ([]byte, error) {
	contract, err := script.CalculateContract(c.RedeemScript, claimScript)
	if err != nil {
		return nil, fmt.Errorf("calculate contract: %w", err)
	}
	dest := script.PayToWitnessScriptHash(contract)
	if c.IsP2SH() {
		dest = script.PayToScriptHash(dest)
	}
	return dest, nil
}

func (c Config) clone() Config {
	return Config{MainchainScript: clone(c.MainchainScript), RedeemScript: clone(c.RedeemScript)}
}

// Resolver yields the federation configurations valid at a height.
type Resolver interface {
	// Configurations returns the valid configurations at tip, or at tip+1
	// when nextBlock is set, oldest first.
	Configurations(tip int64, nextBlock bool) []Config
}

// Epoch is a configuration together with the height it activates at.
type Epoch struct {
	ActivationHeight int64
	Config           Config
}

var (
	ErrNoEpochs          = errors.New("at least one federation epoch is required")
	ErrDuplicateEpoch    = errors.New("federation epochs share an activation height")
	ErrNegativeGrace     = errors.New("grace period cannot be negative")
	ErrEmptyRedeemScript = errors.New("federation redeem script is empty")
)

// Schedule is a Resolver over a fixed list of epochs. A superseded epoch
// stays valid for GracePeriod blocks after its successor activates.
type Schedule struct {
	epochs      []Epoch
	gracePeriod int64
}

// NewSchedule validates and sorts epochs.
func NewSchedule(gracePeriod int64, epochs ...Epoch) (*Schedule, error) {
	if len(epochs) == 0 {
		return nil, ErrNoEpochs
	}
	if gracePeriod < 0 {
		return nil, ErrNegativeGrace
	}

	sorted := make([]Epoch, len(epochs))
	for i, e := range epochs {
		if len(e.Config.RedeemScript) == 0 {
			return nil, fmt.Errorf("epoch %d: %w", i, ErrEmptyRedeemScript)
		}
		sorted[i] = Epoch{ActivationHeight: e.ActivationHeight, Config: e.Config.clone()}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActivationHeight < sorted[j].ActivationHeight
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ActivationHeight == sorted[i-1].ActivationHeight {
			return nil, fmt.Errorf("height %d: %w", sorted[i].ActivationHeight, ErrDuplicateEpoch)
		}
	}

	return &Schedule{epochs: sorted, gracePeriod: gracePeriod}, nil
}

func (s *Schedule) Configurations(tip int64, nextBlock bool) []Config {
	height := tip
	if nextBlock {
		height++
	}

	var out []Config
	for i, e := range s.epochs {
		if e.ActivationHeight > height {
			break
		}
		if i+1 < len(s.epochs) {
			next := s.epochs[i+1].ActivationHeight
			if next <= height && height >= next+s.gracePeriod {
				continue
			}
		}
		out = append(out, e.Config.clone())
	}
	return out
}

// Static is a Resolver that always returns the same configurations.
type Static []Config

func (s Static) Configurations(int64, bool) []Config {
	out := make([]Config, len(s))
	for i, c := range s {
		out[i] = c.clone()
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
