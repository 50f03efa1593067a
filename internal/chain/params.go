// Package chain holds the consensus parameters of the sidechain and the
// per-call snapshot of chain state the peg-in engine works against.
package chain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/configor"

	"github.com/goodnatureofminers/pegforge/internal/address"
	"github.com/goodnatureofminers/pegforge/internal/fedpeg"
)

// Params are the consensus parameters the engine needs.
type Params struct {
	Network *address.Network
	// PolicyAsset is the default asset of outputs that name none.
	PolicyAsset chainhash.Hash
	// PeggedAsset is the asset peg-ins mint.
	PeggedAsset chainhash.Hash
	// ParentGenesisHash identifies the parent chain.
	ParentGenesisHash chainhash.Hash
	// ParentHasPow selects proof-of-work parent headers over signed ones.
	ParentHasPow   bool
	ParentPowLimit *big.Int
	// ParentChallenge is the block signing script of a signed parent.
	ParentChallenge []byte
	// ParentPeggedAsset is the asset a signed parent chain pegs out in.
	ParentPeggedAsset chainhash.Hash
	PeginMinDepth     int64
}

// FedpegEntry is one federation epoch as written in the parameter file.
type FedpegEntry struct {
	ActivationHeight int64  `yaml:"activation_height" json:"activation_height" validate:"gte=0"`
	Script           string `yaml:"script" json:"script" validate:"required,hexadecimal"`
	// Segwit selects native P2WSH deposits instead of P2SH-wrapped ones.
	Segwit bool `yaml:"segwit" json:"segwit"`
}

// FileConfig is the on-disk form of the chain parameters.
type FileConfig struct {
	Network           string        `yaml:"network" json:"network" validate:"required,oneof=elementsregtest liquidv1 liquidtestnet"`
	PolicyAsset       string        `yaml:"policy_asset" json:"policy_asset" validate:"required,len=64,hexadecimal"`
	PeggedAsset       string        `yaml:"pegged_asset" json:"pegged_asset" validate:"required,len=64,hexadecimal"`
	ParentGenesisHash string        `yaml:"parent_genesis_hash" json:"parent_genesis_hash" validate:"required,len=64,hexadecimal"`
	ParentHasPow      bool          `yaml:"parent_has_pow" json:"parent_has_pow"`
	ParentPowLimit    string        `yaml:"parent_pow_limit" json:"parent_pow_limit" validate:"omitempty,max=64,hexadecimal"`
	ParentChallenge   string        `yaml:"parent_challenge" json:"parent_challenge" validate:"omitempty,hexadecimal"`
	ParentPeggedAsset string        `yaml:"parent_pegged_asset" json:"parent_pegged_asset" validate:"omitempty,len=64,hexadecimal"`
	PeginMinDepth     int64         `yaml:"pegin_min_depth" json:"pegin_min_depth" default:"100" validate:"gte=0"`
	FedpegGracePeriod int64         `yaml:"fedpeg_grace_period" json:"fedpeg_grace_period" validate:"gte=0"`
	Fedpegs           []FedpegEntry `yaml:"fedpegs" json:"fedpegs" validate:"required,min=1,dive"`
}

var validate = validator.New()

var (
	ErrInvalidPowLimit   = errors.New("invalid parent pow limit")
	ErrMissingParentRule = errors.New("parent_pow_limit is required with parent_has_pow, parent_challenge without it")
)

// LoadFile reads and validates a parameter file (YAML, JSON or TOML).
func LoadFile(path string) (*Params, *fedpeg.Schedule, error) {
	var cfg FileConfig
	if err := configor.New(&configor.Config{ErrorOnUnmatchedKeys: true}).Load(&cfg, path); err != nil {
		return nil, nil, fmt.Errorf("load chain params %s: %w", path, err)
	}
	return cfg.Build()
}

// Build validates the file config and converts it into Params and a
// federation schedule.
func (c FileConfig) Build() (*Params, *fedpeg.Schedule, error) {
	if err := validate.Struct(c); err != nil {
		return nil, nil, fmt.Errorf("validate chain params: %w", err)
	}

	network, err := address.NetworkByName(c.Network)
	if err != nil {
		return nil, nil, err
	}
	p := &Params{
		Network:       network,
		ParentHasPow:  c.ParentHasPow,
		PeginMinDepth: c.PeginMinDepth,
	}
	if err := parseHash(c.PolicyAsset, &p.PolicyAsset); err != nil {
		return nil, nil, fmt.Errorf("policy_asset: %w", err)
	}
	if err := parseHash(c.PeggedAsset, &p.PeggedAsset); err != nil {
		return nil, nil, fmt.Errorf("pegged_asset: %w", err)
	}
	if err := parseHash(c.ParentGenesisHash, &p.ParentGenesisHash); err != nil {
		return nil, nil, fmt.Errorf("parent_genesis_hash: %w", err)
	}
	if c.ParentPeggedAsset != "" {
		if err := parseHash(c.ParentPeggedAsset, &p.ParentPeggedAsset); err != nil {
			return nil, nil, fmt.Errorf("parent_pegged_asset: %w", err)
		}
	}
	if c.ParentHasPow && c.ParentPowLimit == "" || !c.ParentHasPow && c.ParentChallenge == "" {
		return nil, nil, ErrMissingParentRule
	}
	if c.ParentHasPow {
		limit, ok := new(big.Int).SetString(strings.TrimPrefix(c.ParentPowLimit, "0x"), 16)
		if !ok || limit.Sign() <= 0 {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPowLimit, c.ParentPowLimit)
		}
		p.ParentPowLimit = limit
	} else {
		if p.ParentChallenge, err = hex.DecodeString(c.ParentChallenge); err != nil {
			return nil, nil, fmt.Errorf("parent_challenge: %w", err)
		}
	}

	epochs := make([]fedpeg.Epoch, 0, len(c.Fedpegs))
	for i, entry := range c.Fedpegs {
		redeem, err := hex.DecodeString(entry.Script)
		if err != nil {
			return nil, nil, fmt.Errorf("fedpegs[%d].script: %w", i, err)
		}
		cfg := fedpeg.NewLegacyConfig(redeem)
		if entry.Segwit {
			cfg = fedpeg.NewSegwitConfig(redeem)
		}
		epochs = append(epochs, fedpeg.Epoch{ActivationHeight: entry.ActivationHeight, Config: cfg})
	}
	schedule, err := fedpeg.NewSchedule(c.FedpegGracePeriod, epochs...)
	if err != nil {
		return nil, nil, err
	}
	return p, schedule, nil
}

func parseHash(s string, dst *chainhash.Hash) error {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return err
	}
	*dst = *h
	return nil
}
