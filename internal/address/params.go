// Package address decodes sidechain destinations, including confidential
// (blinded) base58 addresses.
package address

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// Network describes the address encoding of one sidechain network.
type Network struct {
	Name string
	// BlindedPrefix is the base58 version byte of confidential addresses.
	BlindedPrefix byte
	// Blech32HRP is the prefix of confidential segwit addresses.
	Blech32HRP string
	Params     *chaincfg.Params
}

func newParams(name string, net wire.BitcoinNet, pkh, sh byte, hrp string) *chaincfg.Params {
	p := chaincfg.MainNetParams
	p.Name = name
	p.Net = net
	p.PubKeyHashAddrID = pkh
	p.ScriptHashAddrID = sh
	p.Bech32HRPSegwit = hrp
	return &p
}

var (
	ElementsRegtest = &Network{
		Name:          "elementsregtest",
		BlindedPrefix: 4,
		Blech32HRP:    "el",
		Params:        newParams("elementsregtest", 0x454c5254, 235, 75, "ert"),
	}
	LiquidV1 = &Network{
		Name:          "liquidv1",
		BlindedPrefix: 12,
		Blech32HRP:    "lq",
		Params:        newParams("liquidv1", 0x4c514431, 57, 39, "ex"),
	}
	LiquidTestnet = &Network{
		Name:          "liquidtestnet",
		BlindedPrefix: 23,
		Blech32HRP:    "tlq",
		Params:        newParams("liquidtestnet", 0x4c515454, 36, 19, "tex"),
	}

	networks = []*Network{ElementsRegtest, LiquidV1, LiquidTestnet}

	registerOnce sync.Once
	registerErr  error
)

// ErrUnknownNetwork is returned by NetworkByName for unsupported names.
var ErrUnknownNetwork = errors.New("unknown sidechain network")

// NetworkByName returns the registered network called name.
func NetworkByName(name string) (*Network, error) {
	if err := register(); err != nil {
		return nil, err
	}
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

func register() error {
	registerOnce.Do(func() {
		for _, n := range networks {
			if err := chaincfg.Register(n.Params); err != nil && !errors.Is(err, chaincfg.ErrDuplicateNet) {
				registerErr = fmt.Errorf("register %s params: %w", n.Name, err)
				return
			}
		}
	})
	return registerErr
}
