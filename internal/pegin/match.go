package pegin

import (
	"bytes"

	"github.com/goodnatureofminers/pegforge/internal/fedpeg"
	"github.com/goodnatureofminers/pegforge/internal/parent"
)

// MatchOutput returns the index of the first output of tx paying to the
// deposit address committing to claimScript, trying fedpegs in order. It
// returns tx.NumOutputs() when nothing matches.
func MatchOutput(tx parent.Tx, claimScript []byte, fedpegs []fedpeg.Config) int {
	n := tx.NumOutputs()
	for _, cfg := range fedpegs {
		dest, err := cfg.Destination(claimScript)
		if err != nil {
			continue
		}
		for i := 0; i < n; i++ {
			if bytes.Equal(tx.PkScript(i), dest) {
				return i
			}
		}
	}
	return n
}

// MatchClaimScripts tries each distinct claim script in order and returns the
// first matching output together with its claim script. The index is
// tx.NumOutputs() and the script nil when none matches.
func MatchClaimScripts(tx parent.Tx, claimScripts [][]byte, fedpegs []fedpeg.Config) (int, []byte) {
	n := tx.NumOutputs()
	seen := make(map[string]struct{}, len(claimScripts))
	for _, claim := range claimScripts {
		if _, ok := seen[string(claim)]; ok {
			continue
		}
		seen[string(claim)] = struct{}{}

		if idx := MatchOutput(tx, claim, fedpegs); idx != n {
			return idx, claim
		}
	}
	return n, nil
}

// distinct counts the distinct scripts in claimScripts.
func distinct(claimScripts [][]byte) int {
	seen := make(map[string]struct{}, len(claimScripts))
	for _, c := range claimScripts {
		seen[string(c)] = struct{}{}
	}
	return len(seen)
}
