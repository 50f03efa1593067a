package script

import (
	"sync"

	"github.com/btcsuite/btcd/btcutil"
)

// KeyStore is an in-memory script provider keyed by HASH160 of the script.
type KeyStore struct {
	mu      sync.RWMutex
	scripts map[[20]byte][]byte
}

// NewKeyStore returns an empty KeyStore.
func NewKeyStore() *KeyStore {
	return &KeyStore{scripts: make(map[[20]byte][]byte)}
}

// AddScript registers script.
func (k *KeyStore) AddScript(script []byte) {
	var id [20]byte
	copy(id[:], btcutil.Hash160(script))

	stored := make([]byte, len(script))
	copy(stored, script)

	k.mu.Lock()
	k.scripts[id] = stored
	k.mu.Unlock()
}

// Script looks a script up by its HASH160.
func (k *KeyStore) Script(hash160 []byte) ([]byte, bool) {
	if len(hash160) != 20 {
		return nil, false
	}
	var id [20]byte
	copy(id[:], hash160)

	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.scripts[id]
	return s, ok
}

// Len returns the number of registered scripts.
func (k *KeyStore) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.scripts)
}
