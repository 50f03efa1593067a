// Package merkle implements partial merkle trees, the compact inclusion proofs
// carried by merkle blocks.
package merkle

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// MaxTransactions bounds the leaf count of a tree: the maximum block weight
// divided by the minimum transaction weight.
const MaxTransactions = 4_000_000 / 240

var (
	ErrNoTransactions   = errors.New("partial merkle tree has no transactions")
	ErrTooManyTxs       = errors.New("partial merkle tree has too many transactions")
	ErrTooManyHashes    = errors.New("partial merkle tree has more hashes than transactions")
	ErrNotEnoughBits    = errors.New("partial merkle tree has fewer flag bits than hashes")
	ErrOverflow         = errors.New("partial merkle tree traversal ran out of bits or hashes")
	ErrDuplicateSubtree = errors.New("partial merkle tree has identical left and right subtrees")
	ErrUnusedBits       = errors.New("partial merkle tree has unused flag bits")
	ErrUnusedHashes     = errors.New("partial merkle tree has unused hashes")
)

// PartialTree is a pruned merkle tree proving inclusion of the matched leaves.
type PartialTree struct {
	Transactions uint32
	Hashes       []chainhash.Hash
	// Flags holds the traversal bits packed little-endian within each byte.
	Flags []byte
}

// New builds the partial tree for txids, keeping the leaves where match is set.
func New(txids []chainhash.Hash, match []bool) *PartialTree {
	b := &builder{txids: txids, match: match}
	height := uint32(0)
	for b.width(height) > 1 {
		height++
	}
	b.traverse(height, 0)

	flags := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			flags[i/8] |= 1 << (i % 8)
		}
	}
	return &PartialTree{
		Transactions: uint32(len(txids)),
		Hashes:       b.hashes,
		Flags:        flags,
	}
}

// Root computes the merkle root of txids.
func Root(txids []chainhash.Hash) chainhash.Hash {
	if len(txids) == 0 {
		return chainhash.Hash{}
	}
	b := &builder{txids: txids}
	height := uint32(0)
	for b.width(height) > 1 {
		height++
	}
	return b.hash(height, 0)
}

// ExtractMatches walks the tree, returning the computed root together with the
// matched leaf hashes and their positions.
func (t *PartialTree) ExtractMatches() (chainhash.Hash, []chainhash.Hash, []uint32, error) {
	if t.Transactions == 0 {
		return chainhash.Hash{}, nil, nil, ErrNoTransactions
	}
	if t.Transactions > MaxTransactions {
		return chainhash.Hash{}, nil, nil, ErrTooManyTxs
	}
	if uint32(len(t.Hashes)) > t.Transactions {
		return chainhash.Hash{}, nil, nil, ErrTooManyHashes
	}
	bitCount := len(t.Flags) * 8
	if bitCount < len(t.Hashes) {
		return chainhash.Hash{}, nil, nil, ErrNotEnoughBits
	}

	x := &extractor{tree: t, bitCount: bitCount}
	height := uint32(0)
	for x.width(height) > 1 {
		height++
	}
	root := x.traverse(height, 0)
	if x.err != nil {
		return chainhash.Hash{}, nil, nil, x.err
	}
	if (x.bitsUsed+7)/8 != (bitCount+7)/8 {
		return chainhash.Hash{}, nil, nil, ErrUnusedBits
	}
	if x.hashesUsed != len(t.Hashes) {
		return chainhash.Hash{}, nil, nil, ErrUnusedHashes
	}
	return root, x.matches, x.indexes, nil
}

// Serialize writes the tree in wire format.
func (t *PartialTree) Serialize(w io.Writer) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], t.Transactions)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(t.Hashes))); err != nil {
		return err
	}
	for i := range t.Hashes {
		if _, err := w.Write(t.Hashes[i][:]); err != nil {
			return err
		}
	}
	return wire.WriteVarBytes(w, 0, t.Flags)
}

// Deserialize reads a tree in wire format.
func (t *PartialTree) Deserialize(r io.Reader) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	t.Transactions = binary.LittleEndian.Uint32(buf[:])

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > MaxTransactions {
		return fmt.Errorf("too many merkle hashes: %d", count)
	}
	t.Hashes = make([]chainhash.Hash, count)
	for i := range t.Hashes {
		if _, err := io.ReadFull(r, t.Hashes[i][:]); err != nil {
			return err
		}
	}

	t.Flags, err = wire.ReadVarBytes(r, 0, (MaxTransactions+7)/8*2, "merkle flags")
	return err
}

func treeWidth(transactions, height uint32) uint32 {
	return (transactions + (1 << height) - 1) >> height
}

func parentHash(left, right chainhash.Hash) chainhash.Hash {
	var buf [2 * chainhash.HashSize]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

type builder struct {
	txids  []chainhash.Hash
	match  []bool
	bits   []bool
	hashes []chainhash.Hash
}

func (b *builder) width(height uint32) uint32 {
	return treeWidth(uint32(len(b.txids)), height)
}

func (b *builder) hash(height, pos uint32) chainhash.Hash {
	if height == 0 {
		return b.txids[pos]
	}
	left := b.hash(height-1, pos*2)
	right := left
	if pos*2+1 < b.width(height-1) {
		right = b.hash(height-1, pos*2+1)
	}
	return parentHash(left, right)
}

func (b *builder) traverse(height, pos uint32) {
	parentOfMatch := false
	for p := pos << height; p < (pos+1)<<height && p < uint32(len(b.txids)); p++ {
		if int(p) < len(b.match) && b.match[p] {
			parentOfMatch = true
		}
	}
	b.bits = append(b.bits, parentOfMatch)
	if height == 0 || !parentOfMatch {
		b.hashes = append(b.hashes, b.hash(height, pos))
		return
	}
	b.traverse(height-1, pos*2)
	if pos*2+1 < b.width(height-1) {
		b.traverse(height-1, pos*2+1)
	}
}

type extractor struct {
	tree       *PartialTree
	bitCount   int
	bitsUsed   int
	hashesUsed int
	matches    []chainhash.Hash
	indexes    []uint32
	err        error
}

func (x *extractor) width(height uint32) uint32 {
	return treeWidth(x.tree.Transactions, height)
}

func (x *extractor) bit(i int) bool {
	return x.tree.Flags[i/8]&(1<<(i%8)) != 0
}

func (x *extractor) traverse(height, pos uint32) chainhash.Hash {
	if x.err != nil {
		return chainhash.Hash{}
	}
	if x.bitsUsed >= x.bitCount {
		x.err = ErrOverflow
		return chainhash.Hash{}
	}
	parentOfMatch := x.bit(x.bitsUsed)
	x.bitsUsed++

	if height == 0 || !parentOfMatch {
		if x.hashesUsed >= len(x.tree.Hashes) {
			x.err = ErrOverflow
			return chainhash.Hash{}
		}
		h := x.tree.Hashes[x.hashesUsed]
		x.hashesUsed++
		if height == 0 && parentOfMatch {
			x.matches = append(x.matches, h)
			x.indexes = append(x.indexes, pos)
		}
		return h
	}

	left := x.traverse(height-1, pos*2)
	right := left
	if pos*2+1 < x.width(height-1) {
		right = x.traverse(height-1, pos*2+1)
		if x.err == nil && right == left {
			x.err = ErrDuplicateSubtree
		}
	}
	return parentHash(left, right)
}
