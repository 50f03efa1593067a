package elements

import (
	"bytes"
	"errors"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/pegforge/internal/merkle"
)

// dynafedVersionBit marks headers carrying dynamic federation parameters.
const dynafedVersionBit = uint32(1) << 31

// ErrDynafedHeader is returned for headers with dynamic federation parameters.
var ErrDynafedHeader = errors.New("dynamic federation headers are not supported")

// BlockHeader is a signed-block header. The solution is excluded from the hash.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Height     uint32
	Challenge  []byte
	Solution   []byte
}

// BlockHash returns the hash committed to by the block signers.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = h.serialize(&buf, false)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize writes the header including its solution.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return h.serialize(w, true)
}

func (h *BlockHeader) serialize(w io.Writer, withSolution bool) error {
	if err := writeUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := writeUint32(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeUint32(w, h.Height); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, 0, h.Challenge); err != nil {
		return err
	}
	if !withSolution {
		return nil
	}
	return wire.WriteVarBytes(w, 0, h.Solution)
}

// Deserialize reads a header including its solution.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	if version&dynafedVersionBit != 0 {
		return ErrDynafedHeader
	}
	h.Version = int32(version)
	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	if h.Timestamp, err = readUint32(r); err != nil {
		return err
	}
	if h.Height, err = readUint32(r); err != nil {
		return err
	}
	if h.Challenge, err = readBytes(r, "challenge"); err != nil {
		return err
	}
	h.Solution, err = readBytes(r, "solution")
	return err
}

// MerkleBlock is a signed header plus a partial merkle tree of its transactions.
type MerkleBlock struct {
	Header BlockHeader
	Tree   merkle.PartialTree
}

// Serialize writes the merkle block.
func (m *MerkleBlock) Serialize(w io.Writer) error {
	if err := m.Header.Serialize(w); err != nil {
		return err
	}
	return m.Tree.Serialize(w)
}

// Deserialize reads a merkle block.
func (m *MerkleBlock) Deserialize(r io.Reader) error {
	if err := m.Header.Deserialize(r); err != nil {
		return err
	}
	return m.Tree.Deserialize(r)
}

// Bytes serializes the merkle block.
func (m *MerkleBlock) Bytes() []byte {
	var buf bytes.Buffer
	_ = m.Serialize(&buf)
	return buf.Bytes()
}
