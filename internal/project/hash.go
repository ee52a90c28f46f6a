package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// String returns the lowercase hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Combine строит ключ: H( content || schema ), чтобы смена формата кеша
// делала старые записи недостижимыми.
func Combine(content Digest, schema uint16) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], schema)
	_, _ = h.Write(buf[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
