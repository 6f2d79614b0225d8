package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Digest accumulates a SHA-256 over content written to it. It implements
// io.Writer so it can sit behind an io.TeeReader on the read path of a
// streaming copy.
type Digest struct {
	h hash.Hash
}

// New creates an empty Digest.
func New() *Digest {
	return &Digest{h: sha256.New()}
}

// Write feeds content into the digest. The returned error is always nil.
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum returns the lowercase hex SHA-256 of everything written so far.
// It does not reset the digest, so callers may keep writing and sum again.
func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}
