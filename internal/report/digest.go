package report

import (
	"encoding/hex"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/nao1215/problemreg/internal/catalog"
)

// Digest returns the hex-encoded BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestFile returns the hex-encoded BLAKE2b-256 digest of the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the export configuration
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// newHash returns an unkeyed BLAKE2b-256 hash.
func newHash() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil) //nolint:errcheck // nil key cannot fail
	return h
}

// CatalogDigest returns the digest of the compact JSON document of reg.
// It changes whenever any problem, task type or tally changes.
func CatalogDigest(reg *catalog.Registry) (string, error) {
	h := newHash()
	if _, err := NewJSONWriter(h).Write(reg); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
