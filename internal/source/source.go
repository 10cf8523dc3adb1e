// Package source reads analyzed files and fingerprints their contents.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
)

var fingerprintKey = []byte("sqm-source-fingerprint-key-0001!")

// Reader loads file text through an afs service, so plain paths and any
// URL scheme registered with afs both work.
type Reader struct {
	fs afs.Service
}

// NewReader creates a Reader backed by afs.New().
func NewReader() *Reader {
	return &Reader{fs: afs.New()}
}

// Read returns the text of location. Invalid UTF-8 is replaced with U+FFFD
// instead of failing.
func (r *Reader) Read(ctx context.Context, location string) (string, error) {
	data, err := r.fs.DownloadWithURL(ctx, toURL(location))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return Decode(data), nil
}

// Decode converts data to a string, replacing undecodable bytes.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// toURL makes relative local paths absolute so afs resolves them against
// the working directory.
func toURL(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}

// Fingerprint returns the 64-bit HighwayHash of text as 16 hex digits.
func Fingerprint(text string) (string, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
