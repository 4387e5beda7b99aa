// Package metafile reads and writes the per-array metadata file.
//
// Every array persists exactly one metadata file at
// <array_uri>/__array_metadata, holding the bit-exact little-endian byte
// image produced by array.Metadata.Serialize with no extra framing. Writes
// go through a temporary file and an atomic rename, so readers never
// observe a torn image.
package metafile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/tilecube/tilecube/array"
	"github.com/tilecube/tilecube/errs"
)

// Filename is the name of the metadata file inside the array directory.
const Filename = "__array_metadata"

// Path returns the metadata file path for an array directory.
func Path(arrayDir string) string {
	return filepath.Join(arrayDir, Filename)
}

// Write persists the metadata under the given array directory, creating
// the directory if needed. Returns the digest of the written image.
func Write(arrayDir string, m *array.Metadata) (uint64, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: metadata", errs.ErrInvalidArgument)
	}

	data, err := m.Serialize()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(arrayDir, 0o755); err != nil {
		return 0, fmt.Errorf("create array directory: %w", err)
	}

	tmp, err := os.CreateTemp(arrayDir, Filename+".*")
	if err != nil {
		return 0, fmt.Errorf("create metadata file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return 0, fmt.Errorf("write metadata file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return 0, fmt.Errorf("close metadata file: %w", err)
	}
	if err := os.Rename(tmpName, Path(arrayDir)); err != nil {
		os.Remove(tmpName)

		return 0, fmt.Errorf("commit metadata file: %w", err)
	}

	return Digest(data), nil
}

// Read loads and deserializes the metadata of an array directory.
func Read(arrayDir string) (*array.Metadata, error) {
	data, err := os.ReadFile(Path(arrayDir))
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	return array.Deserialize(data)
}

// Digest returns the 64-bit xxHash of a metadata byte image. Storage
// managers use it as a cache key and to detect metadata changes without
// comparing images byte by byte. The digest is never persisted.
func Digest(image []byte) uint64 {
	return xxhash.Sum64(image)
}

// DigestOf serializes the metadata and returns its digest.
func DigestOf(m *array.Metadata) (uint64, error) {
	data, err := m.Serialize()
	if err != nil {
		return 0, err
	}

	return Digest(data), nil
}
