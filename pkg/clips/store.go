// Package clips resolves speech clip identifiers to decodable audio streams.
//
// Clip identifiers follow an 8.3-style convention: at most eight characters,
// mapped to an asset named "<id>.wav" case-insensitively. The valid set of
// identifiers is fixed at provisioning time; whether an asset actually exists
// is only discovered when it is opened.
package clips

import (
	"errors"
	"io"
)

// MaxIDLen is the maximum identifier length (8.3 naming convention).
const MaxIDLen = 8

// Ext is the fixed audio asset extension.
const Ext = ".wav"

// Sentinel errors for clip store conditions.
var (
	// ErrNotFound means no asset exists for the identifier. Per-clip and
	// recoverable: the caller skips the clip and moves on.
	ErrNotFound = errors.New("clips: clip not found")

	// ErrUnavailable means the store itself cannot be reached. Fatal at
	// startup: with no clips there is nothing to announce.
	ErrUnavailable = errors.New("clips: store unavailable")

	// ErrBadID means the identifier violates the naming convention.
	ErrBadID = errors.New("clips: invalid clip identifier")
)

// ID names a single pre-recorded speech clip.
type ID string

// Valid reports whether the identifier fits the naming convention.
func (id ID) Valid() bool {
	return len(id) > 0 && len(id) <= MaxIDLen
}

// Store opens named clips for decoding.
//
// The returned stream must support seeking: the WAV decoder walks the RIFF
// chunk list before reaching PCM data.
type Store interface {
	// Open resolves id to its audio stream. Returns ErrNotFound if the
	// asset does not exist and ErrBadID if the identifier is malformed.
	Open(id ID) (io.ReadSeekCloser, error)

	// Ping checks that the store is reachable at all.
	Ping() error
}
