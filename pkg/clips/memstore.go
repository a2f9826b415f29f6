package clips

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// MemStore holds encoded clips in memory. Used in tests and on hosts where
// the clip set is baked into the binary.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[ID][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[ID][]byte)}
}

// Put stores an encoded clip under id, replacing any previous content.
func (s *MemStore) Put(id ID, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = data
}

// PutPCM encodes mono 16-bit PCM samples as WAV and stores them under id.
func (s *MemStore) PutPCM(id ID, samples []int16, sampleRate int) error {
	data, err := EncodeWAV(samples, sampleRate)
	if err != nil {
		return err
	}
	s.Put(id, data)
	return nil
}

// Ping always succeeds: memory is never unavailable.
func (s *MemStore) Ping() error {
	return nil
}

// Open returns a reader over the stored clip bytes.
func (s *MemStore) Open(id ID) (io.ReadSeekCloser, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadID, string(id))
	}
	s.mu.RLock()
	data, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, string(id))
	}
	return nopCloser{bytes.NewReader(data)}, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// EncodeWAV encodes mono 16-bit PCM samples into an in-memory WAV blob.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	w := &seekBuffer{}
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("clips: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("clips: close wav encoder: %w", err)
	}
	return w.data, nil
}

// seekBuffer is a minimal in-memory io.WriteSeeker. The wav encoder needs
// seeking to patch chunk sizes into the header after writing the data.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("clips: bad seek whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("clips: seek before start")
	}
	b.pos = int(pos)
	return pos, nil
}
