package stream

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/octio/precision"
)

var ErrStreamNotFound = errors.New("invalid stream number")

const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

// Std returns a stream over one of the process's standard files.
func Std(id int) *Stream {
	switch id {
	case Stdin:
		return New("stdin", readOnly{os.Stdin}, Mode{Read: true}, precision.Native)
	case Stdout:
		return New("stdout", writeOnly{nopCloser{os.Stdout}}, Mode{Write: true}, precision.Native)
	case Stderr:
		return New("stderr", writeOnly{nopCloser{os.Stderr}}, Mode{Write: true}, precision.Native)
	}
	return nil
}

type nopCloser struct{ *os.File }

func (nopCloser) Close() error { return nil }

// Registry maps stream ids to open streams. Ids 0, 1 and 2 are the standard
// streams; the ids handed out by Insert start at 3 and are never reused.
type Registry struct {
	mu      sync.Mutex
	streams map[int]*Stream
	next    int
}

// NewRegistry returns a registry holding the three standard streams.
func NewRegistry() *Registry {
	return &Registry{
		streams: map[int]*Stream{
			Stdin:  Std(Stdin),
			Stdout: Std(Stdout),
			Stderr: Std(Stderr),
		},
		next: 3,
	}
}

// Insert registers s and returns its id.
func (r *Registry) Insert(s *Stream) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.streams[id] = s
	log.Debugf("registered stream %d (%s)", id, s.describe())
	return id
}

// Lookup returns the stream registered under id.
func (r *Registry) Lookup(id int) (*Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streams[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrStreamNotFound, id)
	}
	return s, nil
}

// Remove closes the stream registered under id and forgets it.
func (r *Registry) Remove(id int) error {
	if id == Stdin || id == Stdout || id == Stderr {
		return fmt.Errorf("cannot close standard stream %d", id)
	}
	r.mu.Lock()
	s, ok := r.streams[id]
	delete(r.streams, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrStreamNotFound, id)
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close stream %d: %w", id, err)
	}
	return nil
}

// IDs returns the registered ids in increasing order.
func (r *Registry) IDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.streams))
	for id := range r.streams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CloseAll closes every stream except the standard ones and returns the
// first error encountered.
func (r *Registry) CloseAll() error {
	var first error
	for _, id := range r.IDs() {
		if id <= Stderr {
			continue
		}
		if err := r.Remove(id); err != nil && first == nil {
			first = err
		}
	}
	return first
}
