// Package hmm holds the data model of an SVM-HMM sequence learner: tag
// interning, sparse token features, and the patterns and labels that make up
// training examples.
package hmm

import (
	"errors"
	"fmt"
	"sync"
)

// TagID is the dense identifier assigned to a tag by a Registry.
type TagID uint32

// FirstTagID is the ID given to the first tag registered.
const FirstTagID TagID = 0

var (
	// ErrInvalidArgument is wrapped by every error caused by a bad argument.
	ErrInvalidArgument = errors.New("hmm: invalid argument")
	// ErrUnknownTagID is returned when a TagID was never assigned.
	ErrUnknownTagID = fmt.Errorf("%w: unknown tag id", ErrInvalidArgument)
)

// Registry maps between tag strings and TagIDs.
// Once assigned, an ID is never reused or reassigned.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	toID  map[string]TagID
	toTag []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		toID: make(map[string]TagID),
	}
}

// RestoreRegistry rebuilds a registry from tags listed in ID order.
func RestoreRegistry(tags []string) (*Registry, error) {
	r := NewRegistry()
	for i, tag := range tags {
		if _, ok := r.toID[tag]; ok {
			return nil, fmt.Errorf("%w: duplicate tag %q at position %d", ErrInvalidArgument, tag, i)
		}
		r.toID[tag] = FirstTagID + TagID(i)
		r.toTag = append(r.toTag, tag)
	}
	return r, nil
}

// Register returns the ID of tag, assigning the next unused one if the tag
// has not been seen before.
func (r *Registry) Register(tag string) TagID {
	r.mu.RLock()
	id, ok := r.toID[tag]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.toID[tag]; ok {
		return id
	}
	id = FirstTagID + TagID(len(r.toTag))
	r.toID[tag] = id
	r.toTag = append(r.toTag, tag)
	return id
}

// Lookup returns the ID of tag without registering it.
func (r *Registry) Lookup(tag string) (TagID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.toID[tag]
	return id, ok
}

// NumTags returns the number of distinct tags registered so far.
func (r *Registry) NumTags() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint32(len(r.toTag))
}

// TagByID returns the tag registered under id.
// The error wraps ErrInvalidArgument if id was never assigned.
func (r *Registry) TagByID(id TagID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := int(id) - int(FirstTagID)
	if i < 0 || i >= len(r.toTag) {
		return "", fmt.Errorf("%w: %d", ErrUnknownTagID, id)
	}
	return r.toTag[i], nil
}

// MustTag is like TagByID but panics on an unknown id.
func (r *Registry) MustTag(id TagID) string {
	tag, err := r.TagByID(id)
	if err != nil {
		panic(err)
	}
	return tag
}

// Tags returns a copy of all registered tags in ID order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.toTag))
	copy(out, r.toTag)
	return out
}
