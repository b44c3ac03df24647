package executor

import (
	"fmt"

	"github.com/oshokin/oneshot/internal/engine"
)

// HeaderListBuilder builds an engine header list.
// Every append goes through the engine and the returned head replaces the previous one,
// so callers never hold a stale list reference.
type HeaderListBuilder struct {
	// engine performs the appends and releases.
	engine engine.Engine
	// list is the current authoritative head.
	list *engine.HeaderList
	// err is the first append failure.
	err error
	// built is set once Build was called.
	built bool
}

// NewHeaderListBuilder creates an empty builder.
func NewHeaderListBuilder(eng engine.Engine) *HeaderListBuilder {
	return &HeaderListBuilder{engine: eng}
}

// Add appends "name: value". An empty value is sent as "name;" so the header goes out empty
// instead of being removed.
func (b *HeaderListBuilder) Add(name, value string) *HeaderListBuilder {
	if b.err != nil || b.built {
		return b
	}

	line := name + ": " + value
	if value == "" {
		line = name + ";"
	}

	list := b.engine.AppendHeader(b.list, line)
	if list == nil {
		b.err = fmt.Errorf("%w: header %q rejected", ErrConfigFailed, name)

		return b
	}

	b.list = list

	return b
}

// Build returns the finished list, or nil when no header was added.
// On failure the partially built list is released and an ErrConfigFailed error is returned.
// Build may be called once; the builder owns nothing afterwards.
func (b *HeaderListBuilder) Build() (*engine.HeaderList, error) {
	if b.built {
		return nil, fmt.Errorf("%w: header list already built", ErrConfigFailed)
	}

	b.built = true
	list := b.list
	b.list = nil

	if b.err != nil {
		if list != nil {
			b.engine.ReleaseHeaderList(list)
		}

		return nil, b.err
	}

	return list, nil
}
