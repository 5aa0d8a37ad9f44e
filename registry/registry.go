// Package registry implements the multiplexer: the process-wide, lazily
// initialized table mapping a fully-qualified Protocol Buffers message name
// to a vtable of parse/write/size/create operations. Generated message
// packages call Register at init time; AnyMessage and any other caller that
// only holds a dynamic type name call the dispatch helpers below.
package registry

import (
	"sync"

	"github.com/wireforge/wireforge/field"
	"github.com/wireforge/wireforge/wire"
	"github.com/wireforge/wireforge/wireerr"
)

// Entry is the immutable vtable installed for one message type. Create must
// return a fresh, unpopulated instance each call; the other six entries
// delegate straight to the instance's own Message methods once one exists.
type Entry struct {
	Create              func() field.Message
	ParseProto          func(m field.Message, pb *wire.ProtoBuffer) error
	ParseROS            func(m field.Message, rb *wire.ROSBuffer) error
	WriteProto          func(m field.Message, pb *wire.ProtoBuffer) error
	WriteROS            func(m field.Message, rb *wire.ROSBuffer) error
	SerializedProtoSize func(m field.Message) int
	SerializedROSSize   func(m field.Message) int
}

// Multiplexer is the registry itself. The zero value is ready to use
// (Register allocates the map on first registration); New returns one with
// the map already allocated. Registration is expected to happen single-threaded at process init
// (every generated message's init registers itself); the mutex exists so
// that a program choosing to register dynamically at runtime doesn't race
// with concurrent lookups, per spec's stated "add a lock if you need one."
type Multiplexer struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty Multiplexer. Most programs want the shared Global
// instance instead, matching the "one process-wide registry" design.
func New() *Multiplexer {
	return &Multiplexer{entries: make(map[string]Entry)}
}

// Global is the process-wide multiplexer every generated init() registers
// into, and the default target for AnyMessage resolution.
var Global = New()

// Register installs name's vtable. Idempotent by last-writer-wins, per
// spec — in practice every name registers exactly once.
func (m *Multiplexer) Register(name string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]Entry)
	}
	m.entries[name] = e
}

// Get looks up name's vtable.
func (m *Multiplexer) Get(name string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	return e, ok
}

// Create builds a fresh instance of name via its registered constructor,
// satisfying field.Multiplexer so AnyMessage can resolve types dynamically.
func (m *Multiplexer) Create(name string) (field.Message, bool) {
	e, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	return e.Create(), true
}

func (m *Multiplexer) ParseProto(name string, msg field.Message, pb *wire.ProtoBuffer) error {
	e, ok := m.Get(name)
	if !ok {
		return wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.ParseProto(msg, pb)
}

func (m *Multiplexer) ParseROS(name string, msg field.Message, rb *wire.ROSBuffer) error {
	e, ok := m.Get(name)
	if !ok {
		return wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.ParseROS(msg, rb)
}

func (m *Multiplexer) WriteProto(name string, msg field.Message, pb *wire.ProtoBuffer) error {
	e, ok := m.Get(name)
	if !ok {
		return wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.WriteProto(msg, pb)
}

func (m *Multiplexer) WriteROS(name string, msg field.Message, rb *wire.ROSBuffer) error {
	e, ok := m.Get(name)
	if !ok {
		return wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.WriteROS(msg, rb)
}

func (m *Multiplexer) SerializedProtoSize(name string, msg field.Message) (int, error) {
	e, ok := m.Get(name)
	if !ok {
		return 0, wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.SerializedProtoSize(msg), nil
}

func (m *Multiplexer) SerializedROSSize(name string, msg field.Message) (int, error) {
	e, ok := m.Get(name)
	if !ok {
		return 0, wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
	}
	return e.SerializedROSSize(msg), nil
}

// RegisterMessage is the shape generated code actually calls: given a
// zero-value constructor, it derives every vtable entry from the Message
// interface itself, so generated registrars stay a one-liner.
func RegisterMessage[M field.Message](mux *Multiplexer, name string, newMessage func() M) {
	mux.Register(name, Entry{
		Create: func() field.Message { return newMessage() },
		ParseProto: func(m field.Message, pb *wire.ProtoBuffer) error {
			return m.ParseProto(pb)
		},
		ParseROS: func(m field.Message, rb *wire.ROSBuffer) error {
			return m.ParseROS(rb)
		},
		WriteProto: func(m field.Message, pb *wire.ProtoBuffer) error {
			return m.WriteProto(pb)
		},
		WriteROS: func(m field.Message, rb *wire.ROSBuffer) error {
			return m.WriteROS(rb)
		},
		SerializedProtoSize: func(m field.Message) int { return m.SerializedProtoSize() },
		SerializedROSSize:   func(m field.Message) int { return m.SerializedROSSize() },
	})
}
