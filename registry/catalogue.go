package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-admin-toolbox/message"
)

// Builder collects protocol catalogues at startup. Seal produces the
// read-only Catalogue used by dispatchers.
type Builder struct {
	mu        sync.Mutex
	entries   map[string]Entry
	protocols map[string][]string
	sealed    bool
}

func NewBuilder() *Builder {
	return &Builder{
		entries:   map[string]Entry{},
		protocols: map[string][]string{},
	}
}

// Register adds every entry of a protocol. The batch is applied atomically:
// a duplicate anywhere leaves the builder unchanged.
func (b *Builder) Register(protocolURI string, entries ...Entry) error {
	if b == nil {
		return registryBadInput("registry: builder is nil", nil)
	}
	protocolURI = strings.TrimSuffix(strings.TrimSpace(protocolURI), "/")
	if protocolURI == "" {
		return registryBadInput("registry: protocol uri is required", nil)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return sealedError()
	}

	batch := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		msgType := strings.TrimSpace(entry.msgType)
		if msgType == "" {
			return registryBadInput("registry: message type is required", map[string]any{"protocol": protocolURI})
		}
		if message.ProtocolOf(msgType) != protocolURI {
			return registryBadInput(
				fmt.Sprintf("registry: message type %q is outside protocol %q", msgType, protocolURI),
				map[string]any{"protocol": protocolURI, "message_type": msgType},
			)
		}
		if entry.handler == nil {
			return registryBadInput(
				fmt.Sprintf("registry: message type %q has no handler", msgType),
				map[string]any{"protocol": protocolURI, "message_type": msgType},
			)
		}
		if _, exists := b.entries[msgType]; exists {
			return duplicateTypeError(msgType, protocolURI)
		}
		if _, exists := batch[msgType]; exists {
			return duplicateTypeError(msgType, protocolURI)
		}
		batch[msgType] = entry
	}

	for msgType, entry := range batch {
		b.entries[msgType] = entry
		b.protocols[protocolURI] = append(b.protocols[protocolURI], msgType)
	}
	return nil
}

// Seal freezes the builder and returns the catalogue.
func (b *Builder) Seal() *Catalogue {
	if b == nil {
		return &Catalogue{entries: map[string]Entry{}}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sealed = true

	entries := make(map[string]Entry, len(b.entries))
	for msgType, entry := range b.entries {
		entries[msgType] = entry
	}
	protocols := make([]string, 0, len(b.protocols))
	for uri := range b.protocols {
		protocols = append(protocols, uri)
	}
	sort.Strings(protocols)
	return &Catalogue{entries: entries, protocols: protocols}
}

// Catalogue is an immutable message type table. It is safe for concurrent
// use without locking.
type Catalogue struct {
	entries   map[string]Entry
	protocols []string
}

func (c *Catalogue) Resolve(msgType string) (Entry, error) {
	msgType = strings.TrimSpace(msgType)
	if c == nil {
		return Entry{}, unknownTypeError(msgType)
	}
	entry, ok := c.entries[msgType]
	if !ok {
		return Entry{}, unknownTypeError(msgType)
	}
	return entry, nil
}

func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *Catalogue) Protocols() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.protocols...)
}

// Descriptors lists every registered type sorted by type identifier.
func (c *Catalogue) Descriptors() []Descriptor {
	if c == nil {
		return nil
	}
	out := make([]Descriptor, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.Describe())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
