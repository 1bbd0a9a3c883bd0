// Package payload encodes typed values into the opaque byte payloads the
// control plane carries. The SDK itself never inspects payload bytes; these
// codecs exist so callers and workers can agree on an encoding by name.
package payload

// Codec marshals typed messages into payload bytes and back.
// Implementations should be deterministic and safe for cross-node exchange.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry constructs a registry preloaded with the codecs that need no
// initialization: JSON, Raw and Protobuf. CBOR carries an error path and is
// added explicitly via Register(CBOR()).
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]Codec)}
	r.Register(JSON())
	r.Register(Raw())
	r.Register(Proto())
	return r
}

// Register adds a codec, replacing any previous one for the same content type.
func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns a codec by content type, or nil.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }
