package payload

import "fmt"

type rawCodec struct{}

// Raw returns a passthrough codec for callers that already hold bytes.
// Content-Type: application/octet-stream
func Raw() Codec { return rawCodec{} }

func (rawCodec) ContentType() string { return "application/octet-stream" }

func (rawCodec) Marshal(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("raw codec: expected []byte, got %T", v)
	}
	return append([]byte(nil), b...), nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	p, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: expected *[]byte, got %T", v)
	}
	*p = append([]byte(nil), data...)
	return nil
}
