// Package codec moves point clouds, configurations and encodings between
// JSON and the flat float32 layout used by the encoder.
//
// Point clouds are accepted in two shapes: a list of points
// ([[x0, y0], [x1, y1]]) or an already flattened array ([x0, y0, x1, y1]).
// Both decode to the same row-major slice.
package codec

// Codec marshals values to and from JSON.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default decodes point clouds with go-json.
var Default Codec = GoJSON{}

// ByName returns the codec registered under name ("json" or "go-json").
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON{}.Name():
		return JSON{}, true
	case GoJSON{}.Name():
		return GoJSON{}, true
	default:
		return nil, false
	}
}
