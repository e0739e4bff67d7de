package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// GoJSON is backed by github.com/goccy/go-json, which decodes large float
// arrays considerably faster than encoding/json.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }

// JSON is backed by encoding/json. Its output matches the standard library
// byte for byte, which keeps golden files stable.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }
