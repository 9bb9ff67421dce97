// Package fs provides file-based persistence for crawl output: one
// record file per anime inside a rotating snapshot generation, plus
// index, statistics and progress files.
package fs

import (
	"encoding/json"

	"aniscrape"
)

// Ensure JSONCodec implements aniscrape.Codec at compile time.
var _ aniscrape.Codec = (*JSONCodec)(nil)

// JSONCodec is the default output codec: indented JSON, matching the
// shape downstream consumers of the data directory already read.
type JSONCodec struct{}

// NewJSONCodec creates a new JSONCodec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Ext returns ".json".
func (c *JSONCodec) Ext() string {
	return ".json"
}
