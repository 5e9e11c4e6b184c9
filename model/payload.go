package model

import "github.com/spf13/cast"

// The commerce plugin's content type; references to these resolve through the product lookup
const ProductPostType = "product"

// Payload is the data the crosspost pipeline is about to send for a post or term.
// Only "id" and "meta" are looked at, everything else rides along.
type Payload map[string]any

// ID returns the source object ID, or 0 if it is missing or not numeric.
func (p Payload) ID() int64 {
	id, err := cast.ToInt64E(p["id"])
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Meta returns the metadata mapping if there is a non-empty one.
func (p Payload) Meta() (map[string]any, bool) {
	meta, ok := p["meta"].(map[string]any)
	if !ok || len(meta) == 0 {
		return nil, false
	}
	return meta, true
}
