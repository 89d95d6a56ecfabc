package domain

// RawDocument represents opaque bytes fetched by a document source.
// It is the source's output before parsing.
type RawDocument struct {
	// ID is the manifest identifier.
	ID string

	// Content is the raw bytes.
	Content []byte
}

// Document is a parsed data document: an arbitrarily deep JSON object.
type Document struct {
	// ID is the manifest identifier.
	ID string

	// Root is the top-level object.
	Root map[string]any
}

// RawItem is an item object harvested from a document, before a record
// is built from it.
type RawItem map[string]any

// Clone returns a shallow copy of the item.
func (r RawItem) Clone() RawItem {
	out := make(RawItem, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Candidate is a classified raw item found by the extractor.
type Candidate struct {
	Item           RawItem
	Classification Classification
	Origin         Origin
}
