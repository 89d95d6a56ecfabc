// Package normalisers provides implementations of the ItemNormaliser
// interface. A normaliser unifies divergent raw item fields before the
// extractor builds records from them.
package normalisers
