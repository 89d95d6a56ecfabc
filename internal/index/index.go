// Package index builds the facet index over a published record collection.
//
// Each record is addressed by its position in the collection. Main types,
// sub types and traits map to roaring bitmaps of positions, so scope and
// trait narrowing are bitmap intersections that preserve collection order.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

type subKey struct {
	mainType domain.MainType
	subType  string
}

// Index is an immutable positional index over a record collection.
type Index struct {
	size      int
	all       *roaring.Bitmap
	mainTypes map[domain.MainType]*roaring.Bitmap
	subTypes  map[subKey]*roaring.Bitmap
	traits    map[string]*roaring.Bitmap
}

// Build indexes records by position.
func Build(records []domain.Record) *Index {
	ix := &Index{
		size:      len(records),
		all:       roaring.New(),
		mainTypes: make(map[domain.MainType]*roaring.Bitmap),
		subTypes:  make(map[subKey]*roaring.Bitmap),
		traits:    make(map[string]*roaring.Bitmap),
	}
	for i, r := range records {
		pos := uint32(i)
		ix.all.Add(pos)
		addTo(ix.mainTypes, r.MainType, pos)
		if r.SubType != "" {
			addTo(ix.subTypes, subKey{mainType: r.MainType, subType: r.SubType}, pos)
		}
		for _, t := range r.Traits {
			addTo(ix.traits, t, pos)
		}
	}
	return ix
}

func addTo[K comparable](m map[K]*roaring.Bitmap, k K, pos uint32) {
	bm, ok := m[k]
	if !ok {
		bm = roaring.New()
		m[k] = bm
	}
	bm.Add(pos)
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return ix.size
}

// scope returns the positions in scope. The result must not be modified.
func (ix *Index) scope(s domain.Scope) *roaring.Bitmap {
	if s.MainType == "" {
		return ix.all
	}
	if s.IsAll() {
		if bm, ok := ix.mainTypes[s.MainType]; ok {
			return bm
		}
		return roaring.New()
	}
	if bm, ok := ix.subTypes[subKey{mainType: s.MainType, subType: s.SubType}]; ok {
		return bm
	}
	return roaring.New()
}

// Select returns the ascending positions of records in scope carrying trait.
// An empty trait selects every record in scope.
func (ix *Index) Select(s domain.Scope, trait string) []uint32 {
	bm := ix.scope(s)
	if trait != "" {
		tb, ok := ix.traits[trait]
		if !ok {
			return nil
		}
		bm = roaring.And(bm, tb)
	}
	return bm.ToArray()
}

// Count returns the number of records in scope.
func (ix *Index) Count(s domain.Scope) int {
	return int(ix.scope(s).GetCardinality())
}

// TraitsFor returns the sorted distinct traits of records in scope.
func (ix *Index) TraitsFor(s domain.Scope) []string {
	bm := ix.scope(s)
	out := []string{}
	if bm.IsEmpty() {
		return out
	}
	for t, tb := range ix.traits {
		if bm.Intersects(tb) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// SubTypesFor returns "All" followed by the sorted distinct sub types of mt.
func (ix *Index) SubTypesFor(mt domain.MainType) []string {
	subs := []string{}
	for k := range ix.subTypes {
		if k.mainType == mt {
			subs = append(subs, k.subType)
		}
	}
	sort.Strings(subs)
	return append([]string{domain.SubTypeAll}, subs...)
}

// MainTypeCounts returns the number of records per main type.
func (ix *Index) MainTypeCounts() map[domain.MainType]int {
	out := make(map[domain.MainType]int, len(ix.mainTypes))
	for mt, bm := range ix.mainTypes {
		out[mt] = int(bm.GetCardinality())
	}
	return out
}
