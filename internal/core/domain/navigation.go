package domain

// Navigator is the browse state shared by interactive hosts:
// active main type, sub type, sort and filters.
//
// Selecting a main type clears the sub type and trait selection;
// sort, text and level range are preserved.
type Navigator struct {
	taxonomy *Taxonomy

	scope   Scope
	sort    SortSpec
	filters Filters
}

// NewNavigator returns a navigator in its initial state: the first declared
// main type, sub type "All", level ascending and no filters.
func NewNavigator(t *Taxonomy) *Navigator {
	return &Navigator{
		taxonomy: t,
		scope:    Scope{MainType: t.First(), SubType: SubTypeAll},
		sort:     DefaultSort,
	}
}

// Scope returns the active scope.
func (n *Navigator) Scope() Scope { return n.scope }

// Sort returns the active sort.
func (n *Navigator) Sort() SortSpec { return n.sort }

// Filters returns the active filters.
func (n *Navigator) Filters() Filters { return n.filters }

// SelectMainType switches the active main type.
func (n *Navigator) SelectMainType(mt MainType) error {
	if !n.taxonomy.IsKnown(mt) {
		return ErrUnknownMainType
	}
	n.scope = Scope{MainType: mt, SubType: SubTypeAll}
	n.filters.Trait = ""
	return nil
}

// NextMainType cycles to the following main type in declared order.
func (n *Navigator) NextMainType() {
	order := n.taxonomy.MainTypes()
	if len(order) == 0 {
		return
	}
	for i, mt := range order {
		if mt == n.scope.MainType {
			_ = n.SelectMainType(order[(i+1)%len(order)])
			return
		}
	}
	_ = n.SelectMainType(order[0])
}

// SelectSubType switches the sub type within the active main type.
// An empty sub type selects "All".
func (n *Navigator) SelectSubType(sub string) {
	if sub == "" {
		sub = SubTypeAll
	}
	n.scope.SubType = sub
}

// ToggleSort flips the direction when key is already active,
// otherwise sorts by key ascending.
func (n *Navigator) ToggleSort(key string) {
	if n.sort.Key == key {
		if n.sort.Direction == Ascending {
			n.sort.Direction = Descending
		} else {
			n.sort.Direction = Ascending
		}
		return
	}
	n.sort = SortSpec{Key: key, Direction: Ascending}
}

// SetText sets the free text filter.
func (n *Navigator) SetText(text string) { n.filters.Text = text }

// SetLevelRange sets the level bounds from user input.
func (n *Navigator) SetLevelRange(minLevel, maxLevel string) {
	n.filters.Levels = ParseLevelRange(minLevel, maxLevel)
}

// SetTrait selects a trait. Empty clears the selection.
func (n *Navigator) SetTrait(trait string) { n.filters.Trait = trait }

// SetMatchCategory toggles name-or-category text matching.
func (n *Navigator) SetMatchCategory(v bool) { n.filters.MatchCategory = v }

// Query builds the catalog query for the current state.
func (n *Navigator) Query(limit int) Query {
	return Query{
		Scope:   n.scope,
		Filters: n.filters,
		Sort:    n.sort,
		Limit:   limit,
	}
}
