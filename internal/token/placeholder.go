package token

// Var is a single-value placeholder. It binds one value token whose kind
// matches Category; KindAny accepts every value but never a symbol.
type Var struct {
	Name     string
	Category Kind
}

func (v Var) Kind() Kind { return KindVar }

func (v Var) String() string {
	if v.Category == KindAny {
		return v.Name
	}
	return v.Name + ":" + v.Category.String()
}

func (v Var) Hash() uint64 { return hashString(KindVar, v.String()) }

func (v Var) Equal(other Token) bool {
	o, ok := other.(Var)
	return ok && o == v
}

// Accepts reports whether t may be bound to v.
func (v Var) Accepts(t Token) bool {
	if v.Category == KindAny {
		return IsValue(t)
	}
	return t.Kind() == v.Category
}

// ListCapture matches a non-empty list, matching Head against the first
// element and Tail against the list of the remaining elements. Head and Tail
// are themselves templates (placeholders or literals).
type ListCapture struct {
	Head Token
	Tail Token
}

func (c ListCapture) Kind() Kind { return KindListCapture }

func (c ListCapture) String() string {
	return "[" + c.Head.String() + " ... " + c.Tail.String() + "]"
}

func (c ListCapture) Hash() uint64 { return hashOrdered(KindListCapture, c.Head, c.Tail) }

func (c ListCapture) Equal(other Token) bool {
	o, ok := other.(ListCapture)
	return ok && c.Head.Equal(o.Head) && c.Tail.Equal(o.Tail)
}

// MapCapture matches a non-empty map by choosing one entry for Key and Value
// and matching Rest against the map without that entry. Which entry is
// chosen is resolved by backtracking.
type MapCapture struct {
	Key   Token
	Value Token
	Rest  Token
}

func (c MapCapture) Kind() Kind { return KindMapCapture }

func (c MapCapture) String() string {
	return "{" + c.Key.String() + ": " + c.Value.String() + " ... " + c.Rest.String() + "}"
}

func (c MapCapture) Hash() uint64 { return hashOrdered(KindMapCapture, c.Key, c.Value, c.Rest) }

func (c MapCapture) Equal(other Token) bool {
	o, ok := other.(MapCapture)
	return ok && c.Key.Equal(o.Key) && c.Value.Equal(o.Value) && c.Rest.Equal(o.Rest)
}

// HasPlaceholder reports whether t is or contains a placeholder.
func HasPlaceholder(t Token) bool {
	switch v := t.(type) {
	case Var, ListCapture, MapCapture:
		return true
	case List:
		for _, e := range v.elems {
			if HasPlaceholder(e) {
				return true
			}
		}
	case Map:
		for _, e := range v.entries {
			if HasPlaceholder(e.Key) || HasPlaceholder(e.Value) {
				return true
			}
		}
	}
	return false
}
