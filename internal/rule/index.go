package rule

import (
	"sort"

	"github.com/gnolang/tcalc/internal/token"
)

/*
Template Index

Rules are screened with an arena-based trie keyed by the shape of their
templates. Every template token becomes one path segment:

  - a literal symbol becomes "s:<name>" and only matches that symbol;
  - a placeholder, literal number, text, boolean, list or map becomes
    "k:<kind>" and matches any token of that kind;
  - an untyped placeholder becomes "*" and matches any value.

A rule is stored at the node where its template path ends. Looking up a
position walks the sequence from there, following every segment the token
at hand satisfies, and collects the rules at each node it reaches. The
result is a superset of the rules that can match; Apply makes the final
decision.

Nodes live in a single slice and refer to children by index.
*/

// NodeIndex represents the index of a trie node.
type NodeIndex int

const anySegment = "*"

// arenaNode is the internal representation of a trie node stored in the arena.
type arenaNode struct {
	// children maps a shape segment to the child node.
	children map[string]NodeIndex
	// rules holds the ids of rules whose template ends at this node.
	rules []int
}

// Index maps template shapes to rule ids.
type Index struct {
	nodes []arenaNode
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	idx := &Index{nodes: make([]arenaNode, 0, 64)}
	idx.newNode() // root
	return idx
}

func (x *Index) newNode() NodeIndex {
	i := NodeIndex(len(x.nodes))
	x.nodes = append(x.nodes, arenaNode{children: make(map[string]NodeIndex)})
	return i
}

// Insert records that rule id has the given template.
func (x *Index) Insert(tmpl token.Sequence, id int) {
	current := NodeIndex(0)
	for i := 0; i < tmpl.Len(); i++ {
		seg := templateSegment(tmpl.At(i))
		child, exists := x.nodes[current].children[seg]
		if !exists {
			child = x.newNode()
			x.nodes[current].children[seg] = child
		}
		current = child
	}
	x.nodes[current].rules = append(x.nodes[current].rules, id)
}

// Lookup returns, in ascending order, the ids of rules whose template shape
// fits seq at pos.
func (x *Index) Lookup(seq token.Sequence, pos int) []int {
	var ids []int
	frontier := []NodeIndex{0}
	ids = append(ids, x.nodes[0].rules...)
	for i := pos; i < seq.Len() && len(frontier) > 0; i++ {
		segs := subjectSegments(seq.At(i))
		var next []NodeIndex
		for _, n := range frontier {
			for _, seg := range segs {
				if child, ok := x.nodes[n].children[seg]; ok {
					next = append(next, child)
					ids = append(ids, x.nodes[child].rules...)
				}
			}
		}
		frontier = next
	}
	sort.Ints(ids)
	return ids
}

func templateSegment(t token.Token) string {
	switch v := t.(type) {
	case token.Symbol:
		return "s:" + string(v)
	case token.Var:
		if v.Category == token.KindAny {
			return anySegment
		}
		return "k:" + v.Category.String()
	case token.ListCapture:
		return "k:" + token.KindList.String()
	case token.MapCapture:
		return "k:" + token.KindMap.String()
	}
	return "k:" + t.Kind().String()
}

func subjectSegments(t token.Token) []string {
	if sym, ok := t.(token.Symbol); ok {
		return []string{"s:" + string(sym)}
	}
	if token.IsValue(t) {
		return []string{"k:" + t.Kind().String(), anySegment}
	}
	return []string{"k:" + t.Kind().String()}
}
