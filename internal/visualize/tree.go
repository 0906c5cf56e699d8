// Package visualize renders a deployed sentinel set as an ASCII tree
// grouped by octet-boundary ancestry, for operators inspecting a run.
package visualize

import (
	"fmt"
	"io"
	"sort"

	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/sentinel"
)

// Tree maps a node label to its children. Adapted from
// https://github.com/Tufin/asciitree via the teacher's tree package.
type Tree map[string]Tree

// Add inserts path into the tree, creating any missing intermediate
// nodes.
func (t Tree) Add(path []string) {
	if len(path) == 0 {
		return
	}
	next, ok := t[path[0]]
	if !ok {
		next = Tree{}
		t[path[0]] = next
	}
	next.Add(path[1:])
}

// Fprint writes the tree to w as a box-drawing ASCII tree.
func (t Tree) Fprint(w io.Writer, root bool, padding string) {
	if t == nil {
		return
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		fmt.Fprintf(w, "%s%s\n", padding+pad(root, boxType(i, len(keys))), k)
		t[k].Fprint(w, false, padding+pad(root, boxTypeExternal(i, len(keys))))
	}
}

type boxKind int

const (
	regular boxKind = iota
	last
	afterLast
	between
)

func (b boxKind) String() string {
	switch b {
	case regular:
		return "├" // ├
	case last:
		return "└" // └
	case afterLast:
		return " "
	case between:
		return "│" // │
	default:
		panic("invalid box kind")
	}
}

func boxType(index, length int) boxKind {
	if index+1 == length {
		return last
	}
	return regular
}

func boxTypeExternal(index, length int) boxKind {
	if index+1 == length {
		return afterLast
	}
	return between
}

func pad(root bool, b boxKind) string {
	if root {
		return ""
	}
	return b.String() + " "
}

// octetBoundaries are the prefix lengths visualize groups ancestry by.
var octetBoundaries = [...]uint8{8, 16, 24, 32}

// Build turns a sentinel set into an ancestry tree: each sentinel
// contributes the chain of octet-boundary ancestors up to its own
// length, so sentinels sharing a /8 or /16 render under a common node.
func Build(sentinels []sentinel.Sentinel) Tree {
	root := Tree{}
	for _, s := range sentinels {
		var path []string
		for _, l := range octetBoundaries {
			if l > s.Prefix.Len {
				break
			}
			path = append(path, ipaddr.NewPrefix(s.Prefix.Base, l).String())
		}
		if len(path) == 0 || path[len(path)-1] != s.Prefix.String() {
			path = append(path, s.Prefix.String())
		}
		root.Add(path)
	}
	return root
}

// Dump renders sentinels as an ASCII tree to w.
func Dump(w io.Writer, sentinels []sentinel.Sentinel) {
	Build(sentinels).Fprint(w, true, "")
}
