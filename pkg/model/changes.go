package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
)

// ChangeKind classifies an entry in a change report. The numeric
// values are part of the reporting contract.
type ChangeKind int

const (
	// ChangeAdded marks a path present only on the destination side
	ChangeAdded ChangeKind = iota

	// ChangeRemoved marks a path present only on the source side
	ChangeRemoved

	// ChangeModified marks a path whose content hash differs
	ChangeModified
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	}
	return fmt.Sprintf("changekind(%d)", int(k))
}

// ShortKeyLen is how many hex digits of a key change reports show
const ShortKeyLen = 12

// ShortKey abbreviates a key for display
func ShortKey(k dag.Key) string {
	return k.String()[:ShortKeyLen]
}

// Change records one differing path between two file trees
type Change struct {
	Type   ChangeKind `json:"type" yaml:"type"`
	Path   string     `json:"path" yaml:"path"`
	Before dag.Key    `json:"before" yaml:"before"`
	After  dag.Key    `json:"after" yaml:"after"`
	_      struct{}
}

func (c Change) String() string {
	pth := c.Path
	if pth != "" {
		pth += " "
	}
	switch c.Type {
	case ChangeAdded:
		return fmt.Sprintf("+ %s%s", pth, ShortKey(c.After))
	case ChangeRemoved:
		return fmt.Sprintf("- %s%s", pth, ShortKey(c.Before))
	default:
		return fmt.Sprintf("%s%s --> %s", pth, ShortKey(c.Before), ShortKey(c.After))
	}
}

// ChangeSet is an ordered change report
type ChangeSet []Change

// Sort orders the report by kind, then by path within each kind
func (cs ChangeSet) Sort() {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Type != cs[j].Type {
			return cs[i].Type < cs[j].Type
		}
		return cs[i].Path < cs[j].Path
	})
}

// Render produces the human readable report, one change per line
func (cs ChangeSet) Render() string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}
