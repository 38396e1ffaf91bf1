package dag

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind discriminates file nodes from directory nodes
type Kind string

const (
	// KindFile marks a node referencing a content blob
	KindFile Kind = "file"

	// KindDir marks a node holding links to child nodes
	KindDir Kind = "dir"
)

// Link names a child node within a directory node
type Link struct {
	Name string `json:"name"`
	Key  Key    `json:"key"`
	Dir  bool   `json:"dir,omitempty"`
	Size int64  `json:"size"`
}

// Node is one immutable object in the graph. A file node references its
// content blob, a directory node references its children. The encoded
// form is canonical: links are kept sorted by name, so equal trees hash
// equal.
type Node struct {
	Kind  Kind   `json:"kind"`
	Links []Link `json:"links,omitempty"`
	Blob  Key    `json:"blob,omitempty"`
	Size  int64  `json:"size"`
}

// NewFileNode builds a node for a content blob
func NewFileNode(blob Key, size int64) *Node {
	return &Node{Kind: KindFile, Blob: blob, Size: size}
}

// NewDirNode builds an empty directory node
func NewDirNode() *Node {
	return &Node{Kind: KindDir}
}

// IsDir is true for directory nodes
func (n *Node) IsDir() bool {
	return n.Kind == KindDir
}

// Clone deep-copies a node so cached instances stay immutable
func (n *Node) Clone() *Node {
	cp := *n
	if n.Links != nil {
		cp.Links = make([]Link, len(n.Links))
		copy(cp.Links, n.Links)
	}
	return &cp
}

// Lookup finds a link by name, nil when absent
func (n *Node) Lookup(name string) *Link {
	i := sort.Search(len(n.Links), func(i int) bool { return n.Links[i].Name >= name })
	if i < len(n.Links) && n.Links[i].Name == name {
		return &n.Links[i]
	}
	return nil
}

// SetLink inserts or replaces a link, keeping links name-sorted
func (n *Node) SetLink(l Link) {
	i := sort.Search(len(n.Links), func(i int) bool { return n.Links[i].Name >= l.Name })
	if i < len(n.Links) && n.Links[i].Name == l.Name {
		n.Links[i] = l
		return
	}
	n.Links = append(n.Links, Link{})
	copy(n.Links[i+1:], n.Links[i:])
	n.Links[i] = l
}

// RemoveLink drops a link by name, reporting whether it was present
func (n *Node) RemoveLink(name string) bool {
	i := sort.Search(len(n.Links), func(i int) bool { return n.Links[i].Name >= name })
	if i < len(n.Links) && n.Links[i].Name == name {
		n.Links = append(n.Links[:i], n.Links[i+1:]...)
		return true
	}
	return false
}

// TotalSize recomputes the cumulative size of a directory node from its
// links. File node sizes are fixed at construction.
func (n *Node) TotalSize() int64 {
	if !n.IsDir() {
		return n.Size
	}
	var sz int64
	for _, l := range n.Links {
		sz += l.Size
	}
	return sz
}

// MarshalNode renders the canonical encoding of a node
func MarshalNode(n *Node) ([]byte, error) {
	sort.Slice(n.Links, func(i, j int) bool { return n.Links[i].Name < n.Links[j].Name })
	n.Size = n.TotalSize()
	return json.Marshal(n)
}

// UnmarshalNode decodes a node from its canonical encoding
func UnmarshalNode(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
