package dag

import (
	units "github.com/docker/go-units"
	blake2b "github.com/minio/blake2b-simd"
)

// Option alters hashing parameters
type Option func(*Maker)

// LeafSize overrides the chunk size used for leaf hashes
func LeafSize(sz int64) Option {
	return func(m *Maker) {
		m.leafSize = uint32(sz)
	}
}

// Size overrides the inner hash size
func Size(sz uint8) Option {
	return func(m *Maker) {
		m.size = sz
	}
}

// New builds a hasher for blob content and nodes
func New(opts ...Option) *Maker {
	m := &Maker{
		leafSize: uint32(5 * units.MB),
		size:     KeySize,
	}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Maker computes blake2b tree hashes over chunked content. Content is
// hashed leaf by leaf, then the concatenated leaf digests are hashed
// once more at the root level.
type Maker struct {
	size     uint8
	leafSize uint32
}

func (m *Maker) leafConfig(part uint64, last bool) *blake2b.Config {
	return &blake2b.Config{
		Size: blake2b.Size,
		Tree: &blake2b.Tree{
			Fanout:        0,
			MaxDepth:      2,
			LeafSize:      m.leafSize,
			NodeOffset:    part,
			NodeDepth:     0,
			InnerHashSize: m.size,
			IsLastNode:    last,
		},
	}
}

func (m *Maker) rootConfig() *blake2b.Config {
	return &blake2b.Config{
		Size: blake2b.Size,
		Tree: &blake2b.Tree{
			Fanout:        0,
			MaxDepth:      2,
			LeafSize:      m.leafSize,
			NodeOffset:    0,
			NodeDepth:     1,
			InnerHashSize: m.size,
			IsLastNode:    true,
		},
	}
}

// Sum computes the content key of a byte slice
func (m *Maker) Sum(data []byte) (Key, error) {
	leafSize := int(m.leafSize)
	leaves := make([]byte, 0, KeySize)

	for part, offset := uint64(0), 0; ; part++ {
		end := offset + leafSize
		if end > len(data) {
			end = len(data)
		}
		last := end == len(data)

		leaf, err := blake2b.New(m.leafConfig(part, last))
		if err != nil {
			return Key{}, err
		}
		if _, err = leaf.Write(data[offset:end]); err != nil {
			return Key{}, err
		}
		leaves = append(leaves, leaf.Sum(nil)...)

		if last {
			break
		}
		offset = end
	}

	root, err := blake2b.New(m.rootConfig())
	if err != nil {
		return Key{}, err
	}
	if _, err = root.Write(leaves); err != nil {
		return Key{}, err
	}
	return NewKey(root.Sum(nil))
}

// HashNode renders a node in canonical form and computes its key
func (m *Maker) HashNode(n *Node) (Key, []byte, error) {
	data, err := MarshalNode(n)
	if err != nil {
		return Key{}, nil, err
	}
	k, err := m.Sum(data)
	if err != nil {
		return Key{}, nil, err
	}
	return k, data, nil
}
