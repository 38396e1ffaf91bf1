// Package dag models the immutable object graph: content keys, file and
// directory nodes, their canonical encoding and their hashing.
package dag

import (
	"encoding/hex"
	"fmt"
)

const (
	// KeySize for blake2b algo
	KeySize = 64

	// KeySizeHex for the hex representation of a key
	KeySizeHex = 2 * KeySize
)

// Key type for content addressed objects
type Key [KeySize]byte

// NewKey creates a new key from data
func NewKey(data []byte) (Key, error) {
	var k Key
	n := copy(k[:], data)
	if n != KeySize {
		return Key{}, &BadKeySize{Key: data}
	}
	return k, nil
}

// MustNewKey creates a new key from data but panics if there is an error
func MustNewKey(data []byte) Key {
	k, e := NewKey(data)
	if e != nil {
		panic(e.Error())
	}
	return k
}

// KeyFromString parses the hex representation of a key
func KeyFromString(s string) (Key, error) {
	if len(s) != KeySizeHex {
		return Key{}, &BadKeySize{Key: []byte(s)}
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, err
	}
	return NewKey(data)
}

// IsKeyString tells whether s looks like the hex representation of a key
func IsKeyString(s string) bool {
	if len(s) != KeySizeHex {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports the all-zero key, used as the absent value
func (k Key) IsZero() bool {
	return k == Key{}
}

// MarshalText renders the key in hex for JSON and friends
func (k Key) MarshalText() ([]byte, error) {
	dst := make([]byte, KeySizeHex)
	hex.Encode(dst, k[:])
	return dst, nil
}

// UnmarshalText parses a hex encoded key
func (k *Key) UnmarshalText(text []byte) error {
	if len(text) != KeySizeHex {
		return &BadKeySize{Key: text}
	}
	_, err := hex.Decode(k[:], text)
	return err
}

// BadKeySize is an error that's returned when the key to create has an invalid size.
type BadKeySize struct {
	Key []byte
}

func (b *BadKeySize) Error() string {
	return fmt.Sprintf("%x has invalid size of %d, expected %d", b.Key, len(b.Key), KeySize)
}
