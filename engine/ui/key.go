package ui

import (
	"strconv"
	"strings"
)

// Key is the 64-bit identity of a box, derived from its label bytes.
// The zero Key never identifies a box and marks an unclaimed hot/active slot.
type Key uint64

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// KeyFromString hashes the raw bytes of s with FNV-1a.
func KeyFromString(s string) Key {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return Key(h)
}

// KeyFromBytes hashes b with FNV-1a.
func KeyFromBytes(b []byte) Key {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return Key(h)
}

func (k Key) String() string { return "#" + strconv.FormatUint(uint64(k), 16) }

// IDSeparator splits the visible part of a label from its uniqueness token.
// "OK##dialog" displays "OK" but hashes the whole string.
const IDSeparator = "##"

// displayText returns the part of label before the first IDSeparator.
func displayText(label string) string {
	if i := strings.Index(label, IDSeparator); i >= 0 {
		return label[:i]
	}
	return label
}
