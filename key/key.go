/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package key

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/suparena/entitymapper/errors"
)

const (
	pathSeparator = "/"
	kindSeparator = ":"
)

// Key identifies a stored entity. A key has a kind, an ID unique within its kind and
// parent, and an optional parent key. Keys are immutable once created.
type Key struct {
	kind   string
	id     string
	parent *Key
}

// New returns a key of the given kind and ID under parent, which may be nil. New does
// not validate; back ends reject keys for which Validate fails.
func New(kind, id string, parent *Key) *Key {
	return &Key{kind: kind, id: id, parent: parent}
}

// Kind returns the type tag of the entity.
func (k *Key) Kind() string {
	return k.kind
}

// ID returns the entity ID.
func (k *Key) ID() string {
	return k.id
}

// Parent returns the parent key, or nil for a root key.
func (k *Key) Parent() *Key {
	return k.parent
}

// Root returns the top-most ancestor, which is k itself for a root key.
func (k *Key) Root() *Key {
	for k.parent != nil {
		k = k.parent
	}
	return k
}

// Depth is the number of keys in the path, 1 for a root key.
func (k *Key) Depth() int {
	n := 0
	for c := k; c != nil; c = c.parent {
		n++
	}
	return n
}

// HasAncestor reports whether a is a proper ancestor of k.
func (k *Key) HasAncestor(a *Key) bool {
	for p := k.parent; p != nil; p = p.parent {
		if p.Equal(a) {
			return true
		}
	}
	return false
}

// Equal reports whether both keys name the same entity.
func (k *Key) Equal(o *Key) bool {
	for {
		if k == nil || o == nil {
			return k == o
		}
		if k.kind != o.kind || k.id != o.id {
			return false
		}
		k, o = k.parent, o.parent
	}
}

// String returns the canonical path, root first: "Customer:42/Order:7".
func (k *Key) String() string {
	if k == nil {
		return ""
	}
	var segments []string
	for c := k; c != nil; c = c.parent {
		segments = append(segments, c.kind+kindSeparator+url.PathEscape(c.id))
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, pathSeparator)
}

// Encode returns the opaque, URL-safe serialized form of the key.
func (k *Key) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(k.String()))
}

// Decode parses a string produced by Encode.
func Decode(s string) (*Key, error) {
	if s == "" {
		return nil, errors.NewKeyFormatError(s, "empty key")
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.NewKeyFormatError(s, "not base64url encoded")
	}
	k, err := parsePath(string(raw))
	if err != nil {
		return nil, errors.NewKeyFormatError(s, err.Error())
	}
	return k, nil
}

// ParsePath parses the canonical path form returned by String.
func ParsePath(path string) (*Key, error) {
	k, err := parsePath(path)
	if err != nil {
		return nil, errors.NewKeyFormatError(path, err.Error())
	}
	return k, nil
}

// ValidKind reports whether kind can be used in a key.
func ValidKind(kind string) bool {
	return kind != "" && !strings.ContainsAny(kind, pathSeparator+kindSeparator)
}

// Validate reports a KeyFormatError when k or one of its ancestors has an invalid
// kind or an empty ID, i.e. when Encode would not round-trip through Decode.
func (k *Key) Validate() error {
	if k == nil {
		return errors.NewKeyFormatError("", "nil key")
	}
	for c := k; c != nil; c = c.parent {
		if !ValidKind(c.kind) {
			return errors.NewKeyFormatError(k.String(), fmt.Sprintf("invalid kind %q", c.kind))
		}
		if c.id == "" {
			return errors.NewKeyFormatError(k.String(), "empty id for kind "+c.kind)
		}
	}
	return nil
}
