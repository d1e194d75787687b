// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

// Key is the name half of a property (key, value) pair. It is a thin wrapper
// around a string so call sites can pass either a borrowed string literal or
// an owned, reference-counted name without the bag caring which.
type Key struct {
	name string
}

// NewKey wraps name as a Key.
func NewKey(name string) Key { return Key{name: name} }

// String returns the key's textual name.
func (k Key) String() string { return k.name }

// OwnedKey is a Key that has been detached from whatever borrowed it, safe to
// retain past the scope that produced it (context frames and the batching
// channel both need this: they outlive the call site that built the event).
type OwnedKey struct {
	name string
}

// ToOwned detaches k into an OwnedKey.
func (k Key) ToOwned() OwnedKey { return OwnedKey{name: k.name} }

// Key reborrows an OwnedKey as a Key.
func (k OwnedKey) Key() Key { return Key{name: k.name} }

// String returns the key's textual name.
func (k OwnedKey) String() string { return k.name }
