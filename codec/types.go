// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every value that is registered under a type ID.
type Typed interface {
	GetTypeID() uint8
}

// UnmarshalFunc decodes a registered value from a [Packer].
type UnmarshalFunc[T any] func(*Packer) (T, error)

// TypeParser maps type IDs to their decoders.
type TypeParser[T any] struct {
	registry map[uint8]UnmarshalFunc[T]
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{registry: make(map[uint8]UnmarshalFunc[T])}
}

// Register adds [f] under [id]. Registering the same ID twice fails.
func (t *TypeParser[T]) Register(id uint8, f UnmarshalFunc[T]) error {
	if _, ok := t.registry[id]; ok {
		return ErrDuplicateTypeID
	}
	t.registry[id] = f
	return nil
}

// Lookup returns the decoder for [id].
func (t *TypeParser[T]) Lookup(id uint8) (UnmarshalFunc[T], bool) {
	f, ok := t.registry[id]
	return f, ok
}

// Unmarshal reads the type ID prefix from [p] and dispatches to its decoder.
func (t *TypeParser[T]) Unmarshal(p *Packer) (T, error) {
	var empty T
	id := p.UnpackByte()
	if err := p.Err(); err != nil {
		return empty, err
	}
	f, ok := t.registry[id]
	if !ok {
		return empty, ErrUnknownTypeID
	}
	return f(p)
}
