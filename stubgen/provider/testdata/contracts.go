// Package testdata holds contracts for extraction tests.
package testdata

import "context"

// Entity is a stored record.
type Entity struct {
	ID   string
	Tags []string
}

// Closer releases resources.
type Closer interface {
	Close() error
}

// Reader reads values of type T.
type Reader[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ids ...string) []T
}

// Repository stores entities.
type Repository interface {
	Reader[*Entity]
	Closer

	Save(e *Entity) error
	Count() int
	Lookup(key string) (value *Entity, ok bool)
	unexported()
}

// Handler is a callback contract.
type Handler func(ctx context.Context, name string) (bool, error)

// Number is a type set and cannot be implemented.
type Number interface {
	~int | ~float64
}

// Index orders keys.
type Index[K comparable] interface {
	Less(a, b K) bool
	Keys() map[K]Entity
}

// Status is a named basic type.
type Status int
