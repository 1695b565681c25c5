// Package directives declares contracts that request their own stubs.
package directives

// Clock reports the time.
//
//stubgen:stub
type Clock interface {
	Now() int64
}

type (
	// Store persists values.
	//
	//stubgen:stub name=MemoryStore&strict=true&reserved=Reset
	Store interface {
		Put(key string, value []byte) error
		Get(key string) ([]byte, error)
	}

	// Ignored has no directive.
	Ignored interface {
		Skip()
	}
)
