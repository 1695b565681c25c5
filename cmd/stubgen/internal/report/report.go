// Package report prints resolution results for the stubgen commands.
package report

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/broady/stubkit/stubgen/model"
)

// ErrStubsFailed is returned when at least one stub produced an
// error-severity diagnostic.
var ErrStubsFailed = errors.New("some stubs could not be generated")

// Diagnostics prints one line per diagnostic.
func Diagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		mark := "!"
		if d.IsError() {
			mark = "✗"
		}
		if d.Contract != "" {
			fmt.Fprintf(w, "%s %s [%s] %s: %s\n", mark, d.Stub, d.Code, d.Contract, d.Message)
		} else {
			fmt.Fprintf(w, "%s %s [%s] %s\n", mark, d.Stub, d.Code, d.Message)
		}
	}
}

// Summary prints per-unit statistics and returns ErrStubsFailed when the
// batch has errors.
func Summary(w io.Writer, req *model.Request, batch *model.Batch) error {
	for _, u := range batch.Units {
		fmt.Fprintf(w, "✓ %s: %d properties, %d indexers, %d methods, %d generic handlers, %d events, %d delegations\n",
			u.Stub, len(u.Properties), len(u.Indexers), len(u.Methods), len(u.GenericHandlers),
			len(u.EventHandlers), len(u.Delegations))
	}
	fmt.Fprintf(w, "✓ %d of %d stubs resolved\n", len(batch.Units), len(req.Stubs))
	if batch.HasErrors() {
		return errors.Wrapf(ErrStubsFailed, "%d of %d", len(req.Stubs)-len(batch.Units), len(req.Stubs))
	}
	return nil
}
