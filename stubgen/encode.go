package stubgen

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/naming"
	"github.com/broady/stubkit/stubgen/sink"
)

// DiagnosticsFile is the path diagnostics are written to by Write.
const DiagnosticsFile = "diagnostics.json"

// UnitPath returns the output path of a stub's unit.
func UnitPath(stub string) string {
	return naming.Identifier(stub) + ".stub.json"
}

// EncodeUnit encodes a unit as indented JSON with a trailing newline.
// Encoding is deterministic: equal units encode to equal bytes.
func EncodeUnit(u *model.Unit) ([]byte, error) {
	return encode(u)
}

// EncodeDiagnostics encodes diagnostics the same way.
func EncodeDiagnostics(diags []model.Diagnostic) ([]byte, error) {
	if diags == nil {
		diags = []model.Diagnostic{}
	}
	return encode(diags)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding JSON")
	}
	return buf.Bytes(), nil
}

// Write encodes every unit of batch to out, plus the diagnostics file when
// the batch has any. It returns the written paths in order.
func Write(ctx context.Context, batch *model.Batch, out sink.OutputSink) ([]string, error) {
	var paths []string
	for i := range batch.Units {
		u := &batch.Units[i]
		content, err := EncodeUnit(u)
		if err != nil {
			return paths, errors.Wrapf(err, "stub %q", u.Stub)
		}
		p := UnitPath(u.Stub)
		if err := out.WriteFile(ctx, p, content); err != nil {
			return paths, errors.Wrapf(err, "writing %s", p)
		}
		paths = append(paths, p)
	}
	if len(batch.Diagnostics) > 0 {
		content, err := EncodeDiagnostics(batch.Diagnostics)
		if err != nil {
			return paths, err
		}
		if err := out.WriteFile(ctx, DiagnosticsFile, content); err != nil {
			return paths, errors.Wrapf(err, "writing %s", DiagnosticsFile)
		}
		paths = append(paths, DiagnosticsFile)
	}
	return paths, nil
}
