package check

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/cmd/stubgen/internal/input"
	"github.com/broady/stubkit/cmd/stubgen/internal/report"
)

var manifestPath = filepath.Join("..", "..", "..", "..", "stubgen", "provider", "testdata", "repository.yaml")

const sourcePkg = "github.com/broady/stubkit/stubgen/provider/testdata"

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		flags input.Flags
	}{
		{name: "manifest", flags: input.Flags{Manifest: manifestPath}},
		{name: "strict", flags: input.Flags{Manifest: manifestPath, Strict: true, Workers: 1}},
		{name: "source", flags: input.Flags{Package: []string{sourcePkg}, Type: []string{"Repository"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &Cmd{Flags: tt.flags}
			require.NoError(t, cmd.Run(&config.Globals{LogLevel: "error"}))
		})
	}
	assert.NoDirExists(t, "stubs", "check writes nothing")
}

func TestRun_FailedStubs(t *testing.T) {
	cmd := &Cmd{Flags: input.Flags{Manifest: manifestPath, Stub: []string{"IMissing"}}}
	err := cmd.Run(&config.Globals{LogLevel: "error"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrStubsFailed))
}

func TestRun_NothingToResolve(t *testing.T) {
	cmd := &Cmd{}
	assert.ErrorContains(t, cmd.Run(&config.Globals{LogLevel: "error"}), "nothing to resolve")
}
