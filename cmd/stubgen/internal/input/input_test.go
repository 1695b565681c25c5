package input

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
)

var manifestPath = filepath.Join("..", "..", "..", "..", "stubgen", "provider", "testdata", "repository.yaml")

const sourcePkg = "github.com/broady/stubkit/stubgen/provider/testdata"

func stubNames(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	req, err := Load(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	var names []string
	for _, s := range req.Stubs {
		names = append(names, s.Name)
	}
	return names
}

func TestLoad_Manifest(t *testing.T) {
	names := stubNames(t, &config.Config{
		Manifest: manifestPath,
		Stubs:    []string{"IRepository?name=ExtraRepository"},
	})
	assert.Equal(t, []string{"FakeRepository", "StrictRepository", "FakeDisposable", "ExtraRepository"}, names)
}

func TestLoad_SourceDefaults(t *testing.T) {
	names := stubNames(t, &config.Config{
		Source: config.SourceConfig{Packages: []string{sourcePkg}, Types: []string{"Repository", "Handler"}},
	})
	assert.Equal(t, []string{"FakeRepository", "FakeHandler"}, names)
}

func TestLoad_SourceAllExported(t *testing.T) {
	names := stubNames(t, &config.Config{
		Source: config.SourceConfig{Packages: []string{sourcePkg}},
	})
	assert.ElementsMatch(t, []string{"FakeCloser", "FakeHandler", "FakeRepository"}, names,
		"templates and type sets get no default stub")
}

func TestLoad_Errors(t *testing.T) {
	log := zaptest.NewLogger(t)
	ctx := context.Background()

	_, err := Load(ctx, &config.Config{}, log)
	assert.ErrorContains(t, err, "nothing to resolve")

	_, err = Load(ctx, &config.Config{Manifest: "missing.yaml"}, log)
	assert.Error(t, err)

	_, err = Load(ctx, &config.Config{Stubs: []string{"?name=X"}}, log)
	assert.Error(t, err)
}

func TestFlags_Apply(t *testing.T) {
	cfg := &config.Config{Manifest: "a.yaml", Workers: 2, Stubs: []string{"IA"}}
	(&Flags{}).Apply(cfg)
	assert.Equal(t, "a.yaml", cfg.Manifest, "unset flags keep configured values")
	assert.Equal(t, 2, cfg.Workers)

	(&Flags{Manifest: "b.yaml", Stub: []string{"IB"}, Package: []string{"p"}, Type: []string{"T"}, Strict: true, Workers: 8}).Apply(cfg)
	assert.Equal(t, "b.yaml", cfg.Manifest)
	assert.Equal(t, []string{"IB"}, cfg.Stubs)
	assert.Equal(t, []string{"p"}, cfg.Source.Packages)
	assert.Equal(t, []string{"T"}, cfg.Source.Types)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_SourceDirectives(t *testing.T) {
	names := stubNames(t, &config.Config{
		Source: config.SourceConfig{Packages: []string{sourcePkg + "/directives"}},
		Stubs:  []string{"Clock?name=SecondClock"},
	})
	assert.Equal(t, []string{"FakeClock", "MemoryStore", "SecondClock"}, names)
}
