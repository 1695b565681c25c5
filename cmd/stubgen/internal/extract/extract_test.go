package extract

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubkit/stubgen"
	"github.com/broady/stubkit/stubgen/provider"
)

func TestExtract_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := Extract(context.Background(), provider.SourceInputOptions{
		Packages:  []string{"github.com/broady/stubkit/stubgen/provider/testdata"},
		RootTypes: []string{"Repository", "Handler"},
	}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "refs:")

	req, err := provider.ParseManifest(buf.Bytes(), false)
	require.NoError(t, err)

	var ids []string
	for _, c := range req.Contracts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"Repository", "Reader", "Closer", "Handler"}, ids)

	var stubs []string
	for _, s := range req.Stubs {
		stubs = append(stubs, s.Name)
	}
	assert.Equal(t, []string{"FakeRepository", "FakeCloser", "FakeHandler"}, stubs, "templates get no stub")

	batch, err := stubgen.Resolve(context.Background(), req, nil)
	require.NoError(t, err)
	assert.False(t, batch.HasErrors())
	assert.Len(t, batch.Units, 3)
}

func TestExtract_Directives(t *testing.T) {
	var buf bytes.Buffer
	err := Extract(context.Background(), provider.SourceInputOptions{
		Packages: []string{"github.com/broady/stubkit/stubgen/provider/testdata/directives"},
	}, &buf)
	require.NoError(t, err)

	req, err := provider.ParseManifest(buf.Bytes(), false)
	require.NoError(t, err)
	require.Len(t, req.Stubs, 2)
	assert.Equal(t, "MemoryStore", req.Stubs[1].Name)
	assert.True(t, req.Stubs[1].Strict)
	assert.NotContains(t, buf.String(), "refs:\n  -", "directive stubs replace default references")
}
