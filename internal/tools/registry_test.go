package tools

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct {
	name   string
	output string
	err    error
}

func (f fakeTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{Name: f.name, Desc: "fake tool for tests"}, nil
}

func (f fakeTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	return f.output, f.err
}

func TestRegistryInvokeKnownTool(t *testing.T) {
	r, err := NewRegistry(fakeTool{name: "search_places", output: `{"places":[],"total":0}`})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "search_places", `{"query":"tapas","city":"Zaragoza"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"places":[],"total":0}`, out)
}

func TestRegistryInvokeUnknownToolDegradesGracefully(t *testing.T) {
	r, err := NewRegistry(fakeTool{name: "search_places", output: "{}"})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "does_not_exist", `{}`)
	require.NoError(t, err)
	assert.Contains(t, out, "unknown_tool")
}

func TestRegistryInvokeMalformedArgumentsDegradesGracefully(t *testing.T) {
	r, err := NewRegistry(fakeTool{name: "search_places", output: "{}"})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "search_places", `{not json`)
	require.NoError(t, err)
	assert.Contains(t, out, "invalid_arguments")
}

func TestRegistryInvokeToolErrorDegradesGracefully(t *testing.T) {
	r, err := NewRegistry(fakeTool{name: "search_places", err: assertErr{}})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "search_places", `{}`)
	require.NoError(t, err)
	assert.Contains(t, out, "tool_failed")
}

func TestRegistryInfosAndNamesPreserveOrder(t *testing.T) {
	r, err := NewRegistry(
		fakeTool{name: "search_places"},
		fakeTool{name: "create_itinerary"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"search_places", "create_itinerary"}, r.Names())

	infos, err := r.Infos(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "search_places", infos[0].Name)
	assert.Equal(t, "create_itinerary", infos[1].Name)
}

type assertErr struct{}

func (assertErr) Error() string { return "tool exploded" }
