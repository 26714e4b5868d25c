package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
)

type stubProvider struct {
	id       string
	lastTool string
}

func (s *stubProvider) Definition() types.Service {
	return types.Service{
		ID:       s.id,
		Name:     "Stub",
		Category: types.CategoryFilesystem,
		Tools:    []types.Tool{{ID: s.id + ".ping", Name: "ping"}},
	}
}

func (s *stubProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	s.lastTool = toolID
	return &types.Result{Success: true}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubProvider{id: "explorer"}))

	got, ok := reg.Get("explorer")
	assert.True(t, ok)
	assert.NotNil(t, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RejectsEmptyID(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register(&stubProvider{id: ""}))
}

func TestRegistry_ExecuteRoutesByPrefix(t *testing.T) {
	reg := NewRegistry()
	stub := &stubProvider{id: "explorer"}
	require.NoError(t, reg.Register(stub))

	result, err := reg.Execute(context.Background(), "explorer.clipboard.status", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "explorer.clipboard.status", stub.lastTool)

	_, err = reg.Execute(context.Background(), "noservice.tool", nil, nil)
	assert.Error(t, err)

	_, err = reg.Execute(context.Background(), "bareword", nil, nil)
	assert.Error(t, err)
}

func TestRegistry_ListAndStats(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubProvider{id: "explorer"}))

	all := reg.List(nil)
	assert.Len(t, all, 1)

	cat := types.CategoryFilesystem
	assert.Len(t, reg.List(&cat), 1)

	other := types.CategorySystem
	assert.Empty(t, reg.List(&other))

	stats := reg.Stats()
	assert.Equal(t, 1, stats["total_services"])
	assert.Equal(t, 1, stats["total_tools"])

	reg.Unregister("explorer")
	assert.Empty(t, reg.List(nil))
}
