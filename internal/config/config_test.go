package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenno/modelgen/internal/value"
)

func TestLoadMissingFileIsNilNotError(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modelgen.yaml")
	data := "search_paths:\n  - lib\n  - vendor\n" +
		"vertex_layout:\n  position: 3\n  uv: 2\n  normal: 3\n  color: 0\n" +
		"globals:\n  scale: \"2\"\n  name: hull\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"lib", "vendor"}, cfg.SearchPaths)
	require.NotNil(t, cfg.VertexLayout)
	assert.Equal(t, 2, cfg.VertexLayout.UV)
	assert.Equal(t, "hull", cfg.Globals["name"])
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_paths: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyVertexLayoutNilConfigIsNoop(t *testing.T) {
	t.Parallel()

	inst := value.NewInstance(nil)
	want := inst.VertexLayout
	var cfg *Config
	cfg.ApplyVertexLayout(inst)
	assert.Equal(t, want, inst.VertexLayout)
}

func TestApplyVertexLayoutOverrides(t *testing.T) {
	t.Parallel()

	inst := value.NewInstance(nil)
	cfg := &Config{VertexLayout: &VertexLayout{Position: 3, UV: 2, Normal: 0, Color: 4}}
	cfg.ApplyVertexLayout(inst)
	assert.Equal(t, value.VertexLayout{Position: 3, UV: 2, Normal: 0, Color: 4}, inst.VertexLayout)
}

func TestApplySearchPathsAppendsAfterCLIPaths(t *testing.T) {
	t.Parallel()

	inst := value.NewInstance(nil)
	inst.SearchPaths = []string{"cli-path"}
	cfg := &Config{SearchPaths: []string{"cfg-path"}}
	cfg.ApplySearchPaths(inst)
	assert.Equal(t, []string{"cli-path", "cfg-path"}, inst.SearchPaths, "CLI paths must search before config paths")
}

func TestApplyGlobalsBindsIntoBaseModule(t *testing.T) {
	t.Parallel()

	inst := value.NewInstance(nil)
	inst.BaseModule = value.NewModule("", "base", nil, inst)
	cfg := &Config{Globals: map[string]string{"scale": "2", "name": "hull"}}
	cfg.ApplyGlobals(inst)

	scale, ok := inst.BaseModule.Globals.Get("scale")
	require.True(t, ok)
	assert.IsType(t, &value.Integer{}, scale)

	name, ok := inst.BaseModule.Globals.Get("name")
	require.True(t, ok)
	require.IsType(t, &value.String{}, name)
	assert.Equal(t, "hull", name.(*value.String).V)
}

func TestApplyGlobalsNilBaseModuleIsNoop(t *testing.T) {
	t.Parallel()

	inst := value.NewInstance(nil)
	cfg := &Config{Globals: map[string]string{"x": "1"}}
	assert.NotPanics(t, func() { cfg.ApplyGlobals(inst) })
}

func TestParseScalarIntFloatStringFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int32(42), ParseScalar("42").(*value.Integer).V)
	assert.Equal(t, float32(3.5), ParseScalar("3.5").(*value.Float).V)
	assert.Equal(t, "hull", ParseScalar("hull").(*value.String).V)
}
