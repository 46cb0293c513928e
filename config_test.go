package leftpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineConfigDefaults(t *testing.T) {
	cfg := NewEngineConfig()

	assert.Equal(t, 0, cfg.GetInt("rule.max_grow_iterations"))
	assert.False(t, cfg.GetBool("trace.enabled"))
}

func TestEngineConfigSetOverridesDefaults(t *testing.T) {
	cfg := NewEngineConfig()
	cfg.SetInt("rule.max_grow_iterations", 4)
	cfg.SetBool("trace.enabled", true)

	assert.Equal(t, 4, cfg.GetInt("rule.max_grow_iterations"))
	assert.True(t, cfg.GetBool("trace.enabled"))
}

func TestEngineConfigGetPanicsOnUnsetKey(t *testing.T) {
	cfg := NewEngineConfig()
	assert.Panics(t, func() {
		cfg.GetInt("not.a.real.key")
	})
}

func TestEngineConfigGetPanicsOnWrongType(t *testing.T) {
	cfg := NewEngineConfig()
	assert.Panics(t, func() {
		cfg.GetBool("rule.max_grow_iterations")
	})
}

func TestEngineConfigTryGetReturnsErrorInsteadOfPanicking(t *testing.T) {
	cfg := NewEngineConfig()

	_, err := cfg.TryGetInt("not.a.real.key")
	require.Error(t, err)

	_, err = cfg.TryGetBool("rule.max_grow_iterations")
	require.Error(t, err)

	v, err := cfg.TryGetInt("rule.max_grow_iterations")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestEngineConfigDebugListsKeysSorted(t *testing.T) {
	cfg := NewEngineConfig()
	out := cfg.Debug()

	assert.Contains(t, out, "rule.max_grow_iterations")
	assert.Contains(t, out, "trace.enabled")
	assert.Less(t,
		strings.Index(out, "rule.max_grow_iterations"),
		strings.Index(out, "trace.enabled"),
	)
}
