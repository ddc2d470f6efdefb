package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	width int
	mode  string
	calls []string
}

func withWidth(w int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if w <= 0 {
			return errors.New("width must be positive")
		}
		c.width = w
		c.calls = append(c.calls, "width")

		return nil
	})
}

func withMode(m string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.mode = m
		c.calls = append(c.calls, "mode")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, withMode("a"), withWidth(3), withMode("b")))
		require.Equal(t, 3, cfg.width)
		require.Equal(t, "b", cfg.mode)
		require.Equal(t, []string{"mode", "width", "mode"}, cfg.calls)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withWidth(2), withWidth(-1), withMode("never"))
		require.EqualError(t, err, "width must be positive")
		require.Equal(t, 2, cfg.width)
		require.Empty(t, cfg.mode)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withMode("x"), nil))
		require.Equal(t, "x", cfg.mode)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{width: 5}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 5, cfg.width)
	})
}
