package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type replicaConfig struct {
	replicas int
	seed     uint64
	seeded   bool
	lastCall string
}

func (c *replicaConfig) setReplicas(n int) error {
	if n < 1 {
		return errors.New("replica count must be positive")
	}
	c.replicas = n
	c.lastCall = "setReplicas"

	return nil
}

func (c *replicaConfig) setSeed(seed uint64) {
	c.seed = seed
	c.seeded = true
	c.lastCall = "setSeed"
}

func withReplicas(n int) Option[*replicaConfig] {
	return New(func(c *replicaConfig) error { return c.setReplicas(n) })
}

func withSeed(seed uint64) Option[*replicaConfig] {
	return NoError(func(c *replicaConfig) { c.setSeed(seed) })
}

func TestOption_New(t *testing.T) {
	t.Run("applies a fallible setter", func(t *testing.T) {
		cfg := &replicaConfig{}
		require.NoError(t, withReplicas(50).apply(cfg))
		require.Equal(t, 50, cfg.replicas)
		require.Equal(t, "setReplicas", cfg.lastCall)
	})

	t.Run("propagates setter errors", func(t *testing.T) {
		cfg := &replicaConfig{}
		err := withReplicas(0).apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be positive")
		require.Zero(t, cfg.replicas)
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &replicaConfig{}
	require.NoError(t, withSeed(7).apply(cfg))
	require.True(t, cfg.seeded)
	require.Equal(t, uint64(7), cfg.seed)
}

func TestOption_Apply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &replicaConfig{}
		err := Apply(cfg, withReplicas(10), withSeed(3), withReplicas(20))
		require.NoError(t, err)
		require.Equal(t, 20, cfg.replicas)
		require.Equal(t, uint64(3), cfg.seed)
		require.Equal(t, "setReplicas", cfg.lastCall)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		cfg := &replicaConfig{}
		err := Apply(cfg, withReplicas(5), withReplicas(-1), withSeed(9))
		require.Error(t, err)
		require.Equal(t, 5, cfg.replicas)
		require.False(t, cfg.seeded)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &replicaConfig{}
		require.NoError(t, Apply(cfg, nil, withSeed(1), nil))
		require.True(t, cfg.seeded)
	})

	t.Run("empty option list leaves target untouched", func(t *testing.T) {
		cfg := &replicaConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, replicaConfig{}, *cfg)
	})
}

func TestOption_GenericsWithPrimitiveTarget(t *testing.T) {
	var chunk int
	opt := NoError(func(n *int) { *n = 4096 })
	require.NoError(t, opt.apply(&chunk))
	require.Equal(t, 4096, chunk)
}
