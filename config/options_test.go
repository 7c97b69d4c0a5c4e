package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/config"
)

func TestNew_NoOptionsYieldsZeroValue(t *testing.T) {
	opts := config.New()
	assert.Empty(t, opts.MemoHelperNames)
	assert.Empty(t, opts.PrimitiveTypes)
	assert.Nil(t, opts.Intrinsics)
	assert.Nil(t, opts.ConstructorIntrinsics)
}

func TestNew_AppliesOptionsInOrder(t *testing.T) {
	opts := config.New(
		config.WithMemoHelperNames("memoize", "once"),
		config.WithPrimitiveTypes("string", "number"),
		config.WithIntrinsics(map[string]bool{"Object.freeze": false}),
		config.WithConstructorIntrinsics(map[string]bool{"Array": false}),
	)

	assert.Equal(t, []string{"memoize", "once"}, opts.MemoHelperNames)
	assert.Equal(t, []string{"string", "number"}, opts.PrimitiveTypes)
	assert.Equal(t, map[string]bool{"Object.freeze": false}, opts.Intrinsics)
	assert.Equal(t, map[string]bool{"Array": false}, opts.ConstructorIntrinsics)
}

func TestConstants(t *testing.T) {
	assert.Greater(t, config.MaxPropagationRounds, 0)
	assert.NotEmpty(t, config.AnonymousSummaryPrefix)
}
