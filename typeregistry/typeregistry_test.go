package typeregistry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/typeregistry"
)

func TestRegistry_MeetsRootObjectType(t *testing.T) {
	r := typeregistry.New("string", "number")

	meets, ok := r.MeetsRootObjectType("string")
	assert.True(t, ok)
	assert.False(t, meets, "a known primitive type is disjoint from the root object type")

	meets, ok = r.MeetsRootObjectType("MyClass")
	assert.True(t, ok)
	assert.True(t, meets, "any non-primitive declared type is assumed to possibly alias it")

	_, ok = r.MeetsRootObjectType("")
	assert.False(t, ok, "an empty type name is unrecognized")
}

func TestDefault_RecognizesBuiltinPrimitives(t *testing.T) {
	r := typeregistry.Default()
	for _, name := range []string{"string", "number", "boolean", "void", "undefined", "null", "symbol", "bigint"} {
		meets, ok := r.MeetsRootObjectType(name)
		assert.Truef(t, ok, "%s should be recognized", name)
		assert.Falsef(t, meets, "%s should be disjoint from the root object type", name)
	}
}
