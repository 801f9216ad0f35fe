package strut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type module struct{ name string }

func TestMustNotBeNil(t *testing.T) {
	m := &module{name: "api"}
	assert.Same(t, m, MustNotBeNil(m), "non-nil values pass through unchanged")

	var missing *module
	assert.PanicsWithValue(t, "strut: required value is nil", func() {
		MustNotBeNil(missing)
	})

	var iface interface{ Name() string }
	assert.Panics(t, func() { MustNotBeNil(iface) })

	var fn func()
	assert.Panics(t, func() { MustNotBeNil(fn) })
}

func TestMustNotBeNilValueTypes(t *testing.T) {
	// Value types can never be nil, including their zero values.
	assert.Equal(t, 0, MustNotBeNil(0))
	assert.Equal(t, "", MustNotBeNil(""))
	assert.Equal(t, module{}, MustNotBeNil(module{}))
}

func TestCheckBuilderRequirement(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckBuilderRequirement(&module{}, "modules.APIModule")
	})

	var missing *module
	assert.PanicsWithValue(t, "strut: modules.APIModule must be set", func() {
		CheckBuilderRequirement(missing, "modules.APIModule")
	})
}

func TestRepeatedModule(t *testing.T) {
	err := RepeatedModule("modules.DBModule")
	assert.EqualError(t, err, "modules.DBModule cannot be set because it is inherited from the enclosing component")
}
