package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() *Catalog {
	return &Catalog{Routines: []RoutineSpec{
		{
			Name:      "vnorm",
			Abstract:  "Magnitude of a 3-vector",
			Vectorize: "VECTORIZE_dX__RETURN_d",
			Signature: Signature{
				Name:    "vnorm",
				Inputs:  []ArgDesc{{Name: "v1", Kind: KindNumeric, Type: "float[3]", ItemShape: []int{3}}},
				Outputs: []ArgDesc{{Name: "value", Kind: KindNumeric, Type: "float"}},
			},
		},
		{
			Name: "bodn2c",
			Signature: Signature{
				Name:    "bodn2c",
				Inputs:  []ArgDesc{{Name: "name", Kind: KindText, Type: "string"}},
				Outputs: []ArgDesc{{Name: "code", Kind: KindInt, Type: "int"}, {Name: "found", Kind: KindBool, Type: "bool"}},
			},
			Error: &ErrorSpec{Flag: "found", Trigger: TriggerFalse, Condition: "SPICE(BODYNAMENOTFOUND)", Message: "body name %q not found"},
		},
	}}
}

func TestCatalogHashDeterminism(t *testing.T) {
	h1, err := CatalogHash(sampleCatalog())
	require.NoError(t, err)
	h2, err := CatalogHash(sampleCatalog())
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "CatalogHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestCatalogHashChangesWithContent(t *testing.T) {
	base, err := CatalogHash(sampleCatalog())
	require.NoError(t, err)

	changed := sampleCatalog()
	changed.Routines[0].Signature.Inputs[0].ItemShape = []int{0}
	h, err := CatalogHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, h, "item shape is part of identity")

	changed = sampleCatalog()
	changed.Routines[1].Error.Condition = "SPICE(OTHER)"
	h, err = CatalogHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, h, "error description is part of identity")
}

func TestCallIDStable(t *testing.T) {
	a := CallID("session-1", "vnorm_array", 1)
	b := CallID("session-1", "vnorm_array", 1)
	c := CallID("session-1", "vnorm_array", 2)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`{"x":1}`)
	assert.NotEqual(t, hashWithDomain(DomainCatalog, data), hashWithDomain(DomainCall, data))
}
