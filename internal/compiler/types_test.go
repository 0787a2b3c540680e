package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/ir"
)

func TestParseArgType(t *testing.T) {
	tests := []struct {
		typ   string
		kind  ir.ArgKind
		shape []int
	}{
		{"int", ir.KindInt, nil},
		{"body_code", ir.KindInt, nil},
		{"bool", ir.KindBool, nil},
		{"string", ir.KindText, nil},
		{"frame_name", ir.KindText, nil},
		{"float", ir.KindNumeric, nil},
		{"time", ir.KindNumeric, nil},
		{"float[3]", ir.KindNumeric, []int{3}},
		{"rotmat[3, 3]", ir.KindNumeric, []int{3, 3}},
		{"float[*]", ir.KindNumeric, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			desc, err := ParseArgType("x", tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, tt.shape, desc.ItemShape)
			assert.Equal(t, tt.typ, desc.Type)
		})
	}
}

func TestParseArgTypeErrors(t *testing.T) {
	for _, typ := range []string{"double", "float[3", "float[0]", "float[x]", "int[3]"} {
		_, err := ParseArgType("x", typ)
		assert.Error(t, err, typ)
	}
}
