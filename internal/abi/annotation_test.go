package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup(name string) (UniqueDefKind, bool) {
	switch name {
	case "User":
		return UniqueObject, true
	case "Color":
		return UniqueEnum, true
	}
	return "", false
}

func TestParseTypeExpression(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want OptionalType
	}{
		{
			name: "scalar",
			expr: "String",
			want: OptionalType{Type: NewScalar("String")},
		},
		{
			name: "required scalar",
			expr: "Int!",
			want: OptionalType{Required: true, Type: NewScalar("Int")},
		},
		{
			name: "object reference",
			expr: "User!",
			want: OptionalType{Required: true, Type: NewRef(UniqueObject, "User")},
		},
		{
			name: "list of enums",
			expr: "[Color!]",
			want: OptionalType{Type: NewArray(OptionalType{Required: true, Type: NewRef(UniqueEnum, "Color")})},
		},
		{
			name: "map",
			expr: "Map<String!, Int>!",
			want: OptionalType{
				Required: true,
				Type:     NewMap(NewScalar("String"), OptionalType{Type: NewScalar("Int")}),
			},
		},
		{
			name: "nested map with list value",
			expr: " Map< UInt32 , Map<String, [User]> > ",
			want: OptionalType{
				Type: NewMap(NewScalar("UInt32"), OptionalType{
					Type: NewMap(NewScalar("String"), OptionalType{
						Type: NewArray(OptionalType{Type: NewRef(UniqueObject, "User")}),
					}),
				}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTypeExpression(tt.expr, testLookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeExpression_Errors(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		errContains string
	}{
		{"empty", "", "expected a type name"},
		{"unknown type", "Map<String, Unknown>", `unknown type "Unknown"`},
		{"non scalar key", "Map<User, Int>", "map key"},
		{"boolean key", "Map<Boolean, Int>", "map key"},
		{"missing angle", "Map", "expected '<'"},
		{"missing comma", "Map<String Int>", "expected ','"},
		{"unclosed map", "Map<String, Int", "expected '>'"},
		{"unclosed list", "[Int", "expected ']'"},
		{"trailing input", "Int! Int", "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeExpression(tt.expr, testLookup)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTypeExpression)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOptionalType_String(t *testing.T) {
	typ, err := ParseTypeExpression("Map<String!, [Int!]>!", testLookup)
	require.NoError(t, err)
	assert.Equal(t, "Map<String, [Int!]>!", typ.String())
}

func TestIsModuleType(t *testing.T) {
	assert.True(t, IsModuleType("Module"))
	assert.True(t, IsModuleType("Ipfs_Module"))
	assert.False(t, IsModuleType("ModuleConfig"))
	assert.False(t, IsModuleType("User"))
}
