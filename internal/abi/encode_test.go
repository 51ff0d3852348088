package abi

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func sampleAbi() *Abi {
	a := New()
	a.Objects = []ObjectDef{{
		Kind: KindObject,
		Name: "User",
		Props: []PropertyDef{{
			Kind:     KindProperty,
			Name:     "id",
			Required: true,
			Type:     NewScalar("String"),
		}},
	}}
	return a
}

func TestEncode_JSONOmitsEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]interface{}{"version": Version}, decoded)
}

func TestEncode_Formats(t *testing.T) {
	// Test plan:
	// - Each format produces output that its own decoder reads back
	// - Field names follow the json tags in every format

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleAbi(), FormatJSON))
		assert.Contains(t, buf.String(), `"scalar": "String"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleAbi(), FormatYAML))

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, Version, decoded["version"])
		assert.Len(t, decoded["objects"], 1)
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleAbi(), FormatMsgpack))

		var decoded map[string]interface{}
		require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, Version, decoded["version"])
		assert.NotContains(t, decoded, "enums")
		assert.Len(t, decoded["objects"], 1)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
