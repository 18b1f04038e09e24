package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding/yaml"
)

type sample struct {
	Name   string   `yaml:"name"`
	Values []uint64 `yaml:"values"`
}

func TestEncoder(t *testing.T) {
	e := yaml.NewEncoder()
	in := sample{Name: "coin", Values: []uint64{1, 2}}

	b, err := e.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "name: coin\nvalues:\n- 1\n- 2\n", string(b))

	var out sample
	require.NoError(t, e.Decode(b, &out))
	assert.Equal(t, in, out)
}

func TestEncoderNestedMaps(t *testing.T) {
	b, err := yaml.NewEncoder().Encode(map[string]interface{}{
		"payload": map[string]interface{}{"arguments": []interface{}{"7"}},
		"chain_id": "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "chain_id: \"4\"\npayload:\n  arguments:\n  - \"7\"\n", string(b))
}

func TestDecodeErrors(t *testing.T) {
	var out sample
	assert.Error(t, yaml.NewEncoder().Decode([]byte("name: ["), &out))
	assert.Error(t, yaml.NewEncoder().Decode([]byte("name: coin\nunknown: 1\n"), &out), "unknown fields are rejected")
}
