package nullable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_JSON(t *testing.T) {
	var v struct {
		A String `json:"a"`
		B String `json:"b"`
		C String `json:"c"`
		D String `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"texto","b":null,"c":20123456}`), &v))

	assert.Equal(t, "texto", v.A.ForceValue())
	assert.True(t, v.B.IsNil())
	assert.Equal(t, "", v.B.ForceValue())
	assert.Equal(t, "20123456", v.C.ForceValue())
	assert.True(t, v.D.IsNil(), "absent stays null")

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"texto","b":null,"c":"20123456","d":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestString_Scan(t *testing.T) {
	var s String
	require.NoError(t, s.Scan("valor"))
	assert.Equal(t, NewString("valor"), s)
	require.NoError(t, s.Scan(nil))
	assert.True(t, s.IsNil())
}
