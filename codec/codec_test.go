package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string             `json:"name"`
	Size    int                `json:"size"`
	Seconds map[string]float64 `json:"seconds"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Interchangeable(t *testing.T) {
	in := sample{Name: "Magnitude", Size: 512, Seconds: map[string]float64{"Pointer": 0.0125}}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			var out sample
			require.NoError(t, dec.Unmarshal(MustMarshal(enc, in), &out), "%s -> %s", enc.Name(), dec.Name())
			assert.Equal(t, in, out)
		}
	}
}

func TestJSON_Indent(t *testing.T) {
	b, err := JSON{Indent: "  "}.Marshal(sample{Name: "x"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "\n  \"name\": \"x\""))
}

func TestGoJSON_Append(t *testing.T) {
	b, err := GoJSON{}.Append([]byte("prefix:"), sample{Name: "x"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), `prefix:{"name":"x"`))
}

func TestMustMarshal_Panics(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(nil, make(chan int)) })
}
