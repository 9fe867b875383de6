package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/errors"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMarshalRoundTrip(t *testing.T) {
	out, err := Marshal(sample{Name: "bucket", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"bucket","count":3}`, string(out))

	var got sample
	require.NoError(t, Unmarshal(out, &got))
	assert.Equal(t, sample{Name: "bucket", Count: 3}, got)
}

func TestMarshalOwnsOutput(t *testing.T) {
	first, err := Marshal(sample{Name: "a"})
	require.NoError(t, err)
	snapshot := string(first)

	// A second marshal reuses the pooled buffer; the first result must be
	// unaffected.
	_, err = Marshal(sample{Name: "completely different payload"})
	require.NoError(t, err)
	assert.Equal(t, snapshot, string(first))
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample{Name: "x", Count: 1}))

	var got sample
	require.NoError(t, Decode(&buf, &got))
	assert.Equal(t, "x", got.Name)
}

func TestDecodeErrorIsTyped(t *testing.T) {
	var got sample
	err := Unmarshal([]byte(`{"name":`), &got)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSerialization))
}
