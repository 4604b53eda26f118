package testcase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-network/secretrecovery/common"
)

const sampleCase = `{
  "keys": { "n": 4, "k": 3 },
  "1": { "base": "10", "value": "4" },
  "2": { "base": "2", "value": "111" },
  "3": { "base": "10", "value": "12" },
  "6": { "base": "4", "value": "213" }
}`

func TestParse(t *testing.T) {
	tc, err := Parse("sample", []byte(sampleCase))
	require.NoError(t, err)

	assert.Equal(t, "sample", tc.Name)
	assert.Equal(t, 4, tc.N)
	assert.Equal(t, 3, tc.K)
	require.Len(t, tc.Points, 4)
	assert.Equal(t, "(1, 4) (2, 7) (3, 12) (6, 39)", pointsString(tc.Points))
}

func pointsString(points []common.Point) string {
	s := ""
	for i, p := range points {
		if i > 0 {
			s += " "
		}
		s += p.String()
	}
	return s
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	data := `{
  "10": { "base": "16", "value": "ff" },
  "keys": { "n": 3, "k": 2 },
  "3": { "base": "10", "value": "5" },
  "7": { "base": "36", "value": "Z" }
}`
	tc, err := Parse("order", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "(10, 255) (3, 5) (7, 35)", pointsString(tc.Points))
}

func TestParseNumericBase(t *testing.T) {
	data := `{"keys":{"n":1,"k":1},"5":{"base":8,"value":"17"}}`
	tc, err := Parse("numeric", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "(5, 15)", pointsString(tc.Points))
}

func TestParseAdvisoryN(t *testing.T) {
	data := `{"keys":{"n":9,"k":1},"1":{"base":"10","value":"1"}}`
	tc, err := Parse("n", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 9, tc.N)
	assert.Len(t, tc.Points, 1)

	data = `{"keys":{"k":1},"1":{"base":"10","value":"1"}}`
	tc, err = Parse("no-n", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 0, tc.N)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `{"keys": {"n": 1, "k": 1}`,
		"not an object":    `[1, 2, 3]`,
		"missing keys":     `{"1": {"base": "10", "value": "1"}}`,
		"missing k":        `{"keys": {"n": 1}, "1": {"base": "10", "value": "1"}}`,
		"fractional k":     `{"keys": {"n": 1, "k": 1.5}, "1": {"base": "10", "value": "1"}}`,
		"zero k":           `{"keys": {"n": 1, "k": 0}, "1": {"base": "10", "value": "1"}}`,
		"bad x":            `{"keys": {"n": 1, "k": 1}, "one": {"base": "10", "value": "1"}}`,
		"bad digit":        `{"keys": {"n": 1, "k": 1}, "1": {"base": "2", "value": "9"}}`,
		"bad base":         `{"keys": {"n": 1, "k": 1}, "1": {"base": "40", "value": "1"}}`,
		"missing base":     `{"keys": {"n": 1, "k": 1}, "1": {"value": "1"}}`,
		"empty value":      `{"keys": {"n": 1, "k": 1}, "1": {"base": "10", "value": ""}}`,
		"point not object": `{"keys": {"n": 1, "k": 1}, "1": "10"}`,
	}
	for name, data := range cases {
		_, err := Parse(name, []byte(data))
		assert.True(t, errors.Is(err, common.ErrDecode), "%s: %v", name, err)
		assert.True(t, IsDecodeError(err), name)
	}
}

func TestParseBadDigitNamesPoint(t *testing.T) {
	_, err := Parse("digit", []byte(`{"keys":{"n":1,"k":1},"4":{"base":"2","value":"9"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point 4")
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestParseMissingPointObject(t *testing.T) {
	cases := map[string]string{
		"null point":   `{"keys":{"n":2,"k":1},"1":{"base":"10","value":"1"},"7":null}`,
		"missing base": `{"keys":{"n":2,"k":1},"1":{"base":"10","value":"1"},"7":{"value":"1"}}`,
	}
	for name, data := range cases {
		_, err := Parse(name, []byte(data))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrMalformed), "%s: %v", name, err)
		assert.Contains(t, err.Error(), "point 7", name)
	}
}
