package testcase

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/secretrecovery/common"
)

const KeysField = "keys"

var ErrMalformed = fmt.Errorf("%w: malformed test case", common.ErrDecode)

// A decoded test case.
type TestCase struct {
	Name string
	N    int
	K    int
	// In document key order, not sorted by x.
	Points []common.Point
}

type keyInfo struct {
	N *json.Number `json:"n"`
	K *json.Number `json:"k"`
}

type rootValue struct {
	Base  baseField `json:"base"`
	Value string    `json:"value"`
}

// The base is written as a JSON string in test cases, but a bare integer is
// accepted too.
type baseField string

func (b *baseField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = baseField(s)
		return nil
	}
	*b = baseField(data)
	return nil
}

func parseCount(field string, n *json.Number) (int, error) {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("%w: keys.%s %q is not an integer", ErrMalformed, field, n.String())
	}
	return v, nil
}

// Parse decodes a test case document.
func Parse(name string, data []byte) (*TestCase, error) {
	ordered := orderedmap.New()
	if err := json.Unmarshal(data, &ordered); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	rawKeys, ok := raw[KeysField]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q object", ErrMalformed, KeysField)
	}
	var keys keyInfo
	if err := json.Unmarshal(rawKeys, &keys); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, KeysField, err)
	}
	if keys.K == nil {
		return nil, fmt.Errorf("%w: missing keys.k", ErrMalformed)
	}

	tc := &TestCase{Name: name}
	var err error
	if tc.K, err = parseCount("k", keys.K); err != nil {
		return nil, err
	}
	if tc.K < 1 {
		return nil, fmt.Errorf("%w: keys.k must be positive, got %d", ErrMalformed, tc.K)
	}
	if keys.N != nil {
		if tc.N, err = parseCount("n", keys.N); err != nil {
			return nil, err
		}
	}

	for _, key := range ordered.Keys() {
		if key == KeysField {
			continue
		}
		point, err := parsePoint(key, raw[key])
		if err != nil {
			return nil, err
		}
		tc.Points = append(tc.Points, point)
	}

	if keys.N != nil && tc.N != len(tc.Points) {
		log.WithFields(log.Fields{
			"Name":   name,
			"N":      tc.N,
			"Points": len(tc.Points),
		}).Warn("testcase: keys.n does not match the number of points")
	}
	return tc, nil
}

func parsePoint(key string, data json.RawMessage) (common.Point, error) {
	x, ok := new(big.Int).SetString(key, 10)
	if !ok {
		return common.Point{}, fmt.Errorf("%w: key %q is not a decimal integer", ErrMalformed, key)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return common.Point{}, fmt.Errorf("%w: point %s: missing point object", ErrMalformed, key)
	}
	var root rootValue
	if err := json.Unmarshal(data, &root); err != nil {
		return common.Point{}, fmt.Errorf("%w: point %s: %v", ErrMalformed, key, err)
	}
	if root.Base == "" {
		return common.Point{}, fmt.Errorf("%w: point %s: missing base", ErrMalformed, key)
	}

	base, err := common.ParseBase(string(root.Base))
	if err != nil {
		return common.Point{}, fmt.Errorf("point %s: %w", key, err)
	}
	y, err := common.DecodeValue(base, root.Value)
	if err != nil {
		return common.Point{}, fmt.Errorf("point %s: %w", key, err)
	}
	return common.NewPoint(x, y), nil
}

// IsDecodeError reports whether err came from decoding a document, as opposed
// to loading it.
func IsDecodeError(err error) bool {
	return errors.Is(err, common.ErrDecode)
}
