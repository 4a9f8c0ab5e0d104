package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

type SpecKind uint8

const (
	SpecString SpecKind = iota + 1
	SpecNumber
	SpecBool
)

// SpecValue is one value of an equipment specification: a string, a number or a boolean.
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	b    bool
}

func StringSpec(s string) SpecValue  { return SpecValue{kind: SpecString, str: s} }
func NumberSpec(n float64) SpecValue { return SpecValue{kind: SpecNumber, num: n} }
func BoolSpec(b bool) SpecValue      { return SpecValue{kind: SpecBool, b: b} }

func (v SpecValue) Kind() SpecKind { return v.kind }

func (v SpecValue) AsString() (string, bool) { return v.str, v.kind == SpecString }

func (v SpecValue) AsNumber() (float64, bool) { return v.num, v.kind == SpecNumber }

func (v SpecValue) AsBool() (bool, bool) { return v.b, v.kind == SpecBool }

// String renders the value for display.
func (v SpecValue) String() string {
	switch v.kind {
	case SpecNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SpecNumber:
		return json.Marshal(v.num)
	case SpecBool:
		return json.Marshal(v.b)
	case SpecString:
		return json.Marshal(v.str)
	default:
		return nil, fmt.Errorf("spec value has no kind")
	}
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty spec value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringSpec(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolSpec(b)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberSpec(n)
	default:
		return fmt.Errorf("spec value must be a string, number or boolean, got %s", string(data))
	}
	return nil
}

// Specifications is the key-value bag of equipment attributes, stored as JSONB.
type Specifications map[string]SpecValue

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]SpecValue(s))
}

func (s *Specifications) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Specifications{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("specifications: unsupported type %T", src)
	}

	m := make(map[string]SpecValue)
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("specifications: %w", err)
	}
	*s = m
	return nil
}
