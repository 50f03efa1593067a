// Package rpcjson parses the loosely typed JSON parameters of the peg RPC calls.
//
// Objects are decoded into an ordered field list so duplicate keys and key order
// survive parsing.
package rpcjson

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
)

// Kind is the JSON type of a raw value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the JSON type of raw. A nil or empty value is null.
func KindOf(raw json.RawMessage) Kind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return KindNull
	}
	switch c := trimmed[0]; {
	case c == 'n':
		return KindNull
	case c == 't' || c == 'f':
		return KindBool
	case c == '"':
		return KindString
	case c == '[':
		return KindArray
	case c == '{':
		return KindObject
	case c == '-' || (c >= '0' && c <= '9'):
		return KindNumber
	default:
		return KindInvalid
	}
}

// IsNull reports whether raw is absent or JSON null.
func IsNull(raw json.RawMessage) bool {
	return KindOf(raw) == KindNull
}

func typeError(want Kind) error {
	return rpcerr.Newf(rpcerr.Type, "JSON value is not %s %s as expected", article(want), want)
}

func article(k Kind) string {
	if k == KindArray || k == KindObject {
		return "an"
	}
	return "a"
}

// Field is a single key/value pair of an ordered object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object in document order, duplicates included.
type Object []Field

// ParseObject decodes raw as an ordered object.
func ParseObject(raw json.RawMessage) (Object, error) {
	if KindOf(raw) != KindObject {
		return nil, typeError(KindObject)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, rpcerr.Newf(rpcerr.Malformed, "decode object: %v", err)
	}

	var obj Object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, rpcerr.Newf(rpcerr.Malformed, "decode object key: %v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, rpcerr.New(rpcerr.Malformed, "object key is not a string")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, rpcerr.Newf(rpcerr.Malformed, "decode value of %q: %v", key, err)
		}
		obj = append(obj, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, rpcerr.Newf(rpcerr.Malformed, "decode object: %v", err)
	}
	return obj, nil
}

// Get returns the value of the first field named key, or nil.
func (o Object) Get(key string) json.RawMessage {
	for _, f := range o {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Has reports whether key is present, even with a null value.
func (o Object) Has(key string) bool {
	for _, f := range o {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the field names in document order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Key)
	}
	return keys
}

// ParseArray decodes raw as an array of raw elements.
func ParseArray(raw json.RawMessage) ([]json.RawMessage, error) {
	if KindOf(raw) != KindArray {
		return nil, typeError(KindArray)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, rpcerr.Newf(rpcerr.Malformed, "decode array: %v", err)
	}
	return items, nil
}

// String decodes raw as a JSON string.
func String(raw json.RawMessage) (string, error) {
	if KindOf(raw) != KindString {
		return "", typeError(KindString)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", rpcerr.Newf(rpcerr.Malformed, "decode string: %v", err)
	}
	return s, nil
}

// Bool decodes raw as a JSON boolean.
func Bool(raw json.RawMessage) (bool, error) {
	if KindOf(raw) != KindBool {
		return false, typeError(KindBool)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, rpcerr.Newf(rpcerr.Malformed, "decode bool: %v", err)
	}
	return b, nil
}

// Int64 decodes raw as an integral JSON number.
func Int64(raw json.RawMessage) (int64, error) {
	if KindOf(raw) != KindNumber {
		return 0, typeError(KindNumber)
	}
	v, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return 0, rpcerr.New(rpcerr.Type, "JSON integer out of range")
	}
	return v, nil
}

// Int32 decodes raw as an integral JSON number that fits 32 signed bits.
func Int32(raw json.RawMessage) (int32, error) {
	v, err := Int64(raw)
	if err != nil {
		return 0, err
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, rpcerr.New(rpcerr.Type, "JSON integer out of range")
	}
	return int32(v), nil
}

// ValStr renders a scalar the way it appears in the document: strings unquoted,
// numbers and booleans verbatim.
func ValStr(raw json.RawMessage) string {
	switch KindOf(raw) {
	case KindString:
		s, err := String(raw)
		if err != nil {
			return ""
		}
		return s
	case KindNumber, KindBool:
		return string(bytes.TrimSpace(raw))
	default:
		return ""
	}
}

// Quote renders s as a JSON string literal.
func Quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// FieldType names the expected type of an object field.
type FieldType struct {
	Key  string
	Kind Kind
}

// CheckTypes verifies the types of the named fields of o. Absent or null
// fields fail with "Missing <key>" unless allowNull is set.
func CheckTypes(o Object, allowNull bool, fields ...FieldType) error {
	for _, f := range fields {
		kind := KindOf(o.Get(f.Key))
		if kind == KindNull {
			if allowNull {
				continue
			}
			return rpcerr.Newf(rpcerr.Type, "Missing %s", f.Key)
		}
		if kind != f.Kind {
			return rpcerr.Newf(rpcerr.Type, "Expected type %s for %s, got %s", f.Kind, f.Key, kind)
		}
	}
	return nil
}
