package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// DecodeStrict unmarshals data into a fresh value of the struct type t,
// rejecting unknown fields. Decoding into a fresh value means a failed
// decode never leaves a partially written result behind. An empty or
// null payload yields the zero value. The returned value has type t
// (pointers are allocated through to the struct).
func DecodeStrict(data []byte, t reflect.Type) (reflect.Value, error) {
	base := deref(t)
	if base.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("schema: %s is not a struct", t)
	}

	v := reflect.New(base)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v.Interface()); err != nil {
			return reflect.Value{}, err
		}
	}

	return repoint(v, t), nil
}

// DecodeStringMap binds a string-valued argument map (the shape prompt
// arguments arrive in) to a fresh value of the struct type t, rejecting
// unknown keys.
func DecodeStringMap(args map[string]string, t reflect.Type) (reflect.Value, error) {
	if len(args) == 0 {
		return DecodeStrict(nil, t)
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return reflect.Value{}, err
	}
	return DecodeStrict(raw, t)
}

// repoint rewraps the decoded *struct value to match the declared type:
// the struct itself, or a pointer of any depth to it.
func repoint(v reflect.Value, t reflect.Type) reflect.Value {
	if t.Kind() != reflect.Pointer {
		return v.Elem()
	}
	for t.Elem().Kind() == reflect.Pointer {
		outer := reflect.New(t.Elem())
		outer.Elem().Set(v)
		v = outer
		t = t.Elem()
	}
	return v
}
