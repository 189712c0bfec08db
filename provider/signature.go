package provider

import (
	"context"
	"fmt"
	"reflect"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// splitInputs reports whether the method takes a leading context.Context
// and returns the remaining parameter types. Variadic methods never
// match a shape.
func splitInputs(ft reflect.Type) (wantsCtx bool, rest []reflect.Type, ok bool) {
	if ft.IsVariadic() {
		return false, nil, false
	}
	n := ft.NumIn()
	i := 0
	if n > 0 && ft.In(0) == ctxType {
		wantsCtx = true
		i = 1
	}
	for ; i < n; i++ {
		rest = append(rest, ft.In(i))
	}
	return wantsCtx, rest, true
}

// splitOutputs returns the method's result types with a trailing error
// split off. More than one non-error result never matches a shape.
func splitOutputs(ft reflect.Type) (out reflect.Type, hasErr bool, ok bool) {
	switch ft.NumOut() {
	case 0:
		return nil, false, true
	case 1:
		if ft.Out(0) == errType {
			return nil, true, true
		}
		return ft.Out(0), false, true
	case 2:
		if ft.Out(1) != errType {
			return nil, false, false
		}
		return ft.Out(0), true, true
	default:
		return nil, false, false
	}
}

// call invokes a bound method with panic recovery. A panicking handler
// is reported as an error rather than unwinding into the SDK.
func call(ctx context.Context, fn reflect.Value, wantsCtx bool, args []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	in := args
	if wantsCtx {
		in = append([]reflect.Value{reflect.ValueOf(ctx)}, args...)
	}
	return fn.Call(in), nil
}

// callErr extracts the trailing error result, if the shape declared one.
func callErr(out []reflect.Value, hasErr bool) error {
	if !hasErr || len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}
