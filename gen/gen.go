// Package gen derives values of compound types from a splittable
// generator.
//
// Scalars are drawn from the generator's sequential output. Arrays and
// structs are generated component by component, and every component
// gets its own child obtained with Split: the parent never feeds a
// component directly. Because a split only depends on the parent's
// state, how many words one component consumes cannot change the bits
// any other component sees. Structs therefore behave as tuples of any
// arity.
//
// Single-argument functions are generated as deterministic mappings: a
// branch factory is frozen when the function is built, and each call
// hashes its argument to an index into that factory.
package gen

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/lox/splitrand/split"
)

// ErrUnsupported is returned for types that cannot be generated.
var ErrUnsupported = errors.New("gen: unsupported type")

// Char is a rune that is generated as a valid Unicode scalar value. A
// plain rune is an int32 and is generated as one.
type Char rune

var charType = reflect.TypeOf(Char(0))

// Fill generates a value for the variable ptr points to. Nothing is
// drawn from g if the type is rejected.
func Fill[G split.Splitter[G]](g G, ptr any) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: need a non-nil pointer, got %T", ErrUnsupported, ptr)
	}
	if err := check(v.Type().Elem(), make(map[reflect.Type]bool)); err != nil {
		return err
	}
	fill(g, v.Elem())
	return nil
}

// Value generates a value of type T.
func Value[T any, G split.Splitter[G]](g G) (T, error) {
	var v T
	err := Fill(g, &v)
	return v, err
}

// MustValue is like Value but panics if T cannot be generated.
func MustValue[T any, G split.Splitter[G]](g G) T {
	v, err := Value[T](g)
	if err != nil {
		panic(err)
	}
	return v
}

// Func generates a deterministic function from A to B.
func Func[A, B any, G split.Splitter[G]](g G) (func(A) B, error) {
	return Value[func(A) B](g)
}

// check reports whether values of t can be generated. Types already
// in seen are being checked further up and are accepted.
func check(t reflect.Type, seen map[reflect.Type]bool) error {
	if t == charType || seen[t] {
		return nil
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Array:
		return check(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				return fmt.Errorf("%w: %s has unexported field %s", ErrUnsupported, t, f.Name)
			}
			if err := check(f.Type, seen); err != nil {
				return err
			}
		}
		return nil
	case reflect.Func:
		if t.NumIn() != 1 || t.NumOut() != 1 || t.IsVariadic() {
			return fmt.Errorf("%w: %s must take one argument and return one value", ErrUnsupported, t)
		}
		if err := checkKey(t.In(0), make(map[reflect.Type]bool)); err != nil {
			return err
		}
		return check(t.Out(0), seen)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, t)
}

func fill[G split.Splitter[G]](g G, v reflect.Value) {
	if v.Type() == charType {
		v.SetInt(int64(char(g)))
		return
	}
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(g.Uint32()&1 == 1)
	case reflect.Int8, reflect.Int16, reflect.Int32:
		v.SetInt(int64(int32(g.Uint32())))
	case reflect.Int, reflect.Int64:
		v.SetInt(int64(g.Uint64()))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		v.SetUint(uint64(g.Uint32()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		v.SetUint(g.Uint64())
	case reflect.Float32:
		v.SetFloat(float64(g.Uint32()>>8) / (1 << 24))
	case reflect.Float64:
		v.SetFloat(float64(g.Uint64()>>11) / (1 << 53))
	case reflect.Array:
		for i := range v.Len() {
			fill(g.Split(), v.Index(i))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			fill(g.Split(), v.Field(i))
		}
	case reflect.Func:
		v.Set(makeFunc(g, v.Type()))
	default:
		panic("gen: unchecked type " + v.Type().String())
	}
}

// char draws a Unicode scalar value by rejection, skipping surrogates.
func char[G split.Splitter[G]](g G) rune {
	for {
		c := rune(g.Uint32() & 0x1f_ffff)
		if utf8.ValidRune(c) {
			return c
		}
	}
}
