package gen

import (
	"fmt"
	"reflect"

	"github.com/dchest/siphash"
	"github.com/fxamacker/cbor/v2"

	"github.com/lox/splitrand/split"
)

// argEncoding treats a nil slice or map as equal to an empty one.
var argEncoding = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	opts.NilContainers = cbor.NilContainerAsEmpty
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// makeFunc builds a function of type t whose results are drawn from a
// branch factory frozen now. The argument is encoded canonically and
// hashed with SipHash-2-4 under a key drawn from its own split child.
func makeFunc[G split.Splitter[G]](g G, t reflect.Type) reflect.Value {
	key := g.Split()
	k0, k1 := key.Uint64(), key.Uint64()
	branch := g.Branch()
	out := t.Out(0)

	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		res := reflect.New(out).Elem()
		fill(branch.Call(hashArg(k0, k1, args[0])), res)
		return []reflect.Value{res}
	})
}

func hashArg(k0, k1 uint64, arg reflect.Value) uint64 {
	b, err := argEncoding.Marshal(arg.Interface())
	if err != nil {
		// checkKey admits only types the encoder handles
		panic(fmt.Sprintf("gen: encoding %s argument: %v", arg.Type(), err))
	}
	return siphash.Hash(k0, k1, b)
}

// checkKey reports whether t can be used as a generated function's
// argument. Arguments must have a canonical encoding that depends only
// on their value.
func checkKey(t reflect.Type, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Array, reflect.Slice:
		return checkKey(t.Elem(), seen)
	case reflect.Map:
		if err := checkKey(t.Key(), seen); err != nil {
			return err
		}
		return checkKey(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				return fmt.Errorf("%w: argument %s has unexported field %s", ErrUnsupported, t, f.Name)
			}
			if err := checkKey(f.Type, seen); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: argument type %s", ErrUnsupported, t)
}
