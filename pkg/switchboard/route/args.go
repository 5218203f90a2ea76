package route

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Args are the arguments a route was navigated with.
type Args map[string]any

// Values may be host types with unexported state (models, *big.Int); those
// fields take part in the comparison instead of making cmp panic.
var argsOptions = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal reports whether a and b are deeply equal. A nil Args equals an empty one.
func Equal(a, b Args) bool {
	return cmp.Equal(a, b, argsOptions...)
}

// Clone returns a shallow copy of a. Clone of nil is an empty, non-nil Args.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
