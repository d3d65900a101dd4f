// Package conditions compiles the -c filter expression into a predicate.
//
// The expression is JavaScript, evaluated once per record with the decoded
// record bound as both `this` and `rec`. A record passes when the expression
// is truthy.
package conditions

import (
	"encoding/json"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Predicate struct {
	vm   *goja.Runtime
	fn   goja.Callable
	expr string
}

// Compile builds the predicate. A syntax error in the expression fails the
// whole run; it never fails per line.
func Compile(expr string) (*Predicate, error) {
	vm := goja.New()

	v, err := vm.RunString("(function(rec){\nreturn (" + expr + ");\n})")
	if err != nil {
		return nil, errors.Wrapf(err, "compile condition %q", expr)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.Errorf("condition %q did not compile to a function", expr)
	}

	return &Predicate{vm: vm, fn: fn, expr: expr}, nil
}

func (p *Predicate) String() string {
	return p.expr
}

// Matches evaluates the predicate against the raw line text. Lines that do
// not decode, and evaluation errors, count as non-matching. Numeric fields
// decode as float64 so they cross into the VM as JS numbers, not strings.
func (p *Predicate) Matches(rawLine string) bool {
	var rec map[string]any
	if err := json.Unmarshal([]byte(rawLine), &rec); err != nil {
		return false
	}

	obj := p.vm.ToValue(rec)
	res, err := p.fn(obj, obj)
	if err != nil {
		log.Warn().Str("condition", p.expr).Err(err).Msg("condition evaluation failed")
		return false
	}
	return res.ToBoolean()
}
