package calculator

import (
	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Env is a symbol environment: a global map of names to values with a stack
// of local bindings per name. Function parameters are bound as locals for the
// duration of a call and found by name at evaluation time, so scoping is
// dynamic rather than lexical: a function body sees the parameters of every
// call that is still in progress.
//
// An Env is not safe for concurrent use. Use Clone to give each goroutine
// its own.
type Env struct {
	globals map[string]number.Number
	locals  map[string][]number.Number
	// digits is the precision requested of special functions.
	digits int
	// depth is the number of function calls in progress.
	depth int
}

// EnvOption is an option for creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  number.Number
	}
	varsopt   map[string]number.Number
	digitsopt int
	nobuiltin struct{}
)

func (*varopt) envOption()   {}
func (varsopt) envOption()   {}
func (digitsopt) envOption() {}
func (nobuiltin) envOption() {}

// SetVar sets a global variable in the environment. It is applied after the
// builtins, so it can replace them.
func SetVar(name string, val number.Number) EnvOption {
	return &varopt{name: name, val: val}
}

// SetVars sets a group of global variables.
func SetVars(vars map[string]number.Number) EnvOption {
	return varsopt(vars)
}

// Digits sets the number of significant decimal digits to which special
// functions and constants like pi are computed. Zero, the default, derives the
// precision from each operand: machine precision for small values and
// number.BigPrec bits for big ones. Panics if n is negative.
func Digits(n int) EnvOption {
	if n < 0 {
		panic("calculator: negative digits")
	}
	return digitsopt(n)
}

// NoBuiltins creates the environment without the builtin functions and
// constants.
func NoBuiltins() EnvOption {
	return nobuiltin{}
}

// NewEnv creates an environment holding the builtin functions and constants.
func NewEnv(opts ...EnvOption) *Env {
	env := &Env{
		globals: make(map[string]number.Number),
		locals:  make(map[string][]number.Number),
	}
	builtins := true
	for _, opt := range opts {
		switch opt := opt.(type) {
		case digitsopt:
			env.digits = int(opt)
		case nobuiltin:
			builtins = false
		}
	}
	if builtins {
		for name, f := range builtinFuncs {
			env.globals[name] = f
		}
		for name, c := range constants(env.Precision()) {
			env.globals[name] = c
		}
	}
	env.apply(opts)
	return env
}

// apply sets the variables given in opts.
func (env *Env) apply(opts []EnvOption) {
	for _, opt := range opts {
		switch opt := opt.(type) {
		case *varopt:
			env.globals[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				env.globals[k] = v
			}
		case digitsopt, nobuiltin:
			// Handled at creation.
		default:
			panic("calculator: unknown env option")
		}
	}
}

// Clone creates a copy of the environment's globals with additional options.
// Local bindings are not copied. Digits changes the precision of the copy but
// does not recompute constants already defined.
func (env *Env) Clone(opts ...EnvOption) *Env {
	r := &Env{
		globals: make(map[string]number.Number, len(env.globals)),
		locals:  make(map[string][]number.Number),
		digits:  env.digits,
	}
	for k, v := range env.globals {
		r.globals[k] = v
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case digitsopt:
			r.digits = int(opt)
		case nobuiltin:
			for name := range builtinFuncs {
				delete(r.globals, name)
			}
			for name := range constants(number.Precision{}) {
				delete(r.globals, name)
			}
		}
	}
	r.apply(opts)
	return r
}

// Precision returns the precision requested of special functions.
func (env *Env) Precision() number.Precision {
	return number.Precision{Digits: env.digits}
}

// Get returns the value bound to name: the innermost local binding if there is
// one, or else the global value. The error is a *NameError if name is not
// bound.
func (env *Env) Get(name string) (number.Number, error) {
	if s := env.locals[name]; len(s) > 0 {
		return s[len(s)-1], nil
	}
	if v, ok := env.globals[name]; ok {
		return v, nil
	}
	return nil, &NameError{Name: name}
}

// Put sets the global value of name.
func (env *Env) Put(name string, val number.Number) {
	env.globals[name] = val
}

// PushLocal binds name to val until the matching PopLocal.
func (env *Env) PushLocal(name string, val number.Number) {
	env.locals[name] = append(env.locals[name], val)
}

// PopLocal removes the innermost local binding of name. Panics if name has no
// local binding.
func (env *Env) PopLocal(name string) {
	s := env.locals[name]
	if len(s) == 0 {
		panic("calculator: pop of unbound local " + name)
	}
	s[len(s)-1] = nil
	if len(s) == 1 {
		delete(env.locals, name)
		return
	}
	env.locals[name] = s[:len(s)-1]
}

// Names returns the sorted names of the global variables.
func (env *Env) Names() []string {
	m := make(map[string]bool, len(env.globals))
	for k := range env.globals {
		m[k] = true
	}
	return sortstrs(m)
}
