// Package sexpenv implements the Environment component: a singly
// linked list of (name, sexp, defining-environment) bindings used for
// macro-parameter substitution with lexical (closure) semantics.
package sexpenv

import "github.com/sourcegraph/mailquery/internal/sexp"

// Env is the head of a binding chain, or nil for the empty environment.
type Env struct {
	name   string
	sx     *sexp.Node
	define *Env // the environment in effect when this binding's sexp was written
	next   *Env
}

// Bind prepends a new binding to env and returns the new head. define
// is the environment that was visible at the point the binding's sexp
// was authored (for a macro argument, the caller's environment at the
// call site, not the environment the macro body is evaluated in);
// resolving this binding later switches evaluation to define, giving
// call-by-name semantics with lexical capture.
func Bind(env *Env, name string, sx *sexp.Node, define *Env) *Env {
	return &Env{name: name, sx: sx, define: define, next: env}
}

// Binding is the result of a successful Resolve.
type Binding struct {
	Sexp    *sexp.Node
	Defines *Env
}

// Resolve performs a linear, first-match lookup of name starting at
// the head of env. The returned bool is false if no binding exists.
func Resolve(env *Env, name string) (Binding, bool) {
	for b := env; b != nil; b = b.next {
		if b.name == name {
			return Binding{Sexp: b.sx, Defines: b.define}, true
		}
	}
	return Binding{}, false
}
