package internal

import "testing"

func expectPanic(t *testing.T, phase Phase, err error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		runErr, ok := r.(*runtimeError)
		if !ok {
			t.Errorf("Expected a runtime error panic, got %v", r)
			return
		}
		if runErr.phase != phase || runErr.err != err {
			t.Errorf("Expected %s %q, got %s %q", phase, err, runErr.phase, runErr.err)
		}
	}()
	fn()
}

func TestEnv(t *testing.T) {
	state := &interpreterState{logger: defaultLogger()}
	name := func(n string) *token {
		return &token{token: tkIdentifier, lexeme: n, line: 1}
	}

	globals := newEnv(state, nil)
	globals.define("a", loxNumber(1))
	block := newEnv(state, globals)
	block.define("b", loxNumber(2))
	inner := newEnv(state, block)

	if inner.get(name("a")) != loxNumber(1) || inner.get(name("b")) != loxNumber(2) {
		t.Errorf("Lookups should walk outwards")
	}

	inner.assign(name("a"), loxString("x"))
	if globals.get(name("a")) != loxString("x") {
		t.Errorf("Assignment should update the declaring environment")
	}

	inner.define("a", loxBool(true))
	if inner.get(name("a")) != loxBool(true) || globals.get(name("a")) != loxString("x") {
		t.Errorf("A definition should shadow outer ones")
	}

	if inner.getAt(1, name("b")) != loxNumber(2) || inner.getAt(2, name("a")) != loxString("x") {
		t.Errorf("getAt should read the environment at the given distance")
	}

	inner.assignAt(1, name("b"), nil)
	if block.get(name("b")) != nil {
		t.Errorf("assignAt should write the environment at the given distance")
	}

	expectPanic(t, PhaseRuntime, errUndefinedVar, func() {
		inner.get(name("missing"))
	})
	expectPanic(t, PhaseRuntime, errUndefinedVar, func() {
		inner.assign(name("missing"), nil)
	})

	// Resolved lookups never search further out
	expectPanic(t, PhaseInternal, errUnresolvedLocal, func() {
		inner.getAt(1, name("a"))
	})
	expectPanic(t, PhaseInternal, errUnresolvedLocal, func() {
		inner.assignAt(0, name("b"), nil)
	})
	expectPanic(t, PhaseInternal, errUnresolvedLocal, func() {
		inner.getAt(5, name("a"))
	})
}
