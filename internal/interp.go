package internal

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Status is the outcome of a Run
type Status int

const (
	// StatusOK everything ran
	StatusOK Status = iota
	// StatusStaticError scanning, parsing or resolution failed, nothing ran
	StatusStaticError
	// StatusRuntimeError at least one top level statement was aborted
	StatusRuntimeError
)

// Interpreter keeps globals alive between runs, so a REPL session can
// build on previous lines
type Interpreter struct {
	state *interpreterState
	exec  *exec
	repl  bool
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used for phase and diagnostic tracing
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		i.state.logger = logger
	}
}

// WithREPL enables echo of top level expressions and lets the last
// expression statement omit its semicolon
func WithREPL(repl bool) Option {
	return func(i *Interpreter) {
		i.repl = repl
	}
}

func defaultLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// NewInterpreter creates an interpreter printing through p
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	i := &Interpreter{
		state: &interpreterState{
			logger:  defaultLogger(),
			printer: p,
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	i.exec = newExec(i.state)
	return i
}

// Run scans, parses, resolves and executes source
func (i *Interpreter) Run(source string) Status {
	i.state.reset(source)
	log := i.state.logger.WithField("repl", i.repl)

	if !i.scan() {
		log.WithField("phase", PhaseScan).Debug("scan failed")
		return StatusStaticError
	}
	log.WithFields(logrus.Fields{"phase": PhaseScan, "tokens": len(i.state.tokens)}).Debug("scanned")

	i.parse()
	if !i.state.Valid() {
		log.WithField("phase", PhaseParse).Debug("parse failed")
		return StatusStaticError
	}
	log.WithFields(logrus.Fields{"phase": PhaseParse, "stmts": len(i.state.stmts)}).Debug("parsed")

	before := len(i.exec.locals)
	newResolver(i.state, i.exec.locals).resolve(i.state.stmts)
	if !i.state.Valid() {
		log.WithField("phase", PhaseResolve).Debug("resolution failed")
		return StatusStaticError
	}
	log.WithFields(logrus.Fields{"phase": PhaseResolve, "locals": len(i.exec.locals) - before}).Debug("resolved")

	ok := i.exec.interpret(i.state.stmts, i.repl)
	i.exec.logger().WithField("aborted", len(i.state.diagnostics)).Debug("executed")
	if !ok {
		return StatusRuntimeError
	}
	return StatusOK
}

func (i *Interpreter) scan() bool {
	lexer := &lexer{
		line:  1,
		state: i.state,
	}
	lexer.scan()
	return i.state.Valid()
}

func (i *Interpreter) parse() {
	parser := &parser{
		repl:  i.repl,
		state: i.state,
	}
	parser.parse()
}

// Diagnostics returns the diagnostics of the last Run
func (i *Interpreter) Diagnostics() []Diagnostic {
	return i.state.diagnostics
}

// PrintErrors prints the diagnostics of the last Run, returns true if any
func (i *Interpreter) PrintErrors() bool {
	return i.state.PrintErrors()
}
