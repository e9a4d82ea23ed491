package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Phase names the stage of the pipeline that reported a diagnostic
type Phase string

const (
	PhaseScan     Phase = "scan"
	PhaseParse    Phase = "parse"
	PhaseResolve  Phase = "resolve"
	PhaseRuntime  Phase = "runtime"
	PhaseInternal Phase = "internal"
)

// ErrorKind groups errors by the way they fail
type ErrorKind string

const (
	KindSyntax            ErrorKind = "SyntaxError"
	KindResolution        ErrorKind = "ResolutionError"
	KindType              ErrorKind = "TypeError"
	KindUndefinedVariable ErrorKind = "UndefinedVariable"
	KindUndefinedProperty ErrorKind = "UndefinedProperty"
	KindDivisionByZero    ErrorKind = "DivisionByZero"
	KindArityMismatch     ErrorKind = "ArityMismatch"
	KindNotCallable       ErrorKind = "NotCallable"
	KindIndex             ErrorKind = "IndexError"
	KindInternal          ErrorKind = "InternalError"
)

// Diagnostic is one entry of the diagnostic channel
type Diagnostic struct {
	Phase  Phase
	Line   int
	Lexeme string
	Err    error
}

// Kind returns the error kind of the diagnostic
func (d Diagnostic) Kind() ErrorKind {
	if d.Phase == PhaseInternal {
		return KindInternal
	}
	return KindOf(d.Err)
}

func (d Diagnostic) String() string {
	title := strings.ToUpper(string(d.Phase[:1])) + string(d.Phase[1:])
	if d.Lexeme == "" {
		return fmt.Sprintf("%s Error on line %d\n\t%s", title, d.Line, d.Err)
	}
	return fmt.Sprintf("%s Error on line %d\n\t%s: %s", title, d.Line, d.Err, d.Lexeme)
}

type runtimeError struct {
	phase Phase
	err   error
	token *token
}

func (r *runtimeError) Error() string {
	return r.err.Error()
}

// parseError unwinds the parser back to the statement being parsed
type parseError struct {
	err error
}

type interpreterState struct {
	source      string
	tokens      []token
	stmts       []stmt
	diagnostics []Diagnostic

	logger  logrus.FieldLogger
	printer IPrinter
}

func (s *interpreterState) reset(source string) {
	s.source = source
	s.tokens = nil
	s.stmts = nil
	s.diagnostics = nil
}

func (s *interpreterState) setError(phase Phase, err error, line int, lexeme string) {
	d := Diagnostic{
		Phase:  phase,
		Line:   line,
		Lexeme: lexeme,
		Err:    err,
	}
	s.diagnostics = append(s.diagnostics, d)
	s.logger.WithFields(logrus.Fields{
		"phase":  phase,
		"line":   line,
		"lexeme": lexeme,
		"kind":   d.Kind(),
	}).Debug(err)
}

func (s *interpreterState) tokenError(phase Phase, err error, tk *token) {
	s.setError(phase, err, tk.line, tk.lexeme)
}

func (s *interpreterState) fatalError(err error, tk *token) {
	s.tokenError(PhaseParse, err, tk)
	panic(parseError{err: err})
}

func (s *interpreterState) runtimeErr(err error, tk *token) {
	panic(&runtimeError{phase: PhaseRuntime, err: err, token: tk})
}

func (s *interpreterState) internalErr(err error, tk *token) {
	panic(&runtimeError{phase: PhaseInternal, err: err, token: tk})
}

// Valid returns true if no diagnostic has been recorded
func (s *interpreterState) Valid() bool {
	return len(s.diagnostics) == 0
}

// PrintErrors prints all errors, returns true if any was printed
func (s *interpreterState) PrintErrors() bool {
	for _, d := range s.diagnostics {
		s.printer.Fprintln(os.Stderr, d.String())
	}
	return len(s.diagnostics) > 0
}

// KindOf maps an error produced by the interpreter to its kind
func KindOf(err error) ErrorKind {
	for e, kind := range errorKinds {
		if errors.Is(err, e) {
			return kind
		}
	}
	return KindInternal
}

// Lexer errors
var errIllegalChar = errors.New("Unexpected character")
var errUnclosedString = errors.New("Closing \" was expected")
var errUnclosedComment = errors.New("Closing */ was expected")

// Parser errors
var errUnclosedParen = errors.New("Expect ')' after expression")
var errUnclosedBracket = errors.New("Expect ']' after array elements")
var errExpectedOpeningParen = errors.New("Expect '(' here")
var errExpectedOpeningCurlyBrace = errors.New("Expect '{' here")
var errExpectedClosingCurlyBrace = errors.New("Expect '}' here")
var errExpectedSemicolon = errors.New("Expect ';' here")
var errExpectedColon = errors.New("Expect ':' after then branch of conditional expression")
var errExpectedProp = errors.New("Expect property name after '.'")
var errExpectedDot = errors.New("Expect '.' after 'super'")
var errExpectedFunctionName = errors.New("Expect function name")
var errExpectedFunctionParam = errors.New("Expect parameter name")
var errExpectedIdentifier = errors.New("Expect variable name")
var errExpectedClassName = errors.New("Expect class name")
var errExpectedSuperclassName = errors.New("Expect superclass name")
var errUndefinedExpr = errors.New("Expect expression")
var errInvalidAssignment = errors.New("Invalid assignment target")
var errMaxParameters = errors.New("Can't have more than 255 parameters")
var errMaxArguments = errors.New("Can't have more than 255 arguments")

// Resolver errors
var errAlreadyDeclared = errors.New("A variable with this name already exists in this scope")
var errReadInOwnInitializer = errors.New("Can't read local variable in its own initializer")
var errInheritFromSelf = errors.New("A class can't inherit from itself")
var errReturnTopLevel = errors.New("Can't return from top-level code")
var errReturnFromInit = errors.New("Can't return a value from an initializer")
var errBreakOutsideLoop = errors.New("Can use 'break' only inside loop bodies")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class")
var errThisInStatic = errors.New("Can't use 'this' inside a static method")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass")
var errSuperInStatic = errors.New("Can't use 'super' in a static method")

// Runtime errors
var errOnlyNumbers = errors.New("Operands must be numbers")
var errOnlyNumber = errors.New("Operand must be a number")
var errOperandsAdd = errors.New("Operands must be two numbers or at least one string")
var errDivisionByZero = errors.New("Division by zero")
var errUndefinedVar = errors.New("Undefined variable")
var errUndefinedProp = errors.New("Undefined property")
var errUndefinedArrayMethod = errors.New("Array method does not exist")
var errInitExplicit = errors.New("Initializer can't be invoked explicitly after the instance has been constructed")
var errOnlyInstances = errors.New("Only instances have properties")
var errOnlyInstanceFields = errors.New("Only instances have fields")
var errExpectedClass = errors.New("Superclass must be a class")
var errOnlyFunction = errors.New("Can only call functions and classes")
var errInvalidNumberArguments = errors.New("Invalid number of arguments")
var errIndexNotInteger = errors.New("Indexing is integer-based")
var errIndexOutOfBounds = errors.New("Index out of bounds")

// Internal consistency errors
var errUnresolvedLocal = errors.New("Resolved variable is missing from its environment")
var errBreakEscaped = errors.New("break statement escaped every loop")
var errReturnEscaped = errors.New("return statement escaped every function")

var errorKinds = map[error]ErrorKind{
	errIllegalChar:               KindSyntax,
	errUnclosedString:            KindSyntax,
	errUnclosedComment:           KindSyntax,
	errUnclosedParen:             KindSyntax,
	errUnclosedBracket:           KindSyntax,
	errExpectedOpeningParen:      KindSyntax,
	errExpectedOpeningCurlyBrace: KindSyntax,
	errExpectedClosingCurlyBrace: KindSyntax,
	errExpectedSemicolon:         KindSyntax,
	errExpectedColon:             KindSyntax,
	errExpectedProp:              KindSyntax,
	errExpectedDot:               KindSyntax,
	errExpectedFunctionName:      KindSyntax,
	errExpectedFunctionParam:     KindSyntax,
	errExpectedIdentifier:        KindSyntax,
	errExpectedClassName:         KindSyntax,
	errExpectedSuperclassName:    KindSyntax,
	errUndefinedExpr:             KindSyntax,
	errInvalidAssignment:         KindSyntax,
	errMaxParameters:             KindSyntax,
	errMaxArguments:              KindSyntax,

	errAlreadyDeclared:        KindResolution,
	errReadInOwnInitializer:   KindResolution,
	errInheritFromSelf:        KindResolution,
	errReturnTopLevel:         KindResolution,
	errReturnFromInit:         KindResolution,
	errBreakOutsideLoop:       KindResolution,
	errThisOutsideClass:       KindResolution,
	errThisInStatic:           KindResolution,
	errSuperOutsideClass:      KindResolution,
	errSuperWithoutSuperclass: KindResolution,
	errSuperInStatic:          KindResolution,

	errOnlyNumbers:            KindType,
	errOnlyNumber:             KindType,
	errOperandsAdd:            KindType,
	errOnlyInstances:          KindType,
	errOnlyInstanceFields:     KindType,
	errExpectedClass:          KindType,
	errDivisionByZero:         KindDivisionByZero,
	errUndefinedVar:           KindUndefinedVariable,
	errUndefinedProp:          KindUndefinedProperty,
	errUndefinedArrayMethod:   KindUndefinedProperty,
	errInitExplicit:           KindUndefinedProperty,
	errOnlyFunction:           KindNotCallable,
	errInvalidNumberArguments: KindArityMismatch,
	errIndexNotInteger:        KindIndex,
	errIndexOutOfBounds:       KindIndex,
}
