package rwerr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	// malformed rules
	DuplicateParam
	InvalidParam
	MultipleVariadic
	UnresolvedTypeVar
	UnboundWildcard
	NoBody
	// authoring of calls
	ArityMismatch
	CallTypeMismatch
	UninferredTypeParam
	TypeArgCount
	MisplacedVariadic
	// strategies
	OutOfFuel
	RewriteCycle
	// term syntax
	Parse
	UnknownOperation
	// evaluation
	NoImplementation
	NotEvaluable
)

// RewriteError is an error with a stable code.
// Create them with New so that they carry the stack of their origin
type RewriteError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) RewriteError
	getStack() []byte
}

func FormatWithCode(e RewriteError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E RewriteError](err E) RewriteError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the code of the first RewriteError in err's chain, or None
func CodeOf(err error) ErrCode {
	var rwErr RewriteError
	if errors.As(err, &rwErr) {
		return rwErr.Code()
	}
	return None
}

// IsMalformedRule reports whether err signals a defect in how a rule or operation was authored,
// as opposed to a runtime condition like running out of fuel
func IsMalformedRule(err error) bool {
	switch CodeOf(err) {
	case DuplicateParam, InvalidParam, MultipleVariadic, UnresolvedTypeVar, UnboundWildcard, NoBody:
		return true
	default:
		return false
	}
}

type NewDuplicateParam struct {
	Rule  string
	Name  string
	stack []byte
}

func (e NewDuplicateParam) Error() string {
	return fmt.Sprintf("rule '%s' declares parameter '%s' more than once", e.Rule, e.Name)
}
func (e NewDuplicateParam) Code() ErrCode    { return DuplicateParam }
func (e NewDuplicateParam) getStack() []byte { return e.stack }
func (e NewDuplicateParam) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewInvalidParam struct {
	Rule   string
	Name   string
	Reason string
	stack  []byte
}

func (e NewInvalidParam) Error() string {
	return fmt.Sprintf("rule '%s' has an invalid parameter '%s': %s", e.Rule, e.Name, e.Reason)
}
func (e NewInvalidParam) Code() ErrCode    { return InvalidParam }
func (e NewInvalidParam) getStack() []byte { return e.stack }
func (e NewInvalidParam) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewMultipleVariadic struct {
	Rule   string
	Symbol string
	Count  int
	stack  []byte
}

func (e NewMultipleVariadic) Error() string {
	return fmt.Sprintf("rule '%s' uses %d variadic wildcards in one argument list of '%s', at most one is supported", e.Rule, e.Count, e.Symbol)
}
func (e NewMultipleVariadic) Code() ErrCode    { return MultipleVariadic }
func (e NewMultipleVariadic) getStack() []byte { return e.stack }
func (e NewMultipleVariadic) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewUnresolvedTypeVar struct {
	Rule   string
	Var    string
	Result string
	stack  []byte
}

func (e NewUnresolvedTypeVar) Error() string {
	return fmt.Sprintf("rule '%s' matched but left type variable %s unresolved in '%s'", e.Rule, e.Var, e.Result)
}
func (e NewUnresolvedTypeVar) Code() ErrCode    { return UnresolvedTypeVar }
func (e NewUnresolvedTypeVar) getStack() []byte { return e.stack }
func (e NewUnresolvedTypeVar) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewUnboundWildcard struct {
	Rule   string
	Name   string
	Result string
	stack  []byte
}

func (e NewUnboundWildcard) Error() string {
	return fmt.Sprintf("rule '%s' matched but its replacement '%s' uses '%s', which the pattern did not bind", e.Rule, e.Result, e.Name)
}
func (e NewUnboundWildcard) Code() ErrCode    { return UnboundWildcard }
func (e NewUnboundWildcard) getStack() []byte { return e.stack }
func (e NewUnboundWildcard) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewNoBody struct {
	Operation string
	stack     []byte
}

func (e NewNoBody) Error() string {
	return fmt.Sprintf("operation '%s' has no recorded body to derive a default rule from", e.Operation)
}
func (e NewNoBody) Code() ErrCode    { return NoBody }
func (e NewNoBody) getStack() []byte { return e.stack }
func (e NewNoBody) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	Operation string
	Want      int
	Got       int
	// AtLeast is set when the operation is variadic
	AtLeast bool
	stack   []byte
}

func (e NewArityMismatch) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("operation '%s' expects at least %d arguments, but got %d", e.Operation, e.Want, e.Got)
	}
	return fmt.Sprintf("operation '%s' expects %d arguments, but got %d", e.Operation, e.Want, e.Got)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewCallTypeMismatch struct {
	Operation string
	Param     string
	Want      string
	Got       string
	stack     []byte
}

func (e NewCallTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch in call to '%s': parameter '%s' expects '%s', but found '%s'", e.Operation, e.Param, e.Want, e.Got)
}
func (e NewCallTypeMismatch) Code() ErrCode    { return CallTypeMismatch }
func (e NewCallTypeMismatch) getStack() []byte { return e.stack }
func (e NewCallTypeMismatch) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewUninferredTypeParam struct {
	Operation string
	Param     string
	stack     []byte
}

func (e NewUninferredTypeParam) Error() string {
	return fmt.Sprintf("cannot infer type parameter '%s' of '%s' from its arguments, instantiate it explicitly", e.Param, e.Operation)
}
func (e NewUninferredTypeParam) Code() ErrCode    { return UninferredTypeParam }
func (e NewUninferredTypeParam) getStack() []byte { return e.stack }
func (e NewUninferredTypeParam) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewTypeArgCount struct {
	Operation string
	Want      int
	Got       int
	stack     []byte
}

func (e NewTypeArgCount) Error() string {
	return fmt.Sprintf("operation '%s' has %d type parameters, but %d type arguments were given", e.Operation, e.Want, e.Got)
}
func (e NewTypeArgCount) Code() ErrCode    { return TypeArgCount }
func (e NewTypeArgCount) getStack() []byte { return e.stack }
func (e NewTypeArgCount) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewMisplacedVariadic struct {
	Operation string
	Param     string
	stack     []byte
}

func (e NewMisplacedVariadic) Error() string {
	return fmt.Sprintf("variadic wildcard passed to non-variadic parameter '%s' of '%s'", e.Param, e.Operation)
}
func (e NewMisplacedVariadic) Code() ErrCode    { return MisplacedVariadic }
func (e NewMisplacedVariadic) getStack() []byte { return e.stack }
func (e NewMisplacedVariadic) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewOutOfFuel struct {
	Fuel  int
	Last  string
	stack []byte
}

func (e NewOutOfFuel) Error() string {
	return fmt.Sprintf("rewriting did not terminate after %d steps, last expression was '%s'", e.Fuel, e.Last)
}
func (e NewOutOfFuel) Code() ErrCode    { return OutOfFuel }
func (e NewOutOfFuel) getStack() []byte { return e.stack }
func (e NewOutOfFuel) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewRewriteCycle struct {
	Expr  string
	Rule  string
	stack []byte
}

func (e NewRewriteCycle) Error() string {
	return fmt.Sprintf("rule '%s' rewrote back to an expression already seen: '%s'", e.Rule, e.Expr)
}
func (e NewRewriteCycle) Code() ErrCode    { return RewriteCycle }
func (e NewRewriteCycle) getStack() []byte { return e.stack }
func (e NewRewriteCycle) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewParse struct {
	Pos           string
	ParserMessage string
	stack         []byte
}

func (e NewParse) Error() string {
	if e.Pos == "" {
		return e.ParserMessage
	}
	return e.Pos + ": " + e.ParserMessage
}
func (e NewParse) Code() ErrCode    { return Parse }
func (e NewParse) getStack() []byte { return e.stack }
func (e NewParse) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewUnknownOperation struct {
	Pos   string
	Name  string
	stack []byte
}

func (e NewUnknownOperation) Error() string {
	return fmt.Sprintf("%s: operation '%s' is not defined", e.Pos, e.Name)
}
func (e NewUnknownOperation) Code() ErrCode    { return UnknownOperation }
func (e NewUnknownOperation) getStack() []byte { return e.stack }
func (e NewUnknownOperation) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewNoImplementation struct {
	Symbol string
	stack  []byte
}

func (e NewNoImplementation) Error() string {
	return fmt.Sprintf("no implementation registered for operation '%s'", e.Symbol)
}
func (e NewNoImplementation) Code() ErrCode    { return NoImplementation }
func (e NewNoImplementation) getStack() []byte { return e.stack }
func (e NewNoImplementation) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}

type NewNotEvaluable struct {
	Expr  string
	Name  string
	stack []byte
}

func (e NewNotEvaluable) Error() string {
	return fmt.Sprintf("cannot evaluate %s '%s'", e.Name, e.Expr)
}
func (e NewNotEvaluable) Code() ErrCode    { return NotEvaluable }
func (e NewNotEvaluable) getStack() []byte { return e.stack }
func (e NewNotEvaluable) withStack(stack []byte) RewriteError {
	e.stack = stack
	return e
}
