// Package diag implements the diagnostic collection used throughout the
// lexer, parser and semantic passes: a closed set of error kinds, each
// diagnostic carrying the source span of its first offending token, and an
// ErrorStream that collects, sorts and reports them.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anode-lang/anode/lang/token"
)

// Kind is the closed enum of error conditions the lexer, parser and
// semantic passes can report (spec.md §4.2, §4.5, §4.6, §4.7).
type Kind int

//nolint:revive
const (
	// lexer
	UnexpectedCharacter Kind = iota
	UnexpectedEofInMultilineComment
	InvalidLiteralInt32
	InvalidLiteralFloat

	// parser
	UnexpectedToken
	SurpriseToken
	ParseAborted

	// symbol population / resolution
	SymbolAlreadyDefinedInScope
	VariableNotDefined
	VariableUsedBeforeDefinition
	SymbolNotDefined
	NamespaceDoesNotExist
	IdentifierIsNotNamespace
	ChildNamespaceDoesNotExist
	NamespaceMemberDoesNotExist
	MemberOfNamespaceIsNotNamespace

	// type resolution
	SymbolIsNotAType

	// template / generic expansion
	SymbolIsNotATemplate
	CircularTemplateReference
	IncorrectNumberOfTemplateArguments
	IncorrectNumberOfGenericArguments
	TypeIsNotGenericButIsReferencedWithGenericArgs
	GenericTypeWasNotExpandedWithSpecifiedArguments

	// dot-expression / member resolution
	LeftOfDotNotClass
	ClassMemberNotFound
	MethodNotDefined

	// implicit casts
	InvalidImplicitCastInBinaryExpr
	InvalidImplicitCastInIfCondition
	InvalidImplicitCastInIfBodies
	InvalidImplicitCastInInWhileCondition
	InvalidImplicitCastInFunctionCallArgument
	InvalidImplicitCastInImplicitReturn
	InvalidImplicitCastInAssertCondition

	// late semantic checks
	OperatorCannotBeUsedWithType
	CannotAssignToLValue
	InvalidExplicitCast
	ExpressionIsNotFunction
	IncorrectNumberOfArguments
)

var kindNames = map[Kind]string{
	UnexpectedCharacter:                             "UnexpectedCharacter",
	UnexpectedEofInMultilineComment:                  "UnexpectedEofInMultilineComment",
	InvalidLiteralInt32:                              "InvalidLiteralInt32",
	InvalidLiteralFloat:                              "InvalidLiteralFloat",
	UnexpectedToken:                                  "UnexpectedToken",
	SurpriseToken:                                    "SurpriseToken",
	ParseAborted:                                     "ParseAborted",
	SymbolAlreadyDefinedInScope:                      "SymbolAlreadyDefinedInScope",
	VariableNotDefined:                               "VariableNotDefined",
	VariableUsedBeforeDefinition:                     "VariableUsedBeforeDefinition",
	SymbolNotDefined:                                 "SymbolNotDefined",
	NamespaceDoesNotExist:                            "NamespaceDoesNotExist",
	IdentifierIsNotNamespace:                         "IdentifierIsNotNamespace",
	ChildNamespaceDoesNotExist:                       "ChildNamespaceDoesNotExist",
	NamespaceMemberDoesNotExist:                      "NamespaceMemberDoesNotExist",
	MemberOfNamespaceIsNotNamespace:                  "MemberOfNamespaceIsNotNamespace",
	SymbolIsNotAType:                                 "SymbolIsNotAType",
	SymbolIsNotATemplate:                             "SymbolIsNotATemplate",
	CircularTemplateReference:                        "CircularTemplateReference",
	IncorrectNumberOfTemplateArguments:                "IncorrectNumberOfTemplateArguments",
	IncorrectNumberOfGenericArguments:                 "IncorrectNumberOfGenericArguments",
	TypeIsNotGenericButIsReferencedWithGenericArgs:    "TypeIsNotGenericButIsReferencedWithGenericArgs",
	GenericTypeWasNotExpandedWithSpecifiedArguments:   "GenericTypeWasNotExpandedWithSpecifiedArguments",
	LeftOfDotNotClass:                                "LeftOfDotNotClass",
	ClassMemberNotFound:                               "ClassMemberNotFound",
	MethodNotDefined:                                  "MethodNotDefined",
	InvalidImplicitCastInBinaryExpr:                   "InvalidImplicitCastInBinaryExpr",
	InvalidImplicitCastInIfCondition:                  "InvalidImplicitCastInIfCondition",
	InvalidImplicitCastInIfBodies:                     "InvalidImplicitCastInIfBodies",
	InvalidImplicitCastInInWhileCondition:             "InvalidImplicitCastInInWhileCondition",
	InvalidImplicitCastInFunctionCallArgument:         "InvalidImplicitCastInFunctionCallArgument",
	InvalidImplicitCastInImplicitReturn:               "InvalidImplicitCastInImplicitReturn",
	InvalidImplicitCastInAssertCondition:              "InvalidImplicitCastInAssertCondition",
	OperatorCannotBeUsedWithType:                      "OperatorCannotBeUsedWithType",
	CannotAssignToLValue:                              "CannotAssignToLValue",
	InvalidExplicitCast:                               "InvalidExplicitCast",
	ExpressionIsNotFunction:                           "ExpressionIsNotFunction",
	IncorrectNumberOfArguments:                         "IncorrectNumberOfArguments",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a single diagnostic: a kind, the span of the first offending
// token, and a rendered message (already prefixed with any active context).
type Error struct {
	Kind    Kind
	Span    token.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

// list is the concrete error type returned by ErrorStream.Err, exposing
// Unwrap() []error so callers can use errors.Is/As or range over every
// collected diagnostic.
type list []*Error

func (l list) Error() string {
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (l list) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Stream collects diagnostics produced while lexing, parsing or running the
// semantic passes over a single module. It keeps a stack of context strings
// that are prepended to every subsequently added message, pushed and popped
// around template expansion (spec.md §4.8).
type Stream struct {
	errors  []*Error
	context []string
	first   *Error
}

// Push adds msg to the context stack; every Add call until the matching Pop
// prefixes its message with msg.
func (s *Stream) Push(msg string) { s.context = append(s.context, msg) }

// Pop removes the most recently pushed context string.
func (s *Stream) Pop() {
	if len(s.context) > 0 {
		s.context = s.context[:len(s.context)-1]
	}
}

// Add records a new diagnostic.
func (s *Stream) Add(kind Kind, span token.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(s.context) > 0 {
		msg = strings.Join(s.context, ": ") + ": " + msg
	}
	e := &Error{Kind: kind, Span: span, Message: msg}
	s.errors = append(s.errors, e)
	if s.first == nil {
		s.first = e
	}
}

// Len returns the number of diagnostics collected so far.
func (s *Stream) Len() int { return len(s.errors) }

// First returns the first diagnostic added to the stream, or nil if none.
func (s *Stream) First() *Error { return s.first }

// All returns every diagnostic collected so far, in insertion order.
func (s *Stream) All() []*Error { return s.errors }

// Sort orders the collected diagnostics by source position.
func (s *Stream) Sort() {
	sort.SliceStable(s.errors, func(i, j int) bool {
		a, b := s.errors[i].Span.Start, s.errors[j].Span.Start
		return a < b
	})
}

// Err returns nil if no diagnostics were collected, otherwise a list whose
// Unwrap() []error yields every collected *Error.
func (s *Stream) Err() error {
	if len(s.errors) == 0 {
		return nil
	}
	return list(s.errors)
}
