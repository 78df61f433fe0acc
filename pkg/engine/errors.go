package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

var (
	// ErrUnsupportedKind is returned for a node shape with no registered rule.
	ErrUnsupportedKind = errors.New("unsupported expression kind")
	// ErrUnsupportedFunction is returned for a call to an unrecognized function.
	ErrUnsupportedFunction = errors.New("unsupported function")
	// ErrMalformedCall is returned for a recognized function called with the
	// wrong number of arguments.
	ErrMalformedCall = errors.New("malformed call")
	// ErrTooDeep is returned when recursion exceeds Config.MaxDepth.
	ErrTooDeep = errors.New("expression too deep")
)

const maxNodeText = 120

// Error reports the node at which differentiation failed.
type Error struct {
	Node   expr.ExprNode
	Err    error
	Detail string
}

func (e *Error) Error() string {
	node := "<nil>"
	if e.Node != nil {
		node = e.Node.String()
		if len(node) > maxNodeText {
			cut := maxNodeText
			for cut > 0 && !utf8.RuneStart(node[cut]) {
				cut--
			}
			node = node[:cut] + "..."
		}
	}
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s at %s", e.Err, e.Detail, node)
	}
	return fmt.Sprintf("%v at %s", e.Err, node)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(node expr.ExprNode, err error, format string, args ...any) error {
	return &Error{Node: node, Err: err, Detail: fmt.Sprintf(format, args...)}
}
