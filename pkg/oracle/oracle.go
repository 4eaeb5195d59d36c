// Package oracle provides default implementations of the slot-value oracle
// consulted during part classification. Hosts with a real type system
// inject their own resolver; this one classifies slot expressions
// statically with the expr language parser.
package oracle

import (
	"strings"

	"github.com/expr-lang/expr/ast"
	exprparser "github.com/expr-lang/expr/parser"
)

// renderableCalls name the template functions whose results are renderable
// content rather than plain values.
var renderableCalls = map[string]bool{
	"html":   true,
	"render": true,
	"svg":    true,
}

// ExprResolver classifies each slot expression once at construction. An
// expression that fails to parse degrades to a plain value: text
// interpolation is the harmless default for mid-edit input.
type ExprResolver struct {
	exprs []string
	plain []bool
}

func NewExprResolver(exprs []string) *ExprResolver {
	r := &ExprResolver{
		exprs: exprs,
		plain: make([]bool, len(exprs)),
	}
	for i, e := range exprs {
		r.plain[i] = classifyExpression(e)
	}
	return r
}

// Expression returns the source expression for a slot ordinal.
func (r *ExprResolver) Expression(index int) string {
	if index < 0 || index >= len(r.exprs) {
		return ""
	}
	return r.exprs[index]
}

// IsPlainValue implements parts.SlotResolver.
func (r *ExprResolver) IsPlainValue(index int) bool {
	if index < 0 || index >= len(r.plain) {
		return true
	}
	return r.plain[index]
}

func classifyExpression(src string) bool {
	tree, err := exprparser.Parse(strings.TrimSpace(src))
	if err != nil {
		return true
	}
	return isPlainNode(tree.Node)
}

// isPlainNode reports whether an expression node evaluates to a plain value
// type. Literals, arithmetic and comparisons are plain; calls to renderable
// template functions and array literals (lists of renderable results) are
// content. Bare identifiers and member accesses default to plain.
func isPlainNode(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.CallNode:
		if callee, ok := n.Callee.(*ast.IdentifierNode); ok && renderableCalls[callee.Value] {
			return false
		}
		return true
	case *ast.ArrayNode:
		return false
	case *ast.ConditionalNode:
		return isPlainNode(n.Exp1) && isPlainNode(n.Exp2)
	case *ast.UnaryNode:
		return isPlainNode(n.Node)
	case *ast.BinaryNode:
		return true
	default:
		return true
	}
}

// StaticRegistry is a fixed component-name registry for hosts that know the
// set of importable components up front.
type StaticRegistry struct {
	components map[string]bool
}

func NewStaticRegistry(names ...string) *StaticRegistry {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return &StaticRegistry{components: m}
}

func (r *StaticRegistry) HasComponent(name string) bool {
	return r.components[name]
}
