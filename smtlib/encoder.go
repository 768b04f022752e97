package smtlib

import (
	"fmt"
	"strconv"
	"strings"
)

// EvalPrefix is the reserved name prefix for the constants the check
// command declares to read values back. Caller symbols must not use it.
const EvalPrefix = "EVALEXPR_"

// Encoder accumulates an SMT-LIB2 script for one solver session. It
// owns a stack of text scopes mirroring the protocol's push/pop
// semantics, a session-wide declaration table and the sort-name cache.
// One encoder serves one session; it is not safe for concurrent use.
type Encoder struct {
	output    []*strings.Builder
	variables map[string]Sort
	sortNames map[Sort]string
	userSorts []tupleDecl
	timeout   int
}

type tupleDecl struct {
	name string
	decl string
}

// NewEncoder returns a fresh session. timeoutMS is emitted into the
// preamble as a hint for the solver; zero leaves it out. The encoder
// itself never enforces the bound.
func NewEncoder(timeoutMS int) *Encoder {
	e := &Encoder{timeout: timeoutMS}
	e.Reset()
	return e
}

// Reset drops all scopes, declarations and caches and rewrites the
// preamble. This is the only way back to the initial state.
func (e *Encoder) Reset() {
	e.output = []*strings.Builder{new(strings.Builder)}
	e.variables = make(map[string]Sort)
	e.sortNames = make(map[Sort]string)
	e.userSorts = nil
	e.write("(set-option :produce-models true)")
	if e.timeout > 0 {
		e.write("(set-option :timeout " + strconv.Itoa(e.timeout) + ")")
	}
	e.write("(set-logic ALL)")
}

// Push opens a new assertion scope.
func (e *Encoder) Push() {
	e.output = append(e.output, new(strings.Builder))
}

// Pop discards the top scope and everything written into it.
func (e *Encoder) Pop() {
	if len(e.output) <= 1 {
		panic("smtlib: popped the last remaining scope")
	}
	e.output = e.output[:len(e.output)-1]
}

// DeclareVariable emits a zero-arity declare-fun for name into the
// current scope. Redeclaring a known name is a no-op, even when the
// sort differs and even when the original declaration text has since
// been popped away: the table is session bookkeeping, not scope state.
func (e *Encoder) DeclareVariable(name string, sort Sort) {
	if sort == nil {
		panic(fmt.Sprintf("smtlib: variable '%s' declared without a sort", name))
	}
	if sort.Kind() == KindFunction {
		e.DeclareFunction(name, sort)
		return
	}
	if _, ok := e.variables[name]; ok {
		return
	}
	e.variables[name] = sort
	e.write("(declare-fun |" + name + "| () " + e.SortName(sort) + ")")
}

// DeclareFunction emits a declare-fun with the function sort's domain
// and codomain. Same idempotence rule as DeclareVariable.
func (e *Encoder) DeclareFunction(name string, sort Sort) {
	fn, ok := sort.(*FunctionSort)
	if !ok {
		panic(fmt.Sprintf("smtlib: function '%s' declared with non-function sort", name))
	}
	if _, ok := e.variables[name]; ok {
		return
	}
	e.variables[name] = sort
	e.write("(declare-fun |" + name + "| " + e.domainText(fn.Domain) + " " + e.SortName(fn.Codomain) + ")")
}

// AddAssertion emits an assert into the current scope. No sort
// checking happens here.
func (e *Encoder) AddAssertion(expr Expression) {
	e.write("(assert " + e.ToSExpr(expr) + ")")
}

// FullScript is the exact multi-line program a dispatcher sends: all
// scope buffers in stack order, joined with a newline, so a blank line
// separates scopes.
func (e *Encoder) FullScript() string {
	parts := make([]string, len(e.output))
	for i, buf := range e.output {
		parts[i] = buf.String()
	}
	return strings.Join(parts, "\n")
}

// CheckCommand renders the tail appended to the script for one check
// call. With no expressions it is a bare check-sat. Otherwise each
// expression gets a reserved EVALEXPR_i constant asserted equal to it,
// followed by check-sat and a get-value over all constants in order.
// Only Int- and Bool-sorted expressions can be evaluated.
func (e *Encoder) CheckCommand(toEvaluate []Expression) string {
	if len(toEvaluate) == 0 {
		return "(check-sat)\n"
	}
	var command strings.Builder
	for i, expr := range toEvaluate {
		var sortName string
		switch expr.Sort.(type) {
		case *IntSort:
			sortName = "Int"
		case *BoolSort:
			sortName = "Bool"
		default:
			panic(fmt.Sprintf("smtlib: expression %d has an invalid sort for evaluation", i))
		}
		name := EvalPrefix + strconv.Itoa(i)
		command.WriteString("(declare-const |" + name + "| " + sortName + ")\n")
		command.WriteString("(assert (= |" + name + "| " + e.ToSExpr(expr) + "))\n")
	}
	command.WriteString("(check-sat)\n")
	command.WriteString("(get-value (")
	for i := range toEvaluate {
		command.WriteString("|" + EvalPrefix + strconv.Itoa(i) + "| ")
	}
	command.WriteString("))\n")
	return command.String()
}

// ToSExpr renders an expression. Four operator names are special: the
// bitvector/integer conversions carry a manual two's complement
// because solvers treat bitvectors as unsigned, and the array/tuple
// helpers need sort information that plain application syntax lacks.
func (e *Encoder) ToSExpr(expr Expression) string {
	if len(expr.Arguments) == 0 {
		return expr.Name
	}

	var sexpr strings.Builder
	sexpr.WriteByte('(')
	switch expr.Name {
	case "int2bv":
		size, err := strconv.Atoi(expr.Arguments[1].Name)
		if err != nil {
			panic(fmt.Sprintf("smtlib: invalid int2bv width '%s'", expr.Arguments[1].Name))
		}
		arg := e.ToSExpr(expr.Arguments[0])
		int2bv := "(_ int2bv " + strconv.Itoa(size) + ")"
		sexpr.WriteString("ite " +
			"(>= " + arg + " 0) " +
			"(" + int2bv + " " + arg + ") " +
			"(bvneg (" + int2bv + " (- " + arg + ")))")
	case "bv2int":
		intSort, ok := expr.Sort.(*IntSort)
		if !ok {
			panic("smtlib: bv2int expression must carry an Int sort")
		}
		arg := e.ToSExpr(expr.Arguments[0])
		nat := "(bv2nat " + arg + ")"
		if !intSort.Signed {
			return nat
		}
		bv, ok := expr.Arguments[0].Sort.(*BitVectorSort)
		if !ok {
			panic("smtlib: bv2int argument must carry a BitVector sort")
		}
		pos := strconv.FormatUint(uint64(bv.Size-1), 10)
		sexpr.WriteString("ite " +
			"(= ((_ extract " + pos + " " + pos + ")" + arg + ") #b0) " +
			nat + " " +
			"(- (bv2nat (bvneg " + arg + ")))")
	case "const_array":
		if len(expr.Arguments) != 2 {
			panic(fmt.Sprintf("smtlib: const_array takes 2 arguments, got %d", len(expr.Arguments)))
		}
		sortSort, ok := expr.Arguments[0].Sort.(*SortSort)
		if !ok {
			panic("smtlib: const_array placeholder must carry a sort-of-sort")
		}
		arraySort, ok := sortSort.Inner.(*ArraySort)
		if !ok {
			panic("smtlib: const_array placeholder must wrap an array sort")
		}
		sexpr.WriteString("(as const " + e.SortName(arraySort) + ") ")
		sexpr.WriteString(e.ToSExpr(expr.Arguments[1]))
	case "tuple_get":
		if len(expr.Arguments) != 2 {
			panic(fmt.Sprintf("smtlib: tuple_get takes 2 arguments, got %d", len(expr.Arguments)))
		}
		tuple, ok := expr.Arguments[0].Sort.(*TupleSort)
		if !ok {
			panic("smtlib: tuple_get argument must carry a tuple sort")
		}
		index, err := strconv.Atoi(expr.Arguments[1].Name)
		if err != nil || index < 0 || index >= len(tuple.Members) {
			panic(fmt.Sprintf("smtlib: tuple_get index '%s' out of range for '%s'", expr.Arguments[1].Name, tuple.Name))
		}
		sexpr.WriteString("|" + tuple.Members[index] + "| " + e.ToSExpr(expr.Arguments[0]))
	case "tuple_constructor":
		tuple, ok := expr.Sort.(*TupleSort)
		if !ok {
			panic("smtlib: tuple_constructor expression must carry a tuple sort")
		}
		sexpr.WriteString("|" + tuple.Name + "|")
		for _, arg := range expr.Arguments {
			sexpr.WriteString(" " + e.ToSExpr(arg))
		}
	default:
		sexpr.WriteString(expr.Name)
		for _, arg := range expr.Arguments {
			sexpr.WriteString(" " + e.ToSExpr(arg))
		}
	}
	sexpr.WriteByte(')')
	return sexpr.String()
}

// SortName returns the SMT-LIB2 name for a sort, computing and caching
// it on first use. The cache is keyed by instance: two structurally
// equal sorts built separately are cached independently, so callers
// should reuse sort instances within a session.
func (e *Encoder) SortName(sort Sort) string {
	if name, ok := e.sortNames[sort]; ok {
		return name
	}
	name := e.sortToString(sort)
	e.sortNames[sort] = name
	return name
}

func (e *Encoder) sortToString(sort Sort) string {
	switch sort := sort.(type) {
	case *IntSort:
		return "Int"
	case *BoolSort:
		return "Bool"
	case *BitVectorSort:
		return "(_ BitVec " + strconv.FormatUint(uint64(sort.Size), 10) + ")"
	case *ArraySort:
		if sort.Domain == nil || sort.Range == nil {
			panic("smtlib: array sort is missing domain or range")
		}
		return "(Array " + e.SortName(sort.Domain) + " " + e.SortName(sort.Range) + ")"
	case *TupleSort:
		tupleName := "|" + sort.Name + "|"
		for _, user := range e.userSorts {
			if user.name == tupleName {
				return tupleName
			}
		}
		if len(sort.Members) != len(sort.Components) {
			panic(fmt.Sprintf("smtlib: tuple sort '%s' has %d members and %d components",
				sort.Name, len(sort.Members), len(sort.Components)))
		}
		decl := "(declare-datatypes ((" + tupleName + " 0)) (((" + tupleName
		for i, member := range sort.Members {
			decl += " (|" + member + "| " + e.SortName(sort.Components[i]) + ")"
		}
		decl += "))))"
		e.userSorts = append(e.userSorts, tupleDecl{name: tupleName, decl: decl})
		e.write(decl)
		return tupleName
	default:
		panic(fmt.Sprintf("smtlib: sort of kind %d has no SMT-LIB name", sort.Kind()))
	}
}

func (e *Encoder) domainText(sorts []Sort) string {
	var text strings.Builder
	text.WriteByte('(')
	for _, sort := range sorts {
		text.WriteString(e.SortName(sort) + " ")
	}
	text.WriteByte(')')
	return text.String()
}

func (e *Encoder) write(line string) {
	if len(e.output) == 0 {
		panic("smtlib: no open scope")
	}
	top := e.output[len(e.output)-1]
	top.WriteString(line)
	top.WriteByte('\n')
}
