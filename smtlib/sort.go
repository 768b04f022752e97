package smtlib

// Kind tags the closed set of sort variants. Translation code switches
// over the concrete sort types; Kind exists for quick checks and for
// error messages.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindBitVector
	KindArray
	KindSort
	KindTuple
	KindFunction
)

// Sort is a type tag for logical values. Sorts are immutable once
// constructed and are always handled by pointer: the encoder caches
// sort names per instance, not per structural value.
type Sort interface {
	Kind() Kind
}

type IntSort struct {
	Signed bool
}

func (*IntSort) Kind() Kind { return KindInt }

type BoolSort struct{}

func (*BoolSort) Kind() Kind { return KindBool }

// BitVectorSort is a fixed-width binary value. Solvers treat it as
// unsigned; signed semantics are emulated at the expression level.
type BitVectorSort struct {
	Size uint
}

func (*BitVectorSort) Kind() Kind { return KindBitVector }

type ArraySort struct {
	Domain Sort
	Range  Sort
}

func (*ArraySort) Kind() Kind { return KindArray }

// SortSort wraps another sort so an expression argument can carry a
// sort as a value (the const_array placeholder).
type SortSort struct {
	Inner Sort
}

func (*SortSort) Kind() Kind { return KindSort }

// TupleSort is declared as a single-constructor datatype on first use.
// Members and Components must have the same length.
type TupleSort struct {
	Name       string
	Members    []string
	Components []Sort
}

func (*TupleSort) Kind() Kind { return KindTuple }

type FunctionSort struct {
	Domain   []Sort
	Codomain Sort
}

func (*FunctionSort) Kind() Kind { return KindFunction }
