package smtlib

// Expression is one node of a logical expression tree. A node without
// arguments renders as its name verbatim (a literal or a declared
// symbol); a node with arguments is the application of Name to them.
// Sort is optional and only consulted where translation needs it
// (bv2int, const_array, tuple operations, expressions to evaluate).
// The encoder performs no sort checking: the caller guarantees the
// tree is well-sorted.
type Expression struct {
	Name      string
	Arguments []Expression
	Sort      Sort
}
