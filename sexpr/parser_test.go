package sexpr

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParse_Nested(t *testing.T) {
	node, err := Parse("(a (b c) d)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	list, ok := node.(List)
	if !ok || len(list) != 3 {
		t.Fatalf("got %#v; want a list of 3", node)
	}
	if list[0] != Atom("a") || list[2] != Atom("d") {
		t.Errorf("got %v; want atoms a and d", node)
	}
	inner, ok := list[1].(List)
	if !ok || len(inner) != 2 || inner[0] != Atom("b") || inner[1] != Atom("c") {
		t.Errorf("got %v; want inner list (b c)", list[1])
	}
	if got := node.String(); got != "(a (b c) d)" {
		t.Errorf("got %v; want %v", got, "(a (b c) d)")
	}
}

func TestParse_QuotedAtom(t *testing.T) {
	node, err := Parse("|foo bar|")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if node != Atom("foo bar") {
		t.Errorf("got %v; want %v", node, Atom("foo bar"))
	}
}

func TestParse_Comment(t *testing.T) {
	node, err := Parse("; comment\nrest\n")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if node != Atom("rest") {
		t.Errorf("got %v; want %v", node, Atom("rest"))
	}
}

func TestParse_GetValueReply(t *testing.T) {
	node, err := Parse("((|EVALEXPR_0| 5) (|EVALEXPR_1| true))\n")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "((EVALEXPR_0 5) (EVALEXPR_1 true))"
	if got := node.String(); got != want {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestParse_Sequential(t *testing.T) {
	p := NewParser(strings.NewReader("sat\n((x 1))\n"))
	first, err := p.Parse()
	if err != nil || first != Atom("sat") {
		t.Fatalf("got %v, %v; want sat", first, err)
	}
	second, err := p.Parse()
	if err != nil || second.String() != "((x 1))" {
		t.Fatalf("got %v, %v; want ((x 1))", second, err)
	}
	if _, err := p.Parse(); err != io.EOF {
		t.Errorf("got %v; want io.EOF", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if _, err := Parse(" \n\t"); err != io.EOF {
		t.Errorf("got %v; want io.EOF", err)
	}
}

func TestParse_UnterminatedQuotedAtom(t *testing.T) {
	_, err := Parse("|foo")
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("got %v; want ErrUnexpectedEOF", err)
	}
}

func TestParse_UnbalancedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	Parse("(a b")
}

// countingReader counts how many bytes the parser actually pulled.
type countingReader struct {
	data  string
	reads int
}

func (r *countingReader) ReadByte() (byte, error) {
	if r.reads >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.reads]
	r.reads++
	return b, nil
}

func TestParse_NoReadPastClosingParen(t *testing.T) {
	// An interactive solver may not have produced anything after the
	// closing paren yet; reading further would block on it.
	r := &countingReader{data: "(a b) more"}
	node, err := NewParser(r).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if node.String() != "(a b)" {
		t.Errorf("got %v; want %v", node, "(a b)")
	}
	if r.reads != len("(a b)") {
		t.Errorf("read %d bytes; want %d", r.reads, len("(a b)"))
	}
}

// brokenReader fails with a non-EOF error after its prefix.
type brokenReader struct {
	prefix string
	reads  int
}

func (r *brokenReader) ReadByte() (byte, error) {
	if r.reads >= len(r.prefix) {
		return 0, errors.New("pipe closed")
	}
	b := r.prefix[r.reads]
	r.reads++
	return b, nil
}

func TestParse_BrokenStream(t *testing.T) {
	_, err := NewParser(&brokenReader{prefix: "(sat "}).Parse()
	if err == nil || err == io.EOF {
		t.Errorf("got %v; want a read failure", err)
	}
}
