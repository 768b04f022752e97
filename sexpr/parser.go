package sexpr

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnexpectedEOF reports solver output that became unreadable or
// ended in the middle of a token. It is distinct from a clean end of
// input, which Parse reports as io.EOF: truncated output means the
// solver died or the pipe broke, not that there is no more data.
var ErrUnexpectedEOF = errors.New("sexpr: unexpected end of input")

// Parser is a recursive-descent reader over a character stream.
type Parser struct {
	in  io.ByteReader
	tok byte
	eof bool
}

// NewParser reads from r one byte at a time. The parser never reads
// further than it has to: after a closing ')' the next character stays
// in r, since an interactive source may not have produced it yet.
func NewParser(r io.ByteReader) *Parser {
	return &Parser{in: r, tok: ' '}
}

// Parse reads one expression. At a clean end of input it returns
// io.EOF; a stream that breaks or runs out mid-token yields an error
// wrapping ErrUnexpectedEOF. A list left open at end of input is
// malformed caller input and panics.
func (p *Parser) Parse() (Node, error) {
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if p.tok == 0 {
		return nil, io.EOF
	}
	if p.tok != '(' {
		token, err := p.parseToken()
		if err != nil {
			return nil, err
		}
		return Atom(token), nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	list := List{}
	for p.tok != 0 && p.tok != ')' {
		sub, err := p.Parse()
		if err != nil {
			return nil, err
		}
		list = append(list, sub)
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
	}
	if p.tok != ')' {
		panic("sexpr: unbalanced input")
	}
	// Simulate whitespace instead of reading past the ')'. The next
	// character might not be available yet and reading it would block.
	p.tok = ' '
	return list, nil
}

func (p *Parser) parseToken() (string, error) {
	var result strings.Builder

	if err := p.skipWhitespace(); err != nil {
		return "", err
	}
	pipe := p.tok == '|'
	if pipe {
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	closed := false
	for p.tok != 0 {
		c := p.tok
		if pipe && c == '|' {
			if err := p.advance(); err != nil {
				return "", err
			}
			closed = true
			break
		}
		if !pipe && (isWhitespace(c) || c == '(' || c == ')') {
			break
		}
		result.WriteByte(c)
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	if pipe && !closed {
		return "", fmt.Errorf("sexpr: unterminated |%s: %w", result.String(), ErrUnexpectedEOF)
	}
	return result.String(), nil
}

func (p *Parser) advance() error {
	if p.eof {
		return fmt.Errorf("sexpr: read past end of solver output: %w", ErrUnexpectedEOF)
	}
	if err := p.readByte(); err != nil {
		return err
	}
	// Comments run to end of line and count as the newline itself.
	if p.tok == ';' {
		for p.tok != '\n' && p.tok != 0 {
			if err := p.readByte(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) readByte() error {
	b, err := p.in.ReadByte()
	if err == io.EOF {
		p.eof = true
		p.tok = 0
		return nil
	}
	if err != nil {
		p.eof = true
		p.tok = 0
		return fmt.Errorf("sexpr: reading solver output: %w", err)
	}
	p.tok = b
	return nil
}

func (p *Parser) skipWhitespace() error {
	for isWhitespace(p.tok) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Parse reads the first expression of s.
func Parse(s string) (Node, error) {
	return NewParser(strings.NewReader(s)).Parse()
}
