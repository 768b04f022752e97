package solver

import (
	"strings"

	"github.com/devlynnx/solidity/smtlib"
)

// QueryKind tags every request handed to a query callback, followed by
// a space and the backend command line.
const QueryKind = "smt-query"

// Backend command lines, consulted in this order when enabled.
const (
	Z3Command   = "z3 rlimit=1000000"
	CVC4Command = "cvc4"
)

// Callback sends one query to one backend and returns its raw reply.
// A non-nil error means the backend was unavailable; the dispatcher
// skips it and moves on, it is not an error for the overall verdict.
type Callback func(kind string, query string) (string, error)

// Dispatcher runs an encoder's accumulated script against every
// enabled backend, one at a time, and reduces the replies to a single
// verdict. One dispatcher pairs with one encoder for the lifetime of a
// session; neither is safe for concurrent use.
type Dispatcher struct {
	enc       *smtlib.Encoder
	callback  Callback
	config    Config
	unhandled []string
}

func NewDispatcher(enc *smtlib.Encoder, callback Callback, config Config) *Dispatcher {
	if callback == nil {
		panic("solver: dispatcher needs a query callback")
	}
	return &Dispatcher{enc: enc, callback: callback, config: config}
}

// Check sends the script plus a check-sat tail to each enabled backend
// and aggregates: the first definitive answer (sat or unsat) wins;
// a later definitive answer that disagrees turns the verdict into
// Conflicting and stops the loop; unknown only upgrades Error. On a
// satisfiable verdict the returned values are the raw value tokens for
// the evaluated expressions, parsed from the winning backend's reply
// in reply order. Check never fails: with no usable answer it returns
// Error and records the query for offline diagnosis.
func (d *Dispatcher) Check(toEvaluate []smtlib.Expression) (CheckResult, []string) {
	query := d.DumpQuery(toEvaluate)

	var commands []string
	if d.config.Z3 {
		commands = append(commands, Z3Command)
	}
	if d.config.CVC4 {
		commands = append(commands, CVC4Command)
	}

	lastResult := Error
	var finalValues []string
	for _, command := range commands {
		response, err := d.callback(QueryKind+" "+command, query)
		if err != nil {
			continue
		}
		result := classify(response)
		if answered(result) {
			if !answered(lastResult) {
				lastResult = result
				if result == Satisfiable {
					finalValues = parseValues(response)
				}
			} else if lastResult != result {
				lastResult = Conflicting
				break
			}
		} else if result == Unknown && lastResult == Error {
			lastResult = Unknown
		}
	}
	if lastResult == Error {
		d.unhandled = append(d.unhandled, query)
	}
	return lastResult, finalValues
}

// DumpQuery returns the exact text Check would send for the given
// expressions, without sending it. Useful for reproducer scripts.
func (d *Dispatcher) DumpQuery(toEvaluate []smtlib.Expression) string {
	return d.enc.FullScript() + d.enc.CheckCommand(toEvaluate)
}

// UnhandledQueries lists the queries no backend could answer, in the
// order they were attempted.
func (d *Dispatcher) UnhandledQueries() []string {
	return d.unhandled
}

// classify reads the verdict off the first line of a reply.
func classify(response string) CheckResult {
	switch {
	case strings.HasPrefix(response, "sat"):
		return Satisfiable
	case strings.HasPrefix(response, "unsat"):
		return Unsatisfiable
	case strings.HasPrefix(response, "unknown"):
		return Unknown
	default:
		return Error
	}
}

func answered(result CheckResult) bool {
	return result == Satisfiable || result == Unsatisfiable
}

// parseValues scans a satisfiable reply for (name value) pairs after
// the verdict line and collects the value tokens in reply order. This
// is a lexical scan, not a parse: it assumes no nested parentheses
// inside a value token, which holds for the primitive numeric, boolean
// and bitvector literals the check command can request. Structured
// values would need the sexpr reader.
func parseValues(response string) []string {
	var values []string
	start := strings.IndexByte(response, '\n')
	if start < 0 {
		return values
	}
	rest := response[start:]
	for len(rest) > 0 {
		valStart := strings.IndexByte(rest, ' ')
		if valStart < 0 {
			values = append(values, "")
			break
		}
		valStart++
		valEnd := strings.IndexByte(rest[valStart:], ')')
		if valEnd < 0 {
			valEnd = len(rest) - valStart
		}
		values = append(values, rest[valStart:valStart+valEnd])
		next := strings.IndexByte(rest[valStart+valEnd:], '(')
		if next < 0 {
			break
		}
		rest = rest[valStart+valEnd+next:]
	}
	return values
}
