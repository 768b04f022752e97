package solver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command returns a query callback that runs solver binaries found in
// PATH, piping the query over stdin and returning stdout. The backend
// command line is taken from the request label after the query-kind
// tag. timeout bounds one solver run; zero leaves it unbounded.
func Command(timeout time.Duration) Callback {
	return func(kind, query string) (string, error) {
		command, ok := strings.CutPrefix(kind, QueryKind+" ")
		if !ok {
			panic(fmt.Sprintf("solver: unexpected query kind '%s'", kind))
		}
		fields := strings.Fields(command)
		if len(fields) == 0 {
			panic("solver: empty backend command")
		}
		args := fields[1:]
		switch fields[0] {
		case "z3":
			args = append(args, "-in")
		case "cvc4":
			args = append(args, "--lang", "smt2")
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		cmd := exec.CommandContext(ctx, fields[0], args...)
		cmd.Stdin = strings.NewReader(query)
		var out, errOut bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &errOut
		if err := cmd.Run(); err != nil {
			return "", fmt.Errorf("running '%s': %w: %s", command, err, strings.TrimSpace(errOut.String()))
		}
		return out.String(), nil
	}
}
