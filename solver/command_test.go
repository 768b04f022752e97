package solver

import (
	"strings"
	"testing"
	"time"
)

func TestCommand_WrongKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	callback := Command(time.Second)
	callback("file-query z3", "(check-sat)\n")
}

func TestCommand_UnavailableBackend(t *testing.T) {
	callback := Command(time.Second)
	_, err := callback(QueryKind+" no-such-solver-binary", "(check-sat)\n")
	if err == nil {
		t.Errorf("expected error for a binary that is not installed")
	}
	if err != nil && !strings.Contains(err.Error(), "no-such-solver-binary") {
		t.Errorf("got %v; want the backend command in the error", err)
	}
}
