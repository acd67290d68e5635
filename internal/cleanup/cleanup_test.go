package cleanup

import (
	"errors"
	"strings"
	"testing"
)

func TestRunAll_ReverseOrderAndJoinedErrors(t *testing.T) {
	var order []int
	errClose := errors.New("broken pipe")
	Register("first", func() error { order = append(order, 1); return nil })
	Register("nil hook", nil)
	Register("log file", func() error { order = append(order, 2); return errClose })
	Register("client", func() error { order = append(order, 3); return nil })

	err := RunAll()
	if !errors.Is(err, errClose) || !strings.Contains(err.Error(), "close log file: broken pipe") {
		t.Fatalf("expected named close error, got %v", err)
	}
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Fatalf("unexpected hook order: %v", order)
	}
	if err := RunAll(); err != nil {
		t.Fatalf("hooks must be cleared after RunAll, got %v", err)
	}
}
