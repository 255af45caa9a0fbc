package langutil

import (
	"errors"
	"testing"

	tserrors "github.com/tsutils/tsutils/pkg/errors"
)

func TestReGroup(t *testing.T) {
	got, err := ReGroup("status=active id=42", `id=(\d+)`, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "42" {
		t.Errorf("want 42, got %q", got)
	}
}

func TestReGroupWholeMatch(t *testing.T) {
	got, err := ReGroup("error: timeout", `timeout`, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "timeout" {
		t.Errorf("want timeout, got %q", got)
	}
}

func TestReGroupCaseInsensitive(t *testing.T) {
	if _, err := ReGroup("Status=OK", `status=(\w+)`, 1, false); !errors.Is(err, tserrors.ErrNoMatch) {
		t.Errorf("case-sensitive match should fail, got %v", err)
	}

	got, err := ReGroup("Status=OK", `status=(\w+)`, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "OK" {
		t.Errorf("want OK, got %q", got)
	}
}

func TestReGroupNoMatch(t *testing.T) {
	if _, err := ReGroup("abc", `(\d+)`, 1, false); !errors.Is(err, tserrors.ErrNoMatch) {
		t.Errorf("want ErrNoMatch, got %v", err)
	}
	// Out-of-range group index / 越界的组索引
	if _, err := ReGroup("abc", `(a)`, 5, false); !errors.Is(err, tserrors.ErrNoMatch) {
		t.Errorf("want ErrNoMatch, got %v", err)
	}
}

func TestReGroupBadPattern(t *testing.T) {
	if _, err := ReGroup("abc", `(`, 1, false); err == nil {
		t.Error("expected compile error")
	}
}
