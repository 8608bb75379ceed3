package registry

import (
	"testing"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

func TestRegisterAndCreate(t *testing.T) {
	var got Params
	Register("test-echo", "Echo", func(p Params) duel.DirectionSource {
		got = p
		return duel.Straight
	})

	if !Exists("test-echo") {
		t.Fatal("Exists() = false after Register")
	}

	want := Params{Seed: 9, Epsilon: 0.5, Retries: 2}
	src, err := Create("test-echo", want)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if src == nil {
		t.Fatal("Create() returned nil source")
	}
	if got != want {
		t.Errorf("factory received %+v, expected %+v", got, want)
	}

	found := false
	for _, info := range List() {
		if info.ID == "test-echo" {
			found = true
			if info.Title != "Echo" {
				t.Errorf("Title = %q, expected Echo", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() missing registered strategy")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-bot", DefaultParams()); err == nil {
		t.Error("expected error for unknown strategy")
	}
	if Exists("no-such-bot") {
		t.Error("Exists() = true for unknown strategy")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Params) duel.DirectionSource { return duel.Straight }
	Register("test-dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", "Dup", f)
}

func TestListSorted(t *testing.T) {
	f := func(Params) duel.DirectionSource { return duel.Straight }
	Register("test-zz", "ZZ", f)
	Register("test-aa", "AA", f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
