package registry

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string { return s.id }
func (s stubGame) Title() string { return "Stub " + s.id }
func (s stubGame) Reset(core.RuntimeConfig) {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen) {}
func (s stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{"stub-b"} })
	Register("stub-a", func() Game { return stubGame{"stub-a"} })

	if !Exists("stub-a") || Exists("missing") {
		t.Error("Exists reported wrong membership")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID = %q", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	list := List()
	idx := map[string]int{}
	for i, info := range list {
		idx[info.ID] = i
	}
	if idx["stub-a"] > idx["stub-b"] {
		t.Error("List should be sorted by ID")
	}
	if list[idx["stub-a"]].Title != "Stub stub-a" {
		t.Errorf("title = %q", list[idx["stub-a"]].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{"stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{"stub-dup"} })
}
