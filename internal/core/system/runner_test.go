package system

import (
	"testing"
	"time"
)

type orderedSystem struct {
	phase Phase
	name  string
	log   *[]string
}

func (s *orderedSystem) Phase() Phase { return s.phase }

func (s *orderedSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestTickRunsPhasesInOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&orderedSystem{phase: PhaseOutput, name: "render", log: &log})
	r.Register(&orderedSystem{phase: PhaseInput, name: "input", log: &log})
	r.Register(&orderedSystem{phase: PhaseUpdate, name: "physics", log: &log})

	r.Tick(16 * time.Millisecond)

	want := []string{"input", "physics", "render"}
	if len(log) != len(want) {
		t.Fatalf("ran %d systems, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("run order %v, want %v", log, want)
		}
	}
}

func TestRegistrationOrderBreaksPhaseTies(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&orderedSystem{phase: PhaseUpdate, name: "a", log: &log})
	r.Register(&orderedSystem{phase: PhaseUpdate, name: "b", log: &log})
	r.Register(&orderedSystem{phase: PhaseUpdate, name: "c", log: &log})

	for frame := 0; frame < 3; frame++ {
		log = log[:0]
		r.Tick(time.Millisecond)
		if log[0] != "a" || log[1] != "b" || log[2] != "c" {
			t.Fatalf("frame %d ran %v, want [a b c]", frame, log)
		}
	}
}

func TestLateRegistrationResorts(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&orderedSystem{phase: PhaseUpdate, name: "update", log: &log})
	r.Tick(time.Millisecond)

	r.Register(&orderedSystem{phase: PhaseInput, name: "input", log: &log})
	log = log[:0]
	r.Tick(time.Millisecond)

	if len(log) != 2 || log[0] != "input" || log[1] != "update" {
		t.Fatalf("run order %v, want [input update]", log)
	}
	if r.Len() != 2 {
		t.Fatalf("runner holds %d systems, want 2", r.Len())
	}
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&orderedSystem{phase: PhaseInput, name: "input", log: &log})
	r.Register(&orderedSystem{phase: PhaseCleanup, name: "cleanup", log: &log})

	r.TickPhase(PhaseCleanup, time.Millisecond)

	if len(log) != 1 || log[0] != "cleanup" {
		t.Fatalf("ran %v, want [cleanup]", log)
	}
}
