package scheduler

import (
	"testing"

	"github.com/quietcheck/mood-server/internal/llm"
)

type fakePruner struct {
	calls   int
	dropped int
}

func (f *fakePruner) PruneCaches() int {
	f.calls++
	return f.dropped
}

func TestNewFallsBackToUTC(t *testing.T) {
	s, err := New(nil, llm.NewClient("", "", "gpt-4o-mini"), &fakePruner{}, "Not/AZone")
	if err != nil {
		t.Fatalf("creating scheduler: %v", err)
	}
	defer s.Stop()

	if s.timezone.String() != "UTC" {
		t.Errorf("expected UTC fallback, got %s", s.timezone)
	}
}

func TestStartAndStop(t *testing.T) {
	s, err := New(nil, llm.NewClient("", "", "gpt-4o-mini"), &fakePruner{}, "UTC")
	if err != nil {
		t.Fatalf("creating scheduler: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("starting scheduler: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stopping scheduler: %v", err)
	}
}

func TestPruneJobCallsPruner(t *testing.T) {
	p := &fakePruner{dropped: 2}
	s, err := New(nil, llm.NewClient("", "", "gpt-4o-mini"), p, "UTC")
	if err != nil {
		t.Fatalf("creating scheduler: %v", err)
	}
	defer s.Stop()

	s.pruneCaches()
	if p.calls != 1 {
		t.Errorf("expected pruner to be called once, got %d", p.calls)
	}
}
