package game

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/rigaguess/internal/dataset"
)

func quizSession(t *testing.T, n int) *Session {
	t.Helper()
	qs := make([]dataset.QuizQuestion, n)
	for i := range qs {
		qs[i] = question("A")
	}
	s := New(withQuiz(newCatalog(sale(1)), qs...), &scriptedRand{})
	if _, err := s.Dispatch(Action{Kind: ActSetMode, Mode: ModeQuiz}); err != nil {
		t.Fatalf("enter quiz: %v", err)
	}
	return s
}

func TestDispatchAdvanceIsEdgeTriggered(t *testing.T) {
	s := quizSession(t, 3)

	click := Action{Seq: 1, Kind: ActAdvance}
	if _, err := s.Dispatch(click); err != nil {
		t.Fatalf("advance: %v", err)
	}
	// Same click redelivered (re-render, retry): must not advance again.
	if _, err := s.Dispatch(click); !errors.Is(err, ErrStaleAction) {
		t.Fatalf("expected ErrStaleAction, got %v", err)
	}
	if s.QuizIndex != 1 {
		t.Fatalf("QuizIndex = %d; want 1", s.QuizIndex)
	}

	// A fresh click advances.
	if _, err := s.Dispatch(Action{Seq: 2, Kind: ActAdvance}); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.QuizIndex != 2 {
		t.Fatalf("QuizIndex = %d; want 2", s.QuizIndex)
	}
}

func TestDispatchCheckTwiceDoesNotDoubleScore(t *testing.T) {
	s := quizSession(t, 2)

	for seq := uint64(1); seq <= 3; seq++ {
		out, err := s.Dispatch(Action{Seq: seq, Kind: ActCheckAnswer, Label: "A"})
		if err != nil {
			t.Fatalf("check %d: %v", seq, err)
		}
		if out.Answer == nil || !out.Answer.Correct {
			t.Fatalf("check %d: unexpected outcome %+v", seq, out)
		}
	}
	if s.Score != 1 || s.Rounds != 1 {
		t.Fatalf("score/rounds = %d/%d; want 1/1", s.Score, s.Rounds)
	}
}

func TestDispatchConsumesSeqOnFailure(t *testing.T) {
	s := quizSession(t, 1)

	if _, err := s.Dispatch(Action{Seq: 5, Kind: ActCheckAnswer}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if s.LastSeq != 5 {
		t.Fatalf("LastSeq = %d; want 5", s.LastSeq)
	}
	if _, err := s.Dispatch(Action{Seq: 4, Kind: ActCheckAnswer, Label: "A"}); !errors.Is(err, ErrStaleAction) {
		t.Fatalf("expected ErrStaleAction, got %v", err)
	}
	if s.Rounds != 0 {
		t.Fatal("stale action must not be applied")
	}
}

func TestDispatchUnsequencedAlwaysApplies(t *testing.T) {
	s := New(newCatalog(sale(100)), &scriptedRand{})
	for i := 0; i < 3; i++ {
		if _, err := s.Dispatch(Action{Kind: ActGuess, Amount: 100}); err != nil {
			t.Fatalf("guess: %v", err)
		}
	}
	if s.Rounds != 3 || s.Score != 15 {
		t.Fatalf("score/rounds = %d/%d; want 15/3", s.Score, s.Rounds)
	}
}

func TestDispatchRejectsWrongMode(t *testing.T) {
	s := New(newCatalog(sale(1), sale(2)), &scriptedRand{})

	if _, err := s.Dispatch(Action{Kind: ActChoose, Side: SideA}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected ErrWrongMode, got %v", err)
	}
	if _, err := s.Dispatch(Action{Kind: ActSetMode, Mode: ModeComparison}); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	out, err := s.Dispatch(Action{Kind: ActChoose, Side: SideB})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if out.Comparison == nil || s.Rounds != 1 {
		t.Fatalf("unexpected outcome %+v rounds=%d", out, s.Rounds)
	}
	if _, err := s.Dispatch(Action{Kind: ActGuess, Amount: 1}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected ErrWrongMode, got %v", err)
	}
}

func TestDispatchUnknown(t *testing.T) {
	s := New(newCatalog(sale(1)), &scriptedRand{})
	if _, err := s.Dispatch(Action{Kind: "dance"}); err == nil {
		t.Fatal("expected error for unknown action")
	}
	if _, err := s.Dispatch(Action{Kind: ActSetMode, Mode: "poker"}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestDispatchClearsNoticeAndTouches(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return fixed }

	s := New(newCatalog(sale(1)), &scriptedRand{})
	s.Notice = "old"
	if _, err := s.Dispatch(Action{Kind: ActNextListing}); err != nil {
		t.Fatal(err)
	}
	if s.Notice != "" {
		t.Errorf("notice not cleared: %q", s.Notice)
	}
	if !s.LastActivity.Equal(fixed) {
		t.Errorf("LastActivity = %v; want %v", s.LastActivity, fixed)
	}
}

func TestDispatchAdvanceRequiresSeq(t *testing.T) {
	s := quizSession(t, 3)
	for i := 0; i < 2; i++ {
		if _, err := s.Dispatch(Action{Kind: ActAdvance}); !errors.Is(err, ErrSeqRequired) {
			t.Fatalf("expected ErrSeqRequired, got %v", err)
		}
	}
	if s.QuizIndex != 0 {
		t.Fatalf("QuizIndex = %d; want 0", s.QuizIndex)
	}
}

func TestTouch(t *testing.T) {
	fixed := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	defer func(orig func() time.Time) { now = orig }(now)

	s := New(newCatalog(sale(1)), &scriptedRand{})
	now = func() time.Time { return fixed }
	s.Touch()
	if !s.LastActivity.Equal(fixed) {
		t.Fatalf("LastActivity = %v; want %v", s.LastActivity, fixed)
	}
}
