package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAddDailyJobValidation(t *testing.T) {
	s, err := NewScheduler(time.UTC, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	defer s.Shutdown()

	if err := s.AddDailyJob("bad", "autopost", 24, 0, func() {}); err == nil {
		t.Error("Expected error for hour 24")
	}
	if err := s.AddDailyJob("bad", "autopost", 10, 60, func() {}); err == nil {
		t.Error("Expected error for minute 60")
	}
}

func TestJobsReportNextRuns(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	s, err := NewScheduler(loc, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	defer s.Shutdown()

	if err := s.AddDailyJob("autopost_18:00", "autopost", 18, 0, func() {}); err != nil {
		t.Fatalf("AddDailyJob() error = %v", err)
	}
	if err := s.AddDailyJob("autopost_10:00", "autopost", 10, 0, func() {}); err != nil {
		t.Fatalf("AddDailyJob() error = %v", err)
	}
	s.Start()

	var jobs []JobInfo
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		jobs = s.Jobs()
		if len(jobs) == 2 && !jobs[0].NextRun.IsZero() && !jobs[1].NextRun.IsZero() {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	for _, j := range jobs {
		if j.NextRun.IsZero() {
			t.Fatalf("Job %s has no next run", j.Name)
		}
		next := j.NextRun.In(loc)
		if next.Minute() != 0 || (next.Hour() != 10 && next.Hour() != 18) {
			t.Errorf("Job %s next run %s is not at 10:00 or 18:00 MSK", j.Name, next)
		}
		if !next.After(time.Now()) {
			t.Errorf("Job %s next run %s is not in the future", j.Name, next)
		}
	}
	if jobs[1].NextRun.Before(jobs[0].NextRun) {
		t.Error("Jobs should be ordered by next run")
	}
}
