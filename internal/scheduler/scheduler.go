package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

type Scheduler struct {
	instance gocron.Scheduler
	location *time.Location
	logger   zerolog.Logger
}

// JobInfo is the live metadata of a registered job.
type JobInfo struct {
	Name    string
	NextRun time.Time
}

func NewScheduler(loc *time.Location, logger zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		instance: s,
		location: loc,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}, nil
}

// AddDailyJob runs job every day at hour:minute in the scheduler's timezone.
// A run still in progress when the next one is due is rescheduled, not stacked.
func (s *Scheduler) AddDailyJob(name, tag string, hour, minute int, job func()) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid daily time %02d:%02d for job %s", hour, minute, name)
	}
	_, err := s.instance.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(job),
		gocron.WithName(name),
		gocron.WithTags(tag),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("error adding job %s to scheduler: %w", name, err)
	}
	s.logger.Info().Str("job", name).Msgf("Scheduled daily at %02d:%02d %s", hour, minute, s.location)
	return nil
}

// Jobs lists registered jobs ordered by their next run.
func (s *Scheduler) Jobs() []JobInfo {
	jobs := s.instance.Jobs()
	infos := make([]JobInfo, 0, len(jobs))
	for _, j := range jobs {
		next, err := j.NextRun()
		if err != nil {
			s.logger.Debug().Err(err).Str("job", j.Name()).Msg("Could not read next run")
		}
		infos = append(infos, JobInfo{Name: j.Name(), NextRun: next})
	}
	sort.SliceStable(infos, func(i, k int) bool {
		return infos[i].NextRun.Before(infos[k].NextRun)
	})
	return infos
}

func (s *Scheduler) Location() *time.Location {
	return s.location
}

func (s *Scheduler) Start() {
	s.instance.Start()
	s.logger.Info().Msg("Scheduler started")
}

func (s *Scheduler) Shutdown() error {
	return s.instance.Shutdown()
}
