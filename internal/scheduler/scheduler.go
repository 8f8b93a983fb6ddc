// Package scheduler runs the background jobs: the Sunday narrative
// generation and the hourly cache sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/quietcheck/mood-server/internal/dates"
	"github.com/quietcheck/mood-server/internal/llm"
	"github.com/quietcheck/mood-server/internal/store"
)

// Pruner is anything with expired state to sweep.
type Pruner interface {
	PruneCaches() int
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	store     *store.Store
	llm       *llm.Client
	pruner    Pruner
	timezone  *time.Location
}

// New creates a scheduler in the given timezone. An unknown timezone
// falls back to UTC.
func New(st *store.Store, llmClient *llm.Client, pruner Pruner, timezone string) (*Scheduler, error) {
	tz, err := time.LoadLocation(timezone)
	if err != nil {
		tz = time.UTC
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(tz))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		store:     st,
		llm:       llmClient,
		pruner:    pruner,
		timezone:  tz,
	}, nil
}

// Start registers all jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	// Weekly narrative on Sunday at 08:00
	_, err := s.scheduler.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.generateWeeklyNarrative),
		gocron.WithName("weekly-narrative"),
	)
	if err != nil {
		return err
	}

	// Sweep expired narrative cache entries every hour
	_, err = s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.pruneCaches),
		gocron.WithName("prune-caches"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) generateWeeklyNarrative() {
	log.Println("Running weekly narrative generation...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if !s.llm.Configured() {
		log.Println("Skipping weekly narrative: narrative client not configured")
		return
	}

	all, err := s.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		return
	}

	now := time.Now().In(s.timezone)
	week := dates.LastNDays(all, now, 7)
	if len(week) == 0 {
		log.Println("Skipping weekly narrative: no entries this week")
		return
	}

	text, err := s.llm.WeeklyInsight(ctx, llm.FormatEntriesDigest(week))
	if err != nil {
		log.Printf("Error generating weekly narrative: %v", err)
		return
	}

	year, isoWeek := now.ISOWeek()
	weekStr := fmt.Sprintf("%d-W%02d", year, isoWeek)
	narrativeID := "nar_" + weekStr + "_weekly"

	if err := s.store.SaveNarrative(narrativeID, "weekly", dates.Day(now), text); err != nil {
		log.Printf("Error saving weekly narrative: %v", err)
		return
	}
	log.Printf("Generated weekly narrative %s", narrativeID)
}

func (s *Scheduler) pruneCaches() {
	if dropped := s.pruner.PruneCaches(); dropped > 0 {
		log.Printf("Pruned %d expired cache entries", dropped)
	}
}
