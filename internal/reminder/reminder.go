package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/app"
	"github.com/mattwilson20/ascrl-platform/internal/metrics"
	"github.com/mattwilson20/ascrl-platform/internal/models"
	"github.com/mattwilson20/ascrl-platform/internal/store"
)

const (
	// pollInterval is how often the scan job runs.
	pollInterval = 60 * time.Second
	// leadTime is how far ahead of a race the reminder fires.
	leadTime = time.Hour
	// window must match pollInterval: a race is "one hour out" for exactly
	// one scan, which is what makes delivery one-time without any persisted
	// already-notified marker.
	window = 60 * time.Second
)

// Sender delivers a reminder message to one chat.
type Sender interface {
	SendTo(chatID int64, text string) error
}

// Scheduler is the perpetual background loop. Once per minute it loads the
// current season's races across all series and announces any race whose
// start falls inside the one-hour-out window. A failed cycle never stops the
// next one; it ends only with process shutdown.
type Scheduler struct {
	store     store.LeagueStore
	subs      *app.Subscriptions
	sender    Sender
	season    string
	timeLabel string
	sched     *gocron.Scheduler
}

func New(s store.LeagueStore, subs *app.Subscriptions, sender Sender, season, timeLabel string) *Scheduler {
	return &Scheduler{
		store:     s,
		subs:      subs,
		sender:    sender,
		season:    season,
		timeLabel: timeLabel,
	}
}

func (s *Scheduler) Start() error {
	sched := gocron.NewScheduler(time.UTC)
	if _, err := sched.Every(pollInterval).Do(s.scan); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	sched.StartAsync()
	s.sched = sched
	logger.Info.Printf("Reminder scheduler started, polling every %s", pollInterval)
	return nil
}

func (s *Scheduler) Stop() {
	if s.sched != nil {
		s.sched.Stop()
	}
}

func (s *Scheduler) scan() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error.Printf("Reminder cycle panicked: %v", r)
		}
	}()

	races, err := s.store.ListRaces(s.season, nil)
	if err != nil {
		logger.Error.Printf("Reminder cycle failed to load races: %v", err)
		return
	}

	for _, race := range dueRaces(races, time.Now().UTC()) {
		s.announce(race)
	}
}

// dueRaces filters races whose scheduled instant is one hour out of now.
// Races with unparseable dates are skipped without affecting the rest.
func dueRaces(races []models.Race, now time.Time) []models.Race {
	var due []models.Race
	for _, race := range races {
		start, err := race.StartTime()
		if err != nil {
			logger.Debug.Printf("Skipping race in reminder scan: %v", err)
			continue
		}
		delta := start.Sub(now)
		if delta >= leadTime && delta <= leadTime+window {
			due = append(due, race)
		}
	}
	return due
}

func (s *Scheduler) announce(race models.Race) {
	subscribers, err := s.subs.ListSubscribers(context.Background(), race.Series)
	if err != nil {
		logger.Error.Printf("Failed to list reminder subscribers for %s: %v", race.Series, err)
		return
	}

	for _, sub := range subscribers {
		text := fmt.Sprintf(
			"🏁 %s Series Race Reminder - %s\nTrack: %s\nDate: %s\nTime: %s\nAudience: %s",
			race.Series, race.Season, race.Track, race.Date, s.timeLabel, sub.Tag,
		)
		if err := s.sender.SendTo(sub.ChatID, text); err != nil {
			logger.Error.Printf("Failed to deliver reminder to chat %d: %v", sub.ChatID, err)
			continue
		}
		metrics.RemindersSentTotal.WithLabelValues(string(race.Series)).Inc()
	}

	logger.Info.Printf("Sent reminder for %s race at %s", race.Series, race.Track)
}
