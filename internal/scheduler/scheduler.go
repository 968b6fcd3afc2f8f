// Package scheduler periodically re-evaluates the default alert rules over
// every saved field and logs triggered alerts.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/frnietz/agroclimate/internal/advisory"
	"github.com/frnietz/agroclimate/internal/climate"
)

// Scheduler drives the periodic alert check.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	service      *advisory.Service
	interval     time.Duration
	lookbackDays int
}

// New creates a Scheduler that re-checks alerts every interval over the
// trailing lookbackDays of archive data.
func New(service *advisory.Service, interval time.Duration, lookbackDays int) *Scheduler {
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		service:      service,
		interval:     interval,
		lookbackDays: lookbackDays,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: alert checks disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// runOnce walks the saved fields and evaluates the default drought-week and
// heat-day rules plus the forecast peek for each. Failures are logged and
// skipped; one bad field never stops the sweep.
func (s *Scheduler) runOnce() {
	log.Println("scheduler: running alert check over saved fields")

	names, err := s.service.Fields().List()
	if err != nil {
		log.Printf("scheduler: listing fields failed: %v", err)
		return
	}
	if len(names) == 0 {
		return
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -s.lookbackDays).Format("2006-01-02")
	end := now.Format("2006-01-02")

	rain := climate.WeeklyRainRule{ThresholdMM: climate.DefaultWeeklyRainThresholdMM}
	heat := climate.HeatRule{
		Month:      now.Month(),
		ThresholdC: climate.DefaultHeatThresholdC,
		MinDays:    climate.DefaultHeatMinDays,
	}

	for _, name := range names {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		report, err := s.service.EvaluateAlerts(ctx, advisory.Scope{FieldName: name}, start, end, rain, heat, true)
		cancel()
		if err != nil {
			log.Printf("scheduler: alert check failed for field %q: %v", name, err)
			continue
		}

		if n := len(report.WeeklyRain.Triggered); n > 0 {
			log.Printf("scheduler: field %q: %d dry week(s) below %.0f mm", name, n, rain.ThresholdMM)
		}
		if report.Heat.Triggered {
			log.Printf("scheduler: field %q: %d heat day(s) at or above %.0f C in %s", name, report.Heat.Count, heat.ThresholdC, heat.Month)
		}
		if report.Peek != nil && (report.Peek.LowRainExpected || report.Peek.HeatExpected) {
			log.Printf("scheduler: field %q: forecast peek warns (low rain: %t, heat days: %d)", name, report.Peek.LowRainExpected, report.Peek.HeatDays)
		}
	}

	log.Println("scheduler: completed alert check")
}
