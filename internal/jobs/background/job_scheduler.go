package background

import (
	"context"
	"log"
	"time"

	"kubramarket/internal/jobs"
	"kubramarket/internal/models"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the maintenance scans off the request path.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.AlertService
	jobs      map[string]gocron.Job
}

func NewJobScheduler(alertSvc *jobs.AlertService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		jobs:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(func() {
			if err := js.alertSvc.CheckLowStock(context.Background(), models.DefaultLowStockThreshold); err != nil {
				log.Printf("Low-stock scan failed: %v", err)
			}
		}),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low-stock job: %v", err)
	} else {
		js.jobs["low-stock-scan"] = lowStockJob
	}

	rentalJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			if err := js.alertSvc.RemindRentalsDue(context.Background()); err != nil {
				log.Printf("Rental reminder scan failed: %v", err)
			}
		}),
		gocron.WithName("rental-due-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create rental reminder job: %v", err)
	} else {
		js.jobs["rental-due-reminder"] = rentalJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}
