// Package jobs runs the scheduled background work of the dispatch service on
// github.com/robfig/cron/v3 schedules with a seconds field.
//
// # Available Jobs
//
//  1. ExpiryReaperJob sweeps expired orders, overdue deliveries and lapsed
//     transfer offers. Default schedule "*/30 * * * * *".
//  2. OutboxDispatchJob drains the outbox to the notification gateway and the
//     settlement publisher. Default schedule "* * * * * *".
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(jobs.Schedules{Reaper: "*/30 * * * * *", Outbox: "* * * * * *"},
//	    sweepHandler, dispatchHandler, batchSize, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. Both jobs are
// idempotent, so overlapping runs on several instances are harmless.
package jobs
