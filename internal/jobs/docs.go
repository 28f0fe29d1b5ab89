// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order marketplace.
//
// # Available Jobs
//
// 1. UnclaimedReminderJob - Runs every five minutes to re-announce orders
// that have sat unclaimed past the staleness threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, dispatcher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder sweep is best-effort: repository failures abort one sweep
// and are retried on the next tick, dispatch failures skip one order.
package jobs
