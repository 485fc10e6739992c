// Package jobs provides scheduled background tasks for the fulfilment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are cron expressions with a leading seconds field.
//
// # Available Jobs
//
// 1. OrderArchiveJob - Saves orders that are new or changed state into the order archive
// 2. PickerSimulationJob - Steps simulated picking stations so orders move without manual input
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOrderArchiveJob(archiveHandler, "*/10 * * * * *", logger),
//		jobs.NewPickerSimulationJob(stations, "*/2 * * * * *", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The archive job logs every failure; the next run retries the same orders
// - The picker simulation ignores an empty queue and orders lost to another station
// - A failed start stops the jobs already running
package jobs
