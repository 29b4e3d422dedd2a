package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// Jobs register themselves from init() in their own packages (see
// cron/jobs) to avoid a config -> cron/jobs -> config import cycle.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
