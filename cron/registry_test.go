package cron

import (
	"testing"
)

func TestRegisterAndListJobs(t *testing.T) {
	var gotArgs []string
	Register("nightlysync", "0 4 * * *", func(args ...string) {
		gotArgs = args
	})
	defer Unregister("nightlysync")

	jobs := Jobs()
	j, ok := jobs["nightlysync"]
	if !ok {
		t.Fatal("nightlysync not in Jobs()")
	}
	if j.Schedule != "0 4 * * *" {
		t.Errorf("Schedule = %q, want 0 4 * * *", j.Schedule)
	}
	j.Run("colors")
	if len(gotArgs) != 1 || gotArgs[0] != "colors" {
		t.Errorf("Run args = %v, want [colors]", gotArgs)
	}
}

func TestRegisterDuplicateJobPanics(t *testing.T) {
	Register("dupsync", "@hourly", func(...string) {})
	defer Unregister("dupsync")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupsync", "@daily", func(...string) {})
}

func TestRegisterAfterLockPanics(t *testing.T) {
	Register("lockprobe", "@daily", func(...string) {})
	defer Unregister("lockprobe")

	Jobs() // locks the registry
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic after lock")
		}
	}()
	Register("latejob", "@daily", func(...string) {})
}
