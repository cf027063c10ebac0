package utils

import (
	"log"
	"time"
)

// Timer reports named stage durations the way the original implementation's
// TimerStart/TimerStopAndLog macro pair did, as one explicit start/stop call
// pair instead of a preprocessor macro.
type Timer struct {
	name  string
	start time.Time
}

// TimerStart begins timing a named stage and logs its start.
func TimerStart(name string) *Timer {
	log.Printf("--> %s starting...", name)
	return &Timer{name: name, start: time.Now()}
}

// Stop logs the stage's elapsed wall-clock time.
func (t *Timer) Stop() {
	elapsed := time.Since(t.start)
	log.Printf("<-- %s done: %s", t.name, elapsed)
}

// Log reports the stage finished without an elapsed time, mirroring
// TimerLog for stages whose cost is negligible or measured elsewhere.
func (t *Timer) Log() {
	log.Printf("<-- %s", t.name)
}
