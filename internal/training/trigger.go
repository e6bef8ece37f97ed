package training

import (
	"log"
	"os/exec"
	"sync"
	"time"
)

// SubprocessTrigger launches the offline training script as a detached
// process. Launches are debounced so bursts of recorded turns spawn at
// most one job per interval, and never more than one at a time.
type SubprocessTrigger struct {
	command  string
	args     []string
	interval time.Duration

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// NewSubprocessTrigger creates a trigger for the given command.
func NewSubprocessTrigger(command string, args ...string) *SubprocessTrigger {
	return &SubprocessTrigger{
		command:  command,
		args:     args,
		interval: 5 * time.Minute,
	}
}

// TriggerOfflineJob starts the training job if one is not already
// running and the debounce interval has passed. It never blocks on the
// job itself.
func (t *SubprocessTrigger) TriggerOfflineJob() {
	t.mu.Lock()
	if t.running || time.Since(t.lastRun) < t.interval {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.lastRun = time.Now()
	t.mu.Unlock()

	cmd := exec.Command(t.command, t.args...)
	if err := cmd.Start(); err != nil {
		log.Printf("Training: failed to start job %s: %v", t.command, err)
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		return
	}

	log.Printf("Training: started offline job pid=%d", cmd.Process.Pid)

	go func() {
		err := cmd.Wait()
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		if err != nil {
			log.Printf("Training: offline job exited with error: %v", err)
			return
		}
		log.Printf("Training: offline job finished")
	}()
}
