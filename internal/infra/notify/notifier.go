// Package notify delivers best-effort desktop notifications.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/quvia/centre/internal/domain"
)

// Ensure Desktop implements domain.Notifier.
var _ domain.Notifier = (*Desktop)(nil)

// Desktop sends notifications through the platform notifier command.
// Delivery failures are logged and otherwise ignored.
type Desktop struct {
	logger domain.Logger
}

// NewDesktop creates a desktop notifier.
func NewDesktop(logger domain.Logger) *Desktop {
	return &Desktop{logger: logger}
}

// TaskDone announces a completed item.
func (d *Desktop) TaskDone(title string) {
	d.send("Centre - Task Completed", fmt.Sprintf("Completed: %s", title))
}

// EstimateReached announces a running item that hit its estimate.
func (d *Desktop) EstimateReached(title string) {
	d.send("Centre - Estimate Reached", fmt.Sprintf("Estimate reached: %s", title))
}

// send dispatches the notification without waiting for the command to
// finish.
func (d *Desktop) send(title, message string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", escape(message), escape(title))
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		cmd = exec.Command("notify-send", title, message)
	default:
		return
	}

	if err := cmd.Start(); err != nil {
		d.logger.Warn("notify", fmt.Sprintf("notification failed: %v", err))
		return
	}
	// reap the child in the background
	go func() { _ = cmd.Wait() }()
}

// escape strips characters that would break out of the osascript string.
func escape(s string) string {
	return strings.NewReplacer("\"", "'", "\\", "").Replace(s)
}
