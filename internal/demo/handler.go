package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marmos91/nutshell/pkg/shell"
	"github.com/marmos91/nutshell/pkg/shell/response"
)

// Handler implements shell.Handler and shell.AsyncHandler for the demo
// command tree. It holds no reference back to the Shell (spec.md
// section 5: "Handlers may mutate their own state but must not access
// the Shell"); CurrentUser is instead supplied as a callback the demo
// binary wires up after construction, purely so "whoami" has something
// to print.
type Handler struct {
	started     time.Time
	CurrentUser func() string
}

// NewHandler returns a Handler with its uptime clock started now.
func NewHandler() *Handler {
	return &Handler{started: time.Now()}
}

var _ shell.Handler = (*Handler)(nil)
var _ shell.AsyncHandler = (*Handler)(nil)

// ExecuteSync dispatches the Sync-kind demo commands.
func (h *Handler) ExecuteSync(ctx context.Context, id string, args []string) (shell.Response, error) {
	switch id {
	case CmdEcho:
		return response.Success(strings.Join(args, " ")), nil
	case CmdWhoAmI:
		name := "(unauthenticated)"
		if h.CurrentUser != nil {
			if u := h.CurrentUser(); u != "" {
				name = u
			}
		}
		return response.Success(name), nil
	case CmdUptime:
		return response.Success(time.Since(h.started).Round(time.Second).String()), nil
	case CmdStatus:
		return response.Success("all subsystems nominal"), nil
	default:
		return shell.Response{}, shell.Fail(fmt.Sprintf("unknown command %q", id))
	}
}

// ExecuteAsync dispatches the Async-kind demo commands: each simulates
// work with a short sleep so the difference between ProcessChar and
// ProcessCharAsync is observable.
func (h *Handler) ExecuteAsync(ctx context.Context, id string, args []string) (shell.Response, error) {
	switch id {
	case CmdDiskUsage:
		if err := sleep(ctx, 150*time.Millisecond); err != nil {
			return shell.Response{}, err
		}
		return response.Success("store0: 41% used, store1: 7% used"), nil
	case CmdReboot:
		if err := sleep(ctx, 300*time.Millisecond); err != nil {
			return shell.Response{}, err
		}
		return response.Success("reboot scheduled"), nil
	case CmdLongTask:
		label := "task"
		if len(args) > 0 {
			label = args[0]
		}
		if err := sleep(ctx, 500*time.Millisecond); err != nil {
			return shell.Response{}, err
		}
		return response.Success(label + " completed"), nil
	default:
		return shell.Response{}, shell.Fail(fmt.Sprintf("unknown command %q", id))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
