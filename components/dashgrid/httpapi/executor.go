package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid/commands"
)

// Executor is the write surface transports need. It lets go-router and
// net/http adapters share the same command set.
type Executor interface {
	DragStop(ctx context.Context, input commands.DragStopInput) error
	ResizeStop(ctx context.Context, input commands.ResizeStopInput) error
	LayoutChange(ctx context.Context, input commands.LayoutChangeInput) error
	BeginGesture(ctx context.Context, input commands.BeginGestureInput) error
	MoveGesture(ctx context.Context, input commands.MoveGestureInput) error
	EndGesture(ctx context.Context, input commands.EndGestureInput) error
	Cancel(ctx context.Context, input commands.CancelGestureInput) error
}

// CommandExecutor adapts go-command commanders to Executor.
type CommandExecutor struct {
	DragStopCmd     gocommand.Commander[commands.DragStopInput]
	ResizeStopCmd   gocommand.Commander[commands.ResizeStopInput]
	LayoutChangeCmd gocommand.Commander[commands.LayoutChangeInput]
	BeginGestureCmd gocommand.Commander[commands.BeginGestureInput]
	MoveGestureCmd  gocommand.Commander[commands.MoveGestureInput]
	EndGestureCmd   gocommand.Commander[commands.EndGestureInput]
	CancelCmd       gocommand.Commander[commands.CancelGestureInput]
}

var _ Executor = (*CommandExecutor)(nil)

var errCommandNotConfigured = errors.New("httpapi: command not configured")

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], input T) error {
	if cmd == nil {
		return errCommandNotConfigured
	}
	return cmd.Execute(ctx, input)
}

func (e *CommandExecutor) DragStop(ctx context.Context, input commands.DragStopInput) error {
	return execute(ctx, e.DragStopCmd, input)
}

func (e *CommandExecutor) ResizeStop(ctx context.Context, input commands.ResizeStopInput) error {
	return execute(ctx, e.ResizeStopCmd, input)
}

func (e *CommandExecutor) LayoutChange(ctx context.Context, input commands.LayoutChangeInput) error {
	return execute(ctx, e.LayoutChangeCmd, input)
}

func (e *CommandExecutor) BeginGesture(ctx context.Context, input commands.BeginGestureInput) error {
	return execute(ctx, e.BeginGestureCmd, input)
}

func (e *CommandExecutor) MoveGesture(ctx context.Context, input commands.MoveGestureInput) error {
	return execute(ctx, e.MoveGestureCmd, input)
}

func (e *CommandExecutor) EndGesture(ctx context.Context, input commands.EndGestureInput) error {
	return execute(ctx, e.EndGestureCmd, input)
}

func (e *CommandExecutor) Cancel(ctx context.Context, input commands.CancelGestureInput) error {
	return execute(ctx, e.CancelCmd, input)
}
