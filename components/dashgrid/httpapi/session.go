package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
	"github.com/goliatone/go-dashgrid/components/dashgrid/commands"
)

// Gesture message types accepted on a gesture stream.
const (
	MessageBegin  = "begin"
	MessageMove   = "move"
	MessageEnd    = "end"
	MessageCancel = "cancel"
)

var errUnknownMessage = errors.New("httpapi: unknown gesture message")

// GestureMessage is one inbound frame of a gesture stream.
type GestureMessage struct {
	Type        string                 `json:"type"`
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Kind        dashgrid.GestureKind   `json:"kind,omitempty"`
	Context     dashgrid.LayoutContext `json:"context"`
	Rect        dashgrid.PixelRect     `json:"rect"`
}

// GestureReply acknowledges a GestureMessage.
type GestureReply struct {
	Type     string `json:"type"`
	Ref      string `json:"ref"`
	PanelKey string `json:"panel_key,omitempty"`
	Status   int    `json:"status"`
	Error    string `json:"error,omitempty"`
}

type gestureRef struct {
	dashboardID string
	panelKey    string
}

// GestureSession drives gestures for one client connection. Gestures the
// client began but never ended are cancelled on Close, so a dropped
// connection does not leave its panels locked.
type GestureSession struct {
	api  Executor
	mu   sync.Mutex
	open map[gestureRef]struct{}
}

// NewGestureSession creates a session on top of the executor.
func NewGestureSession(api Executor) *GestureSession {
	return &GestureSession{api: api, open: make(map[gestureRef]struct{})}
}

// Handle executes a single message and reports the outcome.
func (s *GestureSession) Handle(ctx context.Context, msg GestureMessage) GestureReply {
	ref := gestureRef{dashboardID: msg.DashboardID, panelKey: msg.PanelKey}
	var err error
	switch msg.Type {
	case MessageBegin, MessageMove, MessageEnd, MessageCancel:
		if s.api == nil {
			return errorReply(msg, errCommandNotConfigured)
		}
	}
	switch msg.Type {
	case MessageBegin:
		err = s.api.BeginGesture(ctx, commands.BeginGestureInput{
			DashboardID: msg.DashboardID,
			PanelKey:    msg.PanelKey,
			Kind:        msg.Kind,
			Context:     msg.Context,
		})
		if err == nil {
			s.track(ref)
		}
	case MessageMove:
		err = s.api.MoveGesture(ctx, commands.MoveGestureInput{
			DashboardID: msg.DashboardID,
			PanelKey:    msg.PanelKey,
			Context:     msg.Context,
			Rect:        msg.Rect,
		})
	case MessageEnd:
		s.untrack(ref)
		err = s.api.EndGesture(ctx, commands.EndGestureInput{
			DashboardID: msg.DashboardID,
			PanelKey:    msg.PanelKey,
			Context:     msg.Context,
			Rect:        msg.Rect,
		})
	case MessageCancel:
		s.untrack(ref)
		err = s.api.Cancel(ctx, commands.CancelGestureInput{DashboardID: msg.DashboardID, PanelKey: msg.PanelKey})
	default:
		err = fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}
	if err != nil {
		return errorReply(msg, err)
	}
	return GestureReply{Type: "ack", Ref: msg.Type, PanelKey: msg.PanelKey, Status: http.StatusOK}
}

func errorReply(msg GestureMessage, err error) GestureReply {
	return GestureReply{
		Type:     "error",
		Ref:      msg.Type,
		PanelKey: msg.PanelKey,
		Status:   StatusFor(err),
		Error:    err.Error(),
	}
}

// Open reports how many gestures the session still holds.
func (s *GestureSession) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Close cancels every gesture left open by the client.
func (s *GestureSession) Close(ctx context.Context) error {
	s.mu.Lock()
	refs := make([]gestureRef, 0, len(s.open))
	for ref := range s.open {
		refs = append(refs, ref)
	}
	clear(s.open)
	s.mu.Unlock()

	if s.api == nil {
		return nil
	}
	var err error
	for _, ref := range refs {
		err = errors.Join(err, s.api.Cancel(ctx, commands.CancelGestureInput{
			DashboardID: ref.dashboardID,
			PanelKey:    ref.panelKey,
		}))
	}
	return err
}

func (s *GestureSession) track(ref gestureRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[ref] = struct{}{}
}

func (s *GestureSession) untrack(ref gestureRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, ref)
}
