package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
	"github.com/goliatone/go-dashgrid/components/dashgrid/commands"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

func TestHandleDragStop(t *testing.T) {
	drag := &stubCommander[commands.DragStopInput]{}
	api := &Handlers{DragStop: drag}
	payload := commands.DragStopInput{DashboardID: "ops", PanelKey: "a", Top: 120, Left: 250}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/panels/drag", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleDragStop(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if drag.last.Left != 250 || drag.last.PanelKey != "a" {
		t.Fatalf("expected payload propagation, got %#v", drag.last)
	}
}

func TestHandleDragStopRejectsBadJSON(t *testing.T) {
	drag := &stubCommander[commands.DragStopInput]{}
	api := &Handlers{DragStop: drag}
	req := httptest.NewRequest(http.MethodPost, "/panels/drag", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	api.HandleDragStop(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if drag.calls != 0 {
		t.Fatalf("expected command not executed")
	}
}

func TestHandleResizeStopMapsErrors(t *testing.T) {
	resize := &stubCommander[commands.ResizeStopInput]{err: fmt.Errorf("%w: row", dashgrid.ErrPanelNotResizable)}
	api := &Handlers{ResizeStop: resize}
	buf, _ := json.Marshal(commands.ResizeStopInput{DashboardID: "ops", PanelKey: "row"})
	req := httptest.NewRequest(http.MethodPost, "/panels/resize", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleResizeStop(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandleLayoutChange(t *testing.T) {
	change := &stubCommander[commands.LayoutChangeInput]{}
	api := &Handlers{LayoutChange: change}
	payload := commands.LayoutChangeInput{DashboardID: "ops", Items: []dashgrid.LayoutItem{{Key: "a"}}}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/layout", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleLayoutChange(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if change.calls != 1 || len(change.last.Items) != 1 {
		t.Fatalf("expected layout change to execute")
	}
}

func TestHandleCancel(t *testing.T) {
	cancel := &stubCommander[commands.CancelGestureInput]{}
	api := &Handlers{Cancel: cancel}
	req := httptest.NewRequest(http.MethodDelete, "/panels/a/gesture", nil)
	rec := httptest.NewRecorder()
	api.HandleCancel(rec, req, "ops", "a")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if cancel.last.PanelKey != "a" || cancel.last.DashboardID != "ops" {
		t.Fatalf("expected id propagation")
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		dashgrid.ErrDashboardNotFound: http.StatusNotFound,
		dashgrid.ErrPanelNotFound:     http.StatusNotFound,
		dashgrid.ErrPanelNotDraggable: http.StatusConflict,
		dashgrid.ErrInvalidFinalRect:  http.StatusUnprocessableEntity,
		dashgrid.ErrGestureInProgress: http.StatusConflict,
		errUnknownMessage:             http.StatusBadRequest,
		errors.New("other"):           http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := StatusFor(fmt.Errorf("wrapped: %w", err)); got != want {
			t.Fatalf("StatusFor(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestCommandExecutor(t *testing.T) {
	drag := &stubCommander[commands.DragStopInput]{}
	exec := &CommandExecutor{DragStopCmd: drag}
	if err := exec.DragStop(context.Background(), commands.DragStopInput{PanelKey: "a"}); err != nil {
		t.Fatalf("DragStop returned error: %v", err)
	}
	if drag.calls != 1 {
		t.Fatalf("expected drag command executed")
	}
	if err := exec.ResizeStop(context.Background(), commands.ResizeStopInput{}); !errors.Is(err, errCommandNotConfigured) {
		t.Fatalf("expected errCommandNotConfigured, got %v", err)
	}
}

func TestHandleGestureLifecycle(t *testing.T) {
	begin := &stubCommander[commands.BeginGestureInput]{}
	move := &stubCommander[commands.MoveGestureInput]{}
	end := &stubCommander[commands.EndGestureInput]{}
	api := &Handlers{BeginGesture: begin, MoveGesture: move, EndGesture: end}

	req := httptest.NewRequest(http.MethodPost, "/dashboards/ops/panels/a/gesture", bytes.NewReader([]byte(`{"kind":"resize"}`)))
	rec := httptest.NewRecorder()
	api.HandleBeginGesture(rec, req, "ops", "a")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if begin.last.Kind != dashgrid.GestureResize || begin.last.DashboardID != "ops" || begin.last.PanelKey != "a" {
		t.Fatalf("expected begin payload propagation, got %#v", begin.last)
	}

	req = httptest.NewRequest(http.MethodPatch, "/dashboards/ops/panels/a/gesture", bytes.NewReader([]byte(`{"rect":{"width":300,"height":120}}`)))
	rec = httptest.NewRecorder()
	api.HandleMoveGesture(rec, req, "ops", "a")
	if rec.Code != http.StatusNoContent || move.last.Rect.Width != 300 {
		t.Fatalf("expected move propagation, got %d %#v", rec.Code, move.last)
	}

	end.err = fmt.Errorf("%w: ops/a", dashgrid.ErrNoActiveGesture)
	req = httptest.NewRequest(http.MethodPost, "/dashboards/ops/panels/a/gesture/end", bytes.NewReader([]byte(`{}`)))
	rec = httptest.NewRecorder()
	api.HandleEndGesture(rec, req, "ops", "a")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without an active gesture, got %d", rec.Code)
	}
}

func TestHandlersAttachActorFromHeaders(t *testing.T) {
	var seen dashgrid.ActorContext
	drag := commanderFunc[commands.DragStopInput](func(ctx context.Context, _ commands.DragStopInput) error {
		seen = dashgrid.ActorFromContext(ctx)
		return nil
	})
	api := &Handlers{DragStop: drag}
	req := httptest.NewRequest(http.MethodPost, "/panels/drag", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(ActorHeader, "user-1")
	req.Header.Set(TenantHeader, "acme")
	api.HandleDragStop(httptest.NewRecorder(), req)
	if seen != (dashgrid.ActorContext{ActorID: "user-1", TenantID: "acme"}) {
		t.Fatalf("expected actor from headers, got %#v", seen)
	}
}

func TestHandlersWithoutCommandReportError(t *testing.T) {
	api := &Handlers{}
	req := httptest.NewRequest(http.MethodDelete, "/dashboards/ops/panels/a/gesture", nil)
	rec := httptest.NewRecorder()
	api.HandleCancel(rec, req, "ops", "a")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for missing command, got %d", rec.Code)
	}
}

type commanderFunc[T any] func(ctx context.Context, msg T) error

func (f commanderFunc[T]) Execute(ctx context.Context, msg T) error {
	return f(ctx, msg)
}
