package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
	"github.com/goliatone/go-dashgrid/components/dashgrid/commands"
)

const (
	// ActorHeader carries the id of the user performing a gesture.
	ActorHeader = "X-Actor-ID"
	// TenantHeader carries the tenant of the acting user.
	TenantHeader = "X-Tenant-ID"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	DragStop     gocommand.Commander[commands.DragStopInput]
	ResizeStop   gocommand.Commander[commands.ResizeStopInput]
	LayoutChange gocommand.Commander[commands.LayoutChangeInput]
	BeginGesture gocommand.Commander[commands.BeginGestureInput]
	MoveGesture  gocommand.Commander[commands.MoveGestureInput]
	EndGesture   gocommand.Commander[commands.EndGestureInput]
	Cancel       gocommand.Commander[commands.CancelGestureInput]
	// Actor identifies the caller; defaults to ActorFromHeaders.
	Actor func(*http.Request) dashgrid.ActorContext
}

// ActorFromHeaders reads the actor and tenant ids from request headers.
func ActorFromHeaders(r *http.Request) dashgrid.ActorContext {
	return dashgrid.ActorContext{
		ActorID:  strings.TrimSpace(r.Header.Get(ActorHeader)),
		TenantID: strings.TrimSpace(r.Header.Get(TenantHeader)),
	}
}

func (h *Handlers) withActor(r *http.Request) context.Context {
	return requestContext(r, h.Actor)
}

func requestContext(r *http.Request, actor func(*http.Request) dashgrid.ActorContext) context.Context {
	if actor == nil {
		actor = ActorFromHeaders
	}
	return dashgrid.ContextWithActor(r.Context(), actor(r))
}

func (h *Handlers) HandleDragStop(w http.ResponseWriter, r *http.Request) {
	var payload commands.DragStopInput
	if !decode(w, r, &payload) {
		return
	}
	respond(w, execute(h.withActor(r), h.DragStop, payload), http.StatusNoContent)
}

func (h *Handlers) HandleResizeStop(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResizeStopInput
	if !decode(w, r, &payload) {
		return
	}
	respond(w, execute(h.withActor(r), h.ResizeStop, payload), http.StatusNoContent)
}

func (h *Handlers) HandleLayoutChange(w http.ResponseWriter, r *http.Request) {
	var payload commands.LayoutChangeInput
	if !decode(w, r, &payload) {
		return
	}
	respond(w, execute(h.withActor(r), h.LayoutChange, payload), http.StatusOK)
}

// HandleBeginGesture starts a tracked gesture on the panel named by the path.
func (h *Handlers) HandleBeginGesture(w http.ResponseWriter, r *http.Request, dashboardID, panelKey string) {
	var payload commands.BeginGestureInput
	if !decode(w, r, &payload) {
		return
	}
	payload.DashboardID, payload.PanelKey = dashboardID, panelKey
	respond(w, execute(h.withActor(r), h.BeginGesture, payload), http.StatusNoContent)
}

func (h *Handlers) HandleMoveGesture(w http.ResponseWriter, r *http.Request, dashboardID, panelKey string) {
	var payload commands.MoveGestureInput
	if !decode(w, r, &payload) {
		return
	}
	payload.DashboardID, payload.PanelKey = dashboardID, panelKey
	respond(w, execute(h.withActor(r), h.MoveGesture, payload), http.StatusNoContent)
}

// HandleEndGesture stops the tracked gesture and commits its final rectangle.
func (h *Handlers) HandleEndGesture(w http.ResponseWriter, r *http.Request, dashboardID, panelKey string) {
	var payload commands.EndGestureInput
	if !decode(w, r, &payload) {
		return
	}
	payload.DashboardID, payload.PanelKey = dashboardID, panelKey
	respond(w, execute(h.withActor(r), h.EndGesture, payload), http.StatusNoContent)
}

func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request, dashboardID, panelKey string) {
	input := commands.CancelGestureInput{DashboardID: dashboardID, PanelKey: panelKey}
	respond(w, execute(h.withActor(r), h.Cancel, input), http.StatusNoContent)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, err error, status int) {
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(status)
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashgrid.ErrDashboardNotFound), errors.Is(err, dashgrid.ErrPanelNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashgrid.ErrPanelNotDraggable), errors.Is(err, dashgrid.ErrPanelNotResizable):
		return http.StatusConflict
	case errors.Is(err, dashgrid.ErrGestureInProgress), errors.Is(err, dashgrid.ErrNoActiveGesture):
		return http.StatusConflict
	case errors.Is(err, dashgrid.ErrInvalidFinalRect):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errUnknownMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
