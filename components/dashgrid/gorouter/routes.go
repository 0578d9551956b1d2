package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
	"github.com/goliatone/go-dashgrid/components/dashgrid/commands"
	"github.com/goliatone/go-dashgrid/components/dashgrid/httpapi"
)

// EditableResolver decides whether the caller may edit the dashboard layout.
type EditableResolver func(router.Context) bool

// ActorResolver identifies the caller behind a request.
type ActorResolver func(router.Context) dashgrid.ActorContext

// Config wires go-router with dashgrid controllers, APIs, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashgrid.Controller
	API        httpapi.Executor
	Broadcast  *dashgrid.BroadcastHook
	Editable   EditableResolver
	Actor      ActorResolver
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashgrid endpoints.
type RouteConfig struct {
	Layout       string
	Drag         string
	Resize       string
	LayoutChange string
	Gesture      string
	GestureEnd   string
	WebSocket    string
}

// Register mounts layout, gesture, and WebSocket routes on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	editable := cfg.Editable
	if editable == nil {
		editable = defaultEditableResolver
	}
	actor := cfg.Actor
	if actor == nil {
		actor = defaultActorResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		lctx, err := parseLayoutContext(func(key string) string { return ctx.Query(key) })
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload, err := cfg.Controller.LayoutPayload(requestContext(ctx, actor), ctx.Param("id"), lctx, editable(ctx))
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, actor, routes)
	}

	if cfg.Broadcast != nil || cfg.API != nil {
		registerWebSocket(group, cfg.Broadcast, cfg.API, actor, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, actor ActorResolver, routes RouteConfig) {
	r.Post(routes.Drag, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.DragStopInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID, payload.PanelKey = ctx.Param("id"), ctx.Param("key")
		if err := api.DragStop(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "committed"})
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResizeStopInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID, payload.PanelKey = ctx.Param("id"), ctx.Param("key")
		if err := api.ResizeStop(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "committed"})
	}))

	r.Post(routes.LayoutChange, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.LayoutChangeInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID = ctx.Param("id")
		if err := api.LayoutChange(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Gesture, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.BeginGestureInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID, payload.PanelKey = ctx.Param("id"), ctx.Param("key")
		if err := api.BeginGesture(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "started"})
	}))

	r.Patch(routes.Gesture, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.MoveGestureInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID, payload.PanelKey = ctx.Param("id"), ctx.Param("key")
		if err := api.MoveGesture(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.GestureEnd, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.EndGestureInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID, payload.PanelKey = ctx.Param("id"), ctx.Param("key")
		if err := api.EndGesture(requestContext(ctx, actor), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "committed"})
	}))

	r.Delete(routes.Gesture, router.WrapHandler(func(ctx router.Context) error {
		input := commands.CancelGestureInput{DashboardID: ctx.Param("id"), PanelKey: ctx.Param("key")}
		if input.PanelKey == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("panel key is required"))
		}
		if err := api.Cancel(requestContext(ctx, actor), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
	}))
}

// registerWebSocket streams committed panel events and, when an executor is
// configured, accepts gesture messages on the same connection. Gestures left
// open when the connection drops are cancelled.
func registerWebSocket[T any](r router.Router[T], hook *dashgrid.BroadcastHook, api httpapi.Executor, actor ActorResolver, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		ctx := requestContext(ws, actor)

		var events <-chan dashgrid.PanelEvent
		if hook != nil {
			ch, cancel := hook.Subscribe(ws.Query(dashgrid.DashboardQueryParam))
			defer cancel()
			events = ch
		}

		var (
			session *httpapi.GestureSession
			inbound chan struct{}
		)
		replies := make(chan httpapi.GestureReply)
		stop := make(chan struct{})
		if api != nil {
			session = httpapi.NewGestureSession(api)
			inbound = make(chan struct{})
			go readGestures(ctx, ws, session, replies, inbound, stop)
		}
		defer func() {
			close(stop)
			if session == nil {
				return
			}
			_ = ws.Close()
			<-inbound
			_ = session.Close(context.WithoutCancel(ctx))
		}()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case reply := <-replies:
				if err := ws.WriteJSON(reply); err != nil {
					return err
				}
			case <-inbound:
				return ws.Close()
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func readGestures(ctx context.Context, ws router.WebSocketContext, session *httpapi.GestureSession, replies chan<- httpapi.GestureReply, inbound, stop chan struct{}) {
	defer close(inbound)
	for {
		var msg httpapi.GestureMessage
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		reply := session.Handle(ctx, msg)
		select {
		case replies <- reply:
		case <-stop:
			return
		}
	}
}

func requestContext(ctx router.Context, actor ActorResolver) context.Context {
	return dashgrid.ContextWithActor(ctx.Context(), actor(ctx))
}

func defaultActorResolver(ctx router.Context) dashgrid.ActorContext {
	actor := dashgrid.ActorContext{
		ActorID:  strings.TrimSpace(ctx.Header(httpapi.ActorHeader)),
		TenantID: strings.TrimSpace(ctx.Header(httpapi.TenantHeader)),
	}
	if v, ok := ctx.Locals("actor_id").(string); ok && v != "" {
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok && v != "" {
		actor.TenantID = v
	}
	return actor
}

func defaultEditableResolver(ctx router.Context) bool {
	if v, ok := ctx.Locals("can_edit").(bool); ok {
		return v
	}
	return parseBool(ctx.Query("editable"))
}

// parseLayoutContext reads the container and viewport measurements from query
// parameters. Missing values stay zero; a zero container width yields an empty
// layout rather than an error.
func parseLayoutContext(query func(string) string) (dashgrid.LayoutContext, error) {
	var lctx dashgrid.LayoutContext
	fields := []struct {
		name string
		dst  *float64
	}{
		{"container_width", &lctx.ContainerWidth},
		{"viewport_width", &lctx.ViewportWidth},
		{"viewport_height", &lctx.ViewportHeight},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(query(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return dashgrid.LayoutContext{}, fmt.Errorf("invalid %s %q", f.name, raw)
		}
		*f.dst = v
	}
	if strings.EqualFold(query("previous_mode"), dashgrid.ModeStacked.String()) {
		lctx.PreviousMode = dashgrid.ModeStacked
	}
	return lctx, nil
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Layout == "" {
		routes.Layout = "/dashboards/:id/_layout"
	}
	if routes.Drag == "" {
		routes.Drag = "/dashboards/:id/panels/:key/drag"
	}
	if routes.Resize == "" {
		routes.Resize = "/dashboards/:id/panels/:key/resize"
	}
	if routes.LayoutChange == "" {
		routes.LayoutChange = "/dashboards/:id/layout"
	}
	if routes.Gesture == "" {
		routes.Gesture = "/dashboards/:id/panels/:key/gesture"
	}
	if routes.GestureEnd == "" {
		routes.GestureEnd = "/dashboards/:id/panels/:key/gesture/end"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboards/ws"
	}
	return routes
}
