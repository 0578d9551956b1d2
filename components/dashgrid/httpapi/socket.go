package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// GestureSocket serves a bidirectional WebSocket. Committed panel events flow
// out; gesture messages flow in and are answered with a GestureReply.
type GestureSocket struct {
	Broadcast *dashgrid.BroadcastHook
	API       Executor
	Actor     func(*http.Request) dashgrid.ActorContext
	Upgrader  websocket.Upgrader
}

func (s *GestureSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ctx := requestContext(r, s.Actor)

	var events <-chan dashgrid.PanelEvent
	if s.Broadcast != nil {
		ch, cancel := s.Broadcast.Subscribe(r.URL.Query().Get(dashgrid.DashboardQueryParam))
		defer cancel()
		events = ch
	}

	session := NewGestureSession(s.API)
	replies := make(chan GestureReply)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg GestureMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			reply := session.Handle(ctx, msg)
			select {
			case replies <- reply:
			case <-stop:
				return
			}
		}
	}()
	defer func() {
		close(stop)
		_ = conn.Close()
		<-done
		_ = session.Close(context.WithoutCancel(ctx))
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case reply := <-replies:
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
