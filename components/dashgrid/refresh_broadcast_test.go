package dashgrid

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	defer cancel()
	event := PanelEvent{DashboardID: "ops", PanelKey: "a", Reason: "drag"}
	if err := hook.PanelUpdated(context.Background(), event); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e != event {
			t.Fatalf("expected %#v, got %#v", event, e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookFiltersByDashboard(t *testing.T) {
	hook := NewBroadcastHook()
	ops, cancelOps := hook.Subscribe("ops")
	defer cancelOps()
	all, cancelAll := hook.Subscribe("")
	defer cancelAll()

	ctx := context.Background()
	if err := hook.PanelUpdated(ctx, PanelEvent{DashboardID: "sales", PanelKey: "revenue"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
	if err := hook.PanelUpdated(ctx, PanelEvent{DashboardID: "ops", PanelKey: "cpu"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}

	if e := <-ops; e.DashboardID != "ops" {
		t.Fatalf("expected only ops events, got %#v", e)
	}
	select {
	case e := <-ops:
		t.Fatalf("unexpected extra event %#v", e)
	default:
	}
	if len(all) != 2 {
		t.Fatalf("expected unfiltered subscriber to receive both events, got %d", len(all))
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after cancel")
	}
	if err := hook.PanelUpdated(context.Background(), PanelEvent{DashboardID: "ops"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
}

func TestBroadcastHookDropsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe("")
	defer cancel()
	for i := 0; i < 32; i++ {
		if err := hook.PanelUpdated(context.Background(), PanelEvent{DashboardID: "ops"}); err != nil {
			t.Fatalf("PanelUpdated returned error: %v", err)
		}
	}
}

type failingHook struct{ calls int }

func (h *failingHook) PanelUpdated(context.Context, PanelEvent) error {
	h.calls++
	return errors.New("boom")
}

func TestRefreshHooksJoinErrors(t *testing.T) {
	first, second := &failingHook{}, &failingHook{}
	hooks := RefreshHooks{first, nil, second}
	err := hooks.PanelUpdated(context.Background(), PanelEvent{})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("expected every hook notified, got %d and %d", first.calls, second.calls)
	}
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?dashboard_id=ops"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	event := PanelEvent{DashboardID: "ops", PanelKey: "a", GridPos: GridRect{X: 5, Y: 3, W: 4, H: 2}, Reason: "drag"}
	done := make(chan struct{})
	defer close(done)
	// the server subscribes after the upgrade, so publish until the client reads
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = hook.PanelUpdated(context.Background(), PanelEvent{DashboardID: "sales", Reason: "drag"})
				_ = hook.PanelUpdated(context.Background(), event)
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got PanelEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got != event {
		t.Fatalf("expected %#v, got %#v", event, got)
	}
}
