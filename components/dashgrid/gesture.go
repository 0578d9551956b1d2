package dashgrid

import (
	"errors"
	"fmt"
	"sync"
)

// GestureKind distinguishes drag from resize gestures.
type GestureKind int

const (
	// GestureDrag moves a panel; only X/Y change on commit.
	GestureDrag GestureKind = iota + 1
	// GestureResize resizes a panel; only W/H change on commit.
	GestureResize
)

func (k GestureKind) String() string {
	switch k {
	case GestureDrag:
		return "drag"
	case GestureResize:
		return "resize"
	default:
		return "unknown"
	}
}

// ParseGestureKind maps "drag" or "resize" onto a GestureKind.
func ParseGestureKind(raw string) (GestureKind, error) {
	switch raw {
	case "drag":
		return GestureDrag, nil
	case "resize":
		return GestureResize, nil
	default:
		return 0, fmt.Errorf("dashgrid: unknown gesture kind %q", raw)
	}
}

func (k GestureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *GestureKind) UnmarshalText(text []byte) error {
	kind, err := ParseGestureKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

var (
	// ErrNoActiveGesture is returned when moving or stopping a panel that has no gesture in progress.
	ErrNoActiveGesture = errors.New("dashgrid: no active gesture for panel")
	// ErrGestureInProgress is returned when a second gesture starts on the same panel.
	ErrGestureInProgress = errors.New("dashgrid: gesture already in progress for panel")
	// ErrInvalidFinalRect is returned when a gesture stops without a usable pixel rectangle.
	ErrInvalidFinalRect = errors.New("dashgrid: gesture final rectangle is not finite")
)

// Gesture is a drag or resize interaction on one panel.
type Gesture struct {
	Key    string
	Kind   GestureKind
	Origin GridRect
	Live   PixelRect
	Moves  int
}

// LiveState returns the override to feed into ToPixelRectLive while the gesture runs.
func (g Gesture) LiveState() LiveState {
	live := g.Live
	switch g.Kind {
	case GestureResize:
		return LiveState{Resizing: &live}
	default:
		return LiveState{Dragging: &live}
	}
}

// GestureTracker holds transient gesture state. Intermediate moves only touch
// this state; the committed GridRect of a panel is never changed here.
type GestureTracker struct {
	mu     sync.Mutex
	active map[string]Gesture
}

// NewGestureTracker creates an empty tracker.
func NewGestureTracker() *GestureTracker {
	return &GestureTracker{active: make(map[string]Gesture)}
}

// Begin starts a gesture for the panel key.
func (t *GestureTracker) Begin(key string, kind GestureKind, origin GridRect, start PixelRect) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.active[key]; ok {
		return fmt.Errorf("%w: %s", ErrGestureInProgress, key)
	}
	t.active[key] = Gesture{Key: key, Kind: kind, Origin: origin, Live: start}
	return nil
}

// Move records an intermediate pixel rectangle.
func (t *GestureTracker) Move(key string, rect PixelRect) (LiveState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.active[key]
	if !ok {
		return LiveState{}, fmt.Errorf("%w: %s", ErrNoActiveGesture, key)
	}
	g.Live = rect
	g.Moves++
	t.active[key] = g
	return g.LiveState(), nil
}

// Live returns the in-flight gesture for a panel.
func (t *GestureTracker) Live(key string) (Gesture, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.active[key]
	return g, ok
}

// Stop ends the gesture with its final pixel rectangle. The gesture is removed
// either way; an invalid final rectangle is reported and must not be committed.
func (t *GestureTracker) Stop(key string, final PixelRect) (Gesture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.active[key]
	if !ok {
		return Gesture{}, fmt.Errorf("%w: %s", ErrNoActiveGesture, key)
	}
	delete(t.active, key)
	if !final.IsFinite() {
		return Gesture{}, fmt.Errorf("%w: %s", ErrInvalidFinalRect, key)
	}
	g.Live = final
	return g, nil
}

// Cancel aborts the gesture. It reports whether one was active.
func (t *GestureTracker) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[key]
	delete(t.active, key)
	return ok
}

// Commit converts a stopped gesture into the panel's next GridRect.
func (g Gesture) Commit(cfg GridConfig) GridRect {
	next := g.Origin
	switch g.Kind {
	case GestureResize:
		size := ToGridRectFromResize(cfg, g.Live.Width, g.Live.Height, g.Origin.X, g.Origin.Y)
		next.W, next.H = size.W, size.H
	default:
		point := ToGridRectFromDrag(cfg, g.Live.Top, g.Live.Left, g.Origin.W, g.Origin.H)
		next.X, next.Y = point.X, point.Y
	}
	return next
}
