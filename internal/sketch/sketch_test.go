package sketch

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
)

type fakeSource struct {
	l Listener
}

func (f *fakeSource) Listen(l Listener) {
	f.l = l
}

func newSketch(t *testing.T) (*Sketch, *fakeSource, *canvas.Recorder) {
	t.Helper()
	rec := canvas.NewRecorder(800, 600)
	src := &fakeSource{}
	s := New(rec, src, config.DefaultTheme())
	require.Same(t, s, src.l)
	return s, src, rec
}

func place(l Listener, pts ...Vec) {
	for _, p := range pts {
		Replay(Click(p.X, p.Y), l)
	}
}

func TestNewRendersEmpty(t *testing.T) {
	s, _, rec := newSketch(t)
	assert.Equal(t, Empty, s.Mode())
	assert.Equal(t, []canvas.Command{{Op: canvas.OpClearRect, Args: []float64{0, 0, 800, 600}}}, rec.Frame())
}

func TestPlacingPoints(t *testing.T) {
	s, src, _ := newSketch(t)

	place(src.l, Vec{0, 0})
	assert.Equal(t, Placing, s.Mode())
	assert.Nil(t, s.State().Derived)

	place(src.l, Vec{100, 0})
	assert.Equal(t, Placing, s.Mode())
	assert.Nil(t, s.quad)
	assert.Nil(t, s.circle)

	place(src.l, Vec{100, 100})
	assert.Equal(t, Complete, s.Mode())

	st := s.State()
	assert.Equal(t, []Vec{{0, 0}, {100, 0}, {100, 100}}, st.Points)
	assert.Equal(t, &Vec{0, 100}, st.Derived)
	assert.Equal(t, &Vec{50, 50}, st.Centroid)
	assert.Equal(t, 10000, st.Area)
	assert.InDelta(t, 56.419, st.Radius, 1e-3)
	assert.Equal(t, -1, st.Dragging)
}

func TestFourthClickPlacesNothing(t *testing.T) {
	s, src, _ := newSketch(t)
	place(src.l, Vec{0, 0}, Vec{100, 0}, Vec{100, 100}, Vec{300, 300})

	st := s.State()
	assert.Len(t, st.Points, 3)
	assert.Equal(t, Complete, st.Mode)
}

func TestDragRecomputes(t *testing.T) {
	s, src, _ := newSketch(t)
	place(src.l, Vec{0, 0}, Vec{100, 0}, Vec{100, 15})
	require.Len(t, s.State().Points, 3)

	// (100,0) and (100,15) are both within reach of (102,8); the first placed
	// match wins.
	src.l.PointerDown(102, 8)
	assert.Equal(t, Dragging, s.Mode())
	assert.Equal(t, 1, s.State().Dragging)
	assert.Equal(t, "green", s.points[1].Color())

	src.l.PointerMove(200, 0)
	st := s.State()
	assert.Equal(t, Vec{200, 0}, st.Points[1])
	assert.Equal(t, &Vec{-100, 15}, st.Derived)
	assert.Equal(t, 3000, st.Area)
	assert.Equal(t, &Vec{50, 7.5}, st.Centroid)
	assert.InDelta(t, math.Sqrt(3000/math.Pi), st.Radius, 1e-9)

	src.l.PointerUp()
	assert.Equal(t, Complete, s.Mode())
	assert.Equal(t, "#FF0000", s.points[1].Color())
	assert.Equal(t, -1, s.State().Dragging)
}

func TestDragWhilePlacing(t *testing.T) {
	s, src, _ := newSketch(t)
	place(src.l, Vec{100, 100})

	Replay(Drag(105, 95, 200, 150), src.l)
	st := s.State()
	assert.Equal(t, Placing, st.Mode)
	assert.Equal(t, []Vec{{200, 150}}, st.Points)
	assert.Nil(t, st.Derived)
}

func TestHitBoundary(t *testing.T) {
	s, src, _ := newSketch(t)
	place(src.l, Vec{100, 100})

	// Ten units away grabs the point.
	src.l.PointerDown(110, 100)
	assert.Equal(t, Dragging, s.Mode())
	src.l.PointerUp()
	assert.Len(t, s.State().Points, 1)

	// Exactly the configured reach places a new point.
	place(src.l, Vec{111, 100})
	assert.Len(t, s.State().Points, 2)

	// So does anything past it.
	place(src.l, Vec{88, 120})
	assert.Len(t, s.State().Points, 3)
}

func TestMoveAndUpWithoutDragAreNoops(t *testing.T) {
	s, src, rec := newSketch(t)
	place(src.l, Vec{0, 0})
	before := rec.Frame()

	rec.Reset()
	src.l.PointerMove(50, 50)
	src.l.PointerUp()
	assert.Empty(t, rec.Frame())
	assert.Equal(t, []Vec{{0, 0}}, s.State().Points)
	assert.NotEmpty(t, before)
}

func TestReset(t *testing.T) {
	s, src, rec := newSketch(t)
	place(src.l, Vec{0, 0}, Vec{100, 0}, Vec{100, 100})
	src.l.PointerDown(0, 0)

	src.l.Reset()
	assert.Equal(t, Empty, s.Mode())
	assert.Nil(t, s.quad)
	assert.Nil(t, s.circle)
	assert.Nil(t, s.dragging)
	assert.Equal(t, []canvas.Command{{Op: canvas.OpClearRect, Args: []float64{0, 0, 800, 600}}}, rec.Frame())

	place(src.l, Vec{42, 24})
	assert.Equal(t, []Vec{{42, 24}}, s.State().Points)
	assert.Equal(t, Placing, s.Mode())
}

func TestRenderIsIdempotent(t *testing.T) {
	s, src, rec := newSketch(t)
	place(src.l, Vec{0, 0}, Vec{100, 0}, Vec{100, 100})

	s.Render()
	first := rec.Frame()
	s.Render()
	assert.Equal(t, first, rec.Frame())
}

func TestRenderOrder(t *testing.T) {
	_, src, rec := newSketch(t)
	place(src.l, Vec{0, 0}, Vec{100, 0}, Vec{100, 100})

	var texts []string
	for _, c := range rec.Frame() {
		if c.Op == canvas.OpStrokeText {
			texts = append(texts, c.Text)
		}
	}
	assert.Equal(t, []string{"0, 0", "100, 0", "100, 100", "50, 50", "Area is: 10000"}, texts)

	frame := rec.Frame()
	last := frame[len(frame)-1]
	assert.Equal(t, canvas.OpStroke, last.Op)
	assert.Equal(t, canvas.Command{Op: canvas.OpStrokeStyle, Style: "green"}, frame[len(frame)-3])
}

func TestResize(t *testing.T) {
	s, src, rec := newSketch(t)
	place(src.l, Vec{0, 0})

	src.l.Resize(1024, 768)
	st := s.State()
	assert.Equal(t, 1024.0, st.Width)
	assert.Equal(t, 768.0, st.Height)
	assert.Equal(t, canvas.Command{Op: canvas.OpClearRect, Args: []float64{0, 0, 1024, 768}}, rec.Frame()[0])
}

func TestParseScript(t *testing.T) {
	script, err := ParseScript(strings.NewReader(`[
		{"type": "down", "x": 0, "y": 0}, {"type": "up"},
		{"type": "down", "x": 100, "y": 0}, {"type": "up"},
		{"type": "down", "x": 100, "y": 100}, {"type": "up"},
		{"type": "resize", "width": 300, "height": 200}
	]`))
	require.NoError(t, err)
	require.Len(t, script, 7)

	s := New(canvas.NewRecorder(100, 100), nil, config.DefaultTheme())
	Replay(script, s)
	st := s.State()
	assert.Equal(t, 10000, st.Area)
	assert.Equal(t, 300.0, st.Width)

	_, err = ParseScript(strings.NewReader(`[{"type": "wheel"}]`))
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = ParseScript(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestEventValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr error
	}{
		{"fits", Event{Type: EventResize, Width: canvas.MaxSize, Height: canvas.MaxSize}, nil},
		{"too wide", Event{Type: EventResize, Width: canvas.MaxSize + 1, Height: 10}, ErrTooLarge},
		{"too tall", Event{Type: EventResize, Width: 10, Height: 50000}, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseScript(strings.NewReader(`[{"type": "resize", "width": 5000, "height": 4500}]`))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestModeJSON(t *testing.T) {
	b, err := Dragging.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dragging", string(b))
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
