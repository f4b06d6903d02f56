package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/sketch"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(config.DefaultTheme(), 400, 300, nil)
	go hub.Run(ctx)

	r := mux.NewRouter()
	r.Handle("/ws/sketch/{sketchId}", NewHandler(hub, nil))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, sketchID string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sketch/" + sketchID
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var msg Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func readFrame(t *testing.T, conn *websocket.Conn) FramePayload {
	t.Helper()

	msg := read(t, conn)
	require.Equal(t, TypeFrame, msg.Type)
	var f FramePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &f))
	return f
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload interface{}) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, conn, newMessage(typ, payload)))
}

func join(t *testing.T, srv *httptest.Server, sketchID string) (*websocket.Conn, WelcomePayload) {
	t.Helper()

	conn := dial(t, srv, sketchID)
	msg := read(t, conn)
	require.Equal(t, TypeWelcome, msg.Type)
	var w WelcomePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &w))
	return conn, w
}

func TestJoinNewSketch(t *testing.T) {
	_, srv := newTestServer(t)

	conn, welcome := join(t, srv, NewSketch)
	assert.True(t, strings.HasPrefix(welcome.SketchID, "sketch_"))
	assert.NotEmpty(t, welcome.ClientID)

	f := readFrame(t, conn)
	assert.Equal(t, sketch.Empty, f.State.Mode)
	assert.Equal(t, 400.0, f.State.Width)
	assert.Equal(t, 300.0, f.State.Height)
	assert.NotEmpty(t, f.Commands)
}

func TestJoinRejectsBadID(t *testing.T) {
	_, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sketch/proj_123"
	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPointerEventsProduceFrames(t *testing.T) {
	_, srv := newTestServer(t)

	conn, _ := join(t, srv, NewSketch)
	readFrame(t, conn)

	send(t, conn, TypePointerDown, PointerPayload{X: 10, Y: 10})
	f := readFrame(t, conn)
	assert.Equal(t, sketch.Placing, f.State.Mode)
	assert.Len(t, f.State.Points, 1)

	send(t, conn, TypePointerUp, nil)
	// Moving with nothing grabbed does not redraw, so the next frame is the
	// one for the second click.
	send(t, conn, TypePointerMove, PointerPayload{X: 50, Y: 50})
	send(t, conn, TypePointerDown, PointerPayload{X: 110, Y: 10})
	f = readFrame(t, conn)
	assert.Len(t, f.State.Points, 2)

	send(t, conn, TypePointerUp, nil)
	send(t, conn, TypePointerDown, PointerPayload{X: 110, Y: 110})
	f = readFrame(t, conn)
	assert.Equal(t, sketch.Complete, f.State.Mode)
	require.NotNil(t, f.State.Derived)
	assert.Equal(t, sketch.Vec{X: 10, Y: 110}, *f.State.Derived)
	assert.Equal(t, 10000, f.State.Area)

	send(t, conn, TypeReset, nil)
	f = readFrame(t, conn)
	assert.Equal(t, sketch.Empty, f.State.Mode)
	assert.Empty(t, f.State.Points)
}

func TestRoomIsShared(t *testing.T) {
	_, srv := newTestServer(t)

	a, welcome := join(t, srv, NewSketch)
	readFrame(t, a)

	send(t, a, TypePointerDown, PointerPayload{X: 20, Y: 20})
	readFrame(t, a)

	b, welcomeB := join(t, srv, welcome.SketchID)
	assert.Equal(t, welcome.SketchID, welcomeB.SketchID)
	assert.NotEqual(t, welcome.ClientID, welcomeB.ClientID)
	f := readFrame(t, b)
	assert.Len(t, f.State.Points, 1)

	send(t, b, TypeResize, ResizePayload{Width: 640, Height: 480})
	for _, conn := range []*websocket.Conn{a, b} {
		f := readFrame(t, conn)
		assert.Equal(t, 640.0, f.State.Width)
		assert.Equal(t, 480.0, f.State.Height)
	}
}

func TestMalformedMessages(t *testing.T) {
	_, srv := newTestServer(t)

	conn, _ := join(t, srv, NewSketch)
	readFrame(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)

	send(t, conn, "layer.add", nil)
	msg = read(t, conn)
	require.Equal(t, TypeError, msg.Type)
	var e ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &e))
	assert.Contains(t, e.Message, "unknown message type")

	// The connection survives bad input.
	send(t, conn, TypePointerDown, PointerPayload{X: 1, Y: 1})
	f := readFrame(t, conn)
	assert.Len(t, f.State.Points, 1)
}

func TestHubFrame(t *testing.T) {
	hub, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := hub.Frame(ctx, "sketch_01h455vb4pex5vsknk084sn02q")
	assert.ErrorIs(t, err, ErrNotFound)

	conn, welcome := join(t, srv, NewSketch)
	readFrame(t, conn)
	send(t, conn, TypePointerDown, PointerPayload{X: 30, Y: 40})
	readFrame(t, conn)

	frame, err := hub.Frame(ctx, welcome.SketchID)
	require.NoError(t, err)
	assert.Equal(t, []sketch.Vec{{X: 30, Y: 40}}, frame.State.Points)
	assert.NotEmpty(t, frame.Commands)

	conn.Close(websocket.StatusNormalClosure, "")
	assert.Eventually(t, func() bool {
		_, err := hub.Frame(ctx, welcome.SketchID)
		return err == ErrNotFound
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(config.DefaultTheme(), 100, 100, nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	_, err := hub.Frame(context.Background(), "sketch_01h455vb4pex5vsknk084sn02q")
	assert.ErrorIs(t, err, ErrStopped)
}

func TestMessageEvent(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		want    sketch.Event
		wantErr string
	}{
		{
			name: "down",
			msg:  newMessage(TypePointerDown, PointerPayload{X: 3, Y: 4}),
			want: sketch.Event{Type: sketch.EventDown, X: 3, Y: 4},
		},
		{
			name: "move",
			msg:  newMessage(TypePointerMove, PointerPayload{X: -1, Y: 2.5}),
			want: sketch.Event{Type: sketch.EventMove, X: -1, Y: 2.5},
		},
		{
			name: "up",
			msg:  &Message{Type: TypePointerUp},
			want: sketch.Event{Type: sketch.EventUp},
		},
		{
			name: "reset",
			msg:  &Message{Type: TypeReset},
			want: sketch.Event{Type: sketch.EventReset},
		},
		{
			name: "resize",
			msg:  newMessage(TypeResize, ResizePayload{Width: 10, Height: 20}),
			want: sketch.Event{Type: sketch.EventResize, Width: 10, Height: 20},
		},
		{
			name:    "negative resize",
			msg:     newMessage(TypeResize, ResizePayload{Width: -10, Height: 20}),
			wantErr: "negative size",
		},
		{
			name:    "oversized resize",
			msg:     newMessage(TypeResize, ResizePayload{Width: 50000, Height: 50000}),
			wantErr: "size exceeds",
		},
		{
			name:    "missing payload",
			msg:     &Message{Type: TypePointerDown},
			wantErr: "invalid pointer.down payload",
		},
		{
			name:    "unknown",
			msg:     &Message{Type: "presence.update"},
			wantErr: "unknown message type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.msg.Event()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
