// Package session shares sketches between browser clients over WebSocket.
// Each sketch lives in a room on the server; clients send pointer input and
// receive the recorded draw commands for every redraw.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/sketch"
)

var (
	ErrNotFound = errors.New("sketch not found")
	ErrStopped  = errors.New("hub stopped")
)

// Frame is the current picture of a sketch.
type Frame struct {
	Commands []canvas.Command
	State    sketch.State
}

type room struct {
	id       string
	clients  map[string]*Client // clientID -> client
	recorder *canvas.Recorder
	sketch   *sketch.Sketch
	listener sketch.Listener
}

func newRoom(id string, theme *config.Theme, width, height float64, log *slog.Logger) *room {
	r := &room{
		id:       id,
		clients:  make(map[string]*Client),
		recorder: canvas.NewRecorder(width, height),
	}
	r.sketch = sketch.New(r.recorder, r, theme, sketch.WithLogger(log.With("sketch", id)))
	return r
}

// Listen makes the room the sketch's event source.
func (r *room) Listen(l sketch.Listener) {
	r.listener = l
}

func (r *room) frame() Frame {
	return Frame{Commands: r.recorder.Frame(), State: r.sketch.State()}
}

func (r *room) frameMessage() *Message {
	f := r.frame()
	msg := newMessage(TypeFrame, FramePayload{Commands: f.Commands, State: f.State})
	msg.SketchID = r.id
	return msg
}

type clientEvent struct {
	client *Client
	event  sketch.Event
}

type frameQuery struct {
	sketchID string
	reply    chan frameReply
}

type frameReply struct {
	frame Frame
	ok    bool
}

// Hub owns every room. All room state is touched only by the goroutine running
// Run; other goroutines talk to it over channels.
type Hub struct {
	theme         *config.Theme
	width, height float64
	log           *slog.Logger

	rooms      map[string]*room // sketchID -> room
	register   chan *Client
	unregister chan *Client
	events     chan clientEvent
	queries    chan frameQuery
	done       chan struct{}
}

// NewHub creates a hub whose new rooms start at width x height.
func NewHub(theme *config.Theme, width, height float64, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		theme:      theme,
		width:      width,
		height:     height,
		log:        log,
		rooms:      make(map[string]*room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan clientEvent, 64),
		queries:    make(chan frameQuery),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled. Write pumps stop once it returns,
// which closes their connections.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case ev := <-h.events:
			h.handleEvent(ev)
		case q := <-h.queries:
			r, ok := h.rooms[q.sketchID]
			if !ok {
				q.reply <- frameReply{}
				continue
			}
			q.reply <- frameReply{frame: r.frame(), ok: true}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrStopped
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Submit queues an event from client for its room.
func (h *Hub) Submit(client *Client, ev sketch.Event) {
	select {
	case h.events <- clientEvent{client: client, event: ev}:
	case <-h.done:
	}
}

// Frame returns the current frame of a live sketch.
func (h *Hub) Frame(ctx context.Context, sketchID string) (Frame, error) {
	reply := make(chan frameReply, 1)
	select {
	case h.queries <- frameQuery{sketchID: sketchID, reply: reply}:
	case <-h.done:
		return Frame{}, ErrStopped
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}

	select {
	case r := <-reply:
		if !r.ok {
			return Frame{}, ErrNotFound
		}
		return r.frame, nil
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

func (h *Hub) addClient(client *Client) {
	r, ok := h.rooms[client.SketchID]
	if !ok {
		r = newRoom(client.SketchID, h.theme, h.width, h.height, h.log)
		h.rooms[client.SketchID] = r
		h.log.Info("sketch created", "sketch", client.SketchID)
	}
	r.clients[client.ClientID] = client

	welcome := newMessage(TypeWelcome, WelcomePayload{
		SketchID: client.SketchID,
		ClientID: client.ClientID,
	})
	client.Send(welcome)
	client.Send(r.frameMessage())

	h.log.Info("client joined", "client", client.ClientID, "sketch", client.SketchID, "clients", len(r.clients))
}

func (h *Hub) removeClient(client *Client) {
	r, ok := h.rooms[client.SketchID]
	if !ok {
		return
	}
	if _, ok := r.clients[client.ClientID]; !ok {
		return
	}

	delete(r.clients, client.ClientID)
	close(client.send)

	if len(r.clients) == 0 {
		delete(h.rooms, client.SketchID)
		h.log.Info("sketch discarded", "sketch", client.SketchID)
	}

	h.log.Info("client left", "client", client.ClientID, "sketch", client.SketchID)
}

func (h *Hub) handleEvent(ev clientEvent) {
	r, ok := h.rooms[ev.client.SketchID]
	if !ok || r.listener == nil {
		return
	}
	if _, ok := r.clients[ev.client.ClientID]; !ok {
		return
	}

	// Only events that redraw produce a frame; a pointer move with nothing
	// grabbed changes nothing.
	before := r.recorder.Generation()
	ev.event.Apply(r.listener)
	if r.recorder.Generation() == before {
		return
	}

	h.broadcastToRoom(r, r.frameMessage())
}

func (h *Hub) broadcastToRoom(r *room, msg *Message) {
	for _, c := range r.clients {
		c.Send(msg)
	}
}
