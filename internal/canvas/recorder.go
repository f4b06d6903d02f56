package canvas

import (
	"encoding/json"
	"fmt"
)

// Command is a single recorded surface call. Op is the CanvasRenderingContext2D
// member name so a browser client can dispatch it directly.
type Command struct {
	Op    string    `json:"op"`              // "clearRect", "arc", "strokeText", ...
	Args  []float64 `json:"args,omitempty"`  // numeric arguments in call order
	Text  string    `json:"text,omitempty"`  // strokeText only
	Style string    `json:"style,omitempty"` // strokeStyle and font
	CCW   bool      `json:"ccw,omitempty"`   // arc only
}

const (
	OpSize        = "size"
	OpClearRect   = "clearRect"
	OpBeginPath   = "beginPath"
	OpMoveTo      = "moveTo"
	OpLineTo      = "lineTo"
	OpArc         = "arc"
	OpClosePath   = "closePath"
	OpStrokeStyle = "strokeStyle"
	OpLineWidth   = "lineWidth"
	OpFont        = "font"
	OpStroke      = "stroke"
	OpStrokeText  = "strokeText"
)

// Recorder is a Surface that records calls instead of drawing. A clear that
// covers the whole surface discards everything recorded before it, so Frame
// always describes the current picture.
type Recorder struct {
	width, height float64
	commands      []Command
	generation    uint64
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{width: w, height: h}
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) SetSize(w, h float64) {
	r.width, r.height = w, h
	// Resizing a canvas wipes it.
	r.commands = r.commands[:0]
	r.generation++
	r.record(Command{Op: OpSize, Args: []float64{w, h}})
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	if coversSurface(x, y, w, h, r.width, r.height) {
		r.commands = r.commands[:0]
		r.generation++
	}
	r.record(Command{Op: OpClearRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) BeginPath() {
	r.record(Command{Op: OpBeginPath})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Command{Op: OpMoveTo, Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(Command{Op: OpLineTo, Args: []float64{x, y}})
}

func (r *Recorder) Arc(x, y, radius, start, end float64, ccw bool) {
	r.record(Command{Op: OpArc, Args: []float64{x, y, radius, start, end}, CCW: ccw})
}

func (r *Recorder) ClosePath() {
	r.record(Command{Op: OpClosePath})
}

func (r *Recorder) SetStrokeStyle(color string) {
	r.record(Command{Op: OpStrokeStyle, Style: color})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record(Command{Op: OpLineWidth, Args: []float64{w}})
}

func (r *Recorder) SetFont(font string) {
	r.record(Command{Op: OpFont, Style: font})
}

func (r *Recorder) Stroke() {
	r.record(Command{Op: OpStroke})
}

func (r *Recorder) StrokeText(text string, x, y float64) {
	r.record(Command{Op: OpStrokeText, Text: text, Args: []float64{x, y}})
}

// Frame returns a copy of the commands that draw the current picture.
func (r *Recorder) Frame() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Generation counts full clears and resizes. It changes whenever a new
// picture is started.
func (r *Recorder) Generation() uint64 {
	return r.generation
}

// Reset drops every recorded command.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.commands == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.commands)
}

// Replay issues cmds against s in order.
func Replay(cmds []Command, s Surface) error {
	for i, c := range cmds {
		if err := replayOne(c, s); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

var argCounts = map[string]int{
	OpSize:        2,
	OpClearRect:   4,
	OpBeginPath:   0,
	OpMoveTo:      2,
	OpLineTo:      2,
	OpArc:         5,
	OpClosePath:   0,
	OpStrokeStyle: 0,
	OpLineWidth:   1,
	OpFont:        0,
	OpStroke:      0,
	OpStrokeText:  2,
}

func replayOne(c Command, s Surface) error {
	want, ok := argCounts[c.Op]
	if !ok {
		return fmt.Errorf("unknown op %q", c.Op)
	}
	if len(c.Args) != want {
		return fmt.Errorf("%s: want %d args, got %d", c.Op, want, len(c.Args))
	}

	a := c.Args
	switch c.Op {
	case OpSize:
		s.SetSize(a[0], a[1])
	case OpClearRect:
		s.ClearRect(a[0], a[1], a[2], a[3])
	case OpBeginPath:
		s.BeginPath()
	case OpMoveTo:
		s.MoveTo(a[0], a[1])
	case OpLineTo:
		s.LineTo(a[0], a[1])
	case OpArc:
		s.Arc(a[0], a[1], a[2], a[3], a[4], c.CCW)
	case OpClosePath:
		s.ClosePath()
	case OpStrokeStyle:
		s.SetStrokeStyle(c.Style)
	case OpLineWidth:
		s.SetLineWidth(a[0])
	case OpFont:
		s.SetFont(c.Style)
	case OpStroke:
		s.Stroke()
	case OpStrokeText:
		s.StrokeText(c.Text, a[0], a[1])
	}
	return nil
}
