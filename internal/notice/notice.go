// Package notice implements the transient toast shown after every user action.
package notice

import (
	"fmt"
	"sync"
	"time"
)

// DefaultDuration is how long a notice stays visible.
const DefaultDuration = 3 * time.Second

// Notice is one of Success, Error, Warning or Info.
type Notice interface {
	Message() string
	notice()
}

type Success struct{ Msg string }
type Error struct{ Msg string }
type Warning struct{ Msg string }
type Info struct{ Msg string }

func (n Success) Message() string { return n.Msg }
func (n Error) Message() string   { return n.Msg }
func (n Warning) Message() string { return n.Msg }
func (n Info) Message() string    { return n.Msg }

func (Success) notice() {}
func (Error) notice()   {}
func (Warning) notice() {}
func (Info) notice()    {}

// FromError wraps err as an Error notice, using fallback when err carries no message.
func FromError(err error, fallback string) Notice {
	if err == nil || err.Error() == "" {
		return Error{Msg: fallback}
	}
	return Error{Msg: err.Error()}
}

// Style is how a notice is drawn.
type Style struct {
	Icon  string
	Label string
}

// Render maps every variant to its style.
func Render(n Notice) Style {
	switch n.(type) {
	case Success:
		return Style{Icon: "checkmark-circle", Label: "success"}
	case Error:
		return Style{Icon: "close-circle", Label: "error"}
	case Warning:
		return Style{Icon: "warning", Label: "warning"}
	case Info:
		return Style{Icon: "information-circle", Label: "info"}
	default:
		panic(fmt.Sprintf("notice: unknown variant %T", n))
	}
}

// Center shows at most one notice at a time and hides it after a fixed delay.
type Center struct {
	mu       sync.Mutex
	duration time.Duration
	current  Notice
	seq      uint64
	timer    *time.Timer
	onChange func(Notice)
}

// NewCenter creates a Center. onChange, if set, is called with the new notice
// on show and with nil on dismissal.
func NewCenter(duration time.Duration, onChange func(Notice)) *Center {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Center{duration: duration, onChange: onChange}
}

// Show replaces the visible notice with n and restarts the dismissal timer.
func (c *Center) Show(n Notice) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.current = n
	c.timer = time.AfterFunc(c.duration, func() { c.expire(seq) })
	c.mu.Unlock()

	c.notify(n)
}

// Current returns the visible notice, or nil.
func (c *Center) Current() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dismiss hides the visible notice immediately.
func (c *Center) Dismiss() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	had := c.current != nil
	c.current = nil
	c.seq++
	c.mu.Unlock()

	if had {
		c.notify(nil)
	}
}

func (c *Center) expire(seq uint64) {
	c.mu.Lock()
	if seq != c.seq {
		// A newer notice took over.
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	c.mu.Unlock()

	c.notify(nil)
}

func (c *Center) notify(n Notice) {
	if c.onChange != nil {
		c.onChange(n)
	}
}
