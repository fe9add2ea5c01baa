package chat

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrEmptyMessage rejects blank submissions.
var ErrEmptyMessage = errors.New("chat: empty message")

// Author tells who wrote a message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// Message is one entry of the chat log.
type Message struct {
	ID     int64     `json:"id"`
	Author Author    `json:"author"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// State is the visibility of the widget.
type State int

const (
	StateHidden State = iota
	StateOpen
	StateMinimized
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateMinimized:
		return "minimized"
	default:
		return "hidden"
	}
}

// DefaultReplyDelay simulates the bot typing.
const DefaultReplyDelay = time.Second

// Option configures a Widget.
type Option func(*Widget)

// WithDelay sets the pause before the bot replies.
func WithDelay(d time.Duration) Option {
	return func(w *Widget) { w.delay = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// WithScheduler overrides how delayed replies are run. The default is
// time.AfterFunc.
func WithScheduler(after func(time.Duration, func())) Option {
	return func(w *Widget) { w.after = after }
}

// WithGreeting seeds the log with a bot message.
func WithGreeting(text string) Option {
	return func(w *Widget) { w.greeting = text }
}

// Widget holds one visitor's conversation. It is safe for concurrent use:
// HTTP handlers and reply timers both touch it.
type Widget struct {
	responder *Responder
	delay     time.Duration
	now       func() time.Time
	after     func(time.Duration, func())
	greeting  string

	mu      sync.Mutex
	log     []Message
	nextID  int64
	state   State
	unread  int
	pending int
}

// NewWidget creates a hidden widget answering through responder.
func NewWidget(responder *Responder, opts ...Option) *Widget {
	w := &Widget{
		responder: responder,
		delay:     DefaultReplyDelay,
		now:       time.Now,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.greeting != "" {
		w.appendLocked(AuthorBot, w.greeting)
	}
	return w
}

func (w *Widget) appendLocked(author Author, text string) Message {
	w.nextID++
	m := Message{ID: w.nextID, Author: author, Text: text, At: w.now()}
	w.log = append(w.log, m)
	return m
}

// Submit appends the user's message and schedules the bot reply. Blank
// input is rejected with ErrEmptyMessage and leaves the log untouched.
// The reply is appended when the delay elapses even if the widget was
// hidden in the meantime.
func (w *Widget) Submit(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	reply := w.responder.Reply(text)

	w.mu.Lock()
	m := w.appendLocked(AuthorUser, text)
	w.pending++
	w.mu.Unlock()

	w.after(w.delay, func() { w.deliver(reply) })
	return m, nil
}

func (w *Widget) deliver(reply string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.appendLocked(AuthorBot, reply)
	w.pending--
	if w.state != StateOpen {
		w.unread++
	}
}

// Messages returns a copy of the log.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.log))
	copy(out, w.log)
	return out
}

// Open shows the panel and marks every reply as read.
func (w *Widget) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateOpen
	w.unread = 0
}

// Minimize collapses the panel to its button.
func (w *Widget) Minimize() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateMinimized
}

// Hide removes the widget from view.
func (w *Widget) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateHidden
}

// Toggle opens a closed panel and minimizes an open one.
func (w *Widget) Toggle() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateOpen {
		w.state = StateMinimized
	} else {
		w.state = StateOpen
		w.unread = 0
	}
	return w.state
}

// Snapshot is a consistent view of the widget for rendering.
type Snapshot struct {
	State    State     `json:"-"`
	StateStr string    `json:"state"`
	Unread   int       `json:"unread"`
	Typing   bool      `json:"typing"`
	Messages []Message `json:"messages"`
}

// Snapshot captures state, unread count and log under one lock.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	msgs := make([]Message, len(w.log))
	copy(msgs, w.log)
	return Snapshot{
		State:    w.state,
		StateStr: w.state.String(),
		Unread:   w.unread,
		Typing:   w.pending > 0,
		Messages: msgs,
	}
}

// Since returns the snapshot's messages with an id greater than after.
func (s Snapshot) Since(after int64) []Message {
	out := []Message{}
	for _, m := range s.Messages {
		if m.ID > after {
			out = append(out, m)
		}
	}
	return out
}

// State reports the current visibility.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Unread reports replies that arrived while the panel was not open.
func (w *Widget) Unread() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unread
}
