package debate

import (
	"context"
	"log"
	"sync"
	"time"
)

// Speed is one entry of the user-adjustable pacing table.
type Speed struct {
	Label string        `json:"label"`
	Delay time.Duration `json:"-"`
}

// PacingConfig tunes the controller's timers.
type PacingConfig struct {
	// UserReplyDelay is the short delay used when the last message came
	// from the user, simulating a quick reaction.
	UserReplyDelay time.Duration
	// Speeds maps named multipliers to the delay between AI turns.
	Speeds []Speed
	// DefaultSpeedIndex is the table entry new sessions start at.
	DefaultSpeedIndex int
	// FallbackDelay covers an out-of-range speed index.
	FallbackDelay time.Duration
	// TickInterval drives the elapsed-duration counter.
	TickInterval time.Duration
}

// DefaultPacingConfig returns the stock pacing table: 1500 ms reaction to the
// user, 1x turn cadence of 7 s, one duration tick per second.
func DefaultPacingConfig() PacingConfig {
	return PacingConfig{
		UserReplyDelay: 1500 * time.Millisecond,
		Speeds: []Speed{
			{Label: "0.5x", Delay: 12000 * time.Millisecond},
			{Label: "0.75x", Delay: 9000 * time.Millisecond},
			{Label: "1x", Delay: 7000 * time.Millisecond},
			{Label: "1.5x", Delay: 5000 * time.Millisecond},
			{Label: "2x", Delay: 3000 * time.Millisecond},
		},
		DefaultSpeedIndex: 2,
		FallbackDelay:     3000 * time.Millisecond,
		TickInterval:      time.Second,
	}
}

// State is the controller's scheduling phase.
type State int

const (
	// StateIdle means no timer is pending and no call is in flight.
	StateIdle State = iota
	// StateArmed means a timer is scheduled to trigger the next AI turn.
	StateArmed
	// StateGenerating means a gateway call is in flight.
	StateGenerating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateGenerating:
		return "generating"
	default:
		return "unknown"
	}
}

// Controller is the timed state machine that decides whether and when the
// next AI turn happens. It re-evaluates on every session mutation: the armed
// timer is cancelled and, if the debate is still active, a fresh one is armed
// against the transcript as it exists now. At most one gateway call is in
// flight at a time; no new timer is armed while one is pending.
type Controller struct {
	mu      sync.Mutex
	state   State
	timer   *time.Timer
	gen     uint64
	session *Session
	gateway *Gateway
	cfg     PacingConfig

	stopOnce sync.Once
	stopTick chan struct{}
}

// NewController wires a controller to a session and starts the duration
// ticker. The controller registers itself as the session's change hook.
func NewController(session *Session, gateway *Gateway, cfg PacingConfig) *Controller {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = 3000 * time.Millisecond
	}
	c := &Controller{
		session:  session,
		gateway:  gateway,
		cfg:      cfg,
		stopTick: make(chan struct{}),
	}
	session.SetOnChange(c.Reevaluate)
	go c.runTicker()
	c.Reevaluate()
	return c
}

// State returns the current scheduling phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reevaluate is invoked after every relevant state change. It cancels any
// pending timer, then re-arms if the debate is active. While a generation is
// in flight it only cancels; the completion path re-evaluates again.
func (c *Controller) Reevaluate() {
	c.mu.Lock()
	c.cancelTimerLocked()
	if c.state == StateGenerating {
		c.mu.Unlock()
		return
	}
	if !c.session.Active() {
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	delay := c.nextDelay()
	c.state = StateArmed
	token := c.gen
	c.timer = time.AfterFunc(delay, func() { c.fire(token) })
	c.mu.Unlock()
}

// Stop cancels pacing permanently; used when the session is removed.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopTick) })
	c.mu.Lock()
	c.cancelTimerLocked()
	if c.state != StateGenerating {
		c.state = StateIdle
	}
	c.mu.Unlock()
}

// cancelTimerLocked stops the pending timer and bumps the generation token.
// A timer whose callback already left the runtime queue cannot be stopped, so
// the bump is what actually retires it: its fire sees a stale token and bails.
func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// nextDelay picks the reaction delay when the user spoke last, otherwise the
// delay of the current speed setting.
func (c *Controller) nextDelay() time.Duration {
	messages := c.session.Messages()
	if len(messages) > 0 && messages[len(messages)-1].Author == c.session.User().Name {
		return c.cfg.UserReplyDelay
	}
	idx := c.session.SpeedIndex()
	if idx >= 0 && idx < len(c.cfg.Speeds) {
		return c.cfg.Speeds[idx].Delay
	}
	return c.cfg.FallbackDelay
}

// fire runs when the armed timer elapses: one gateway call, then back to
// re-evaluation whatever the outcome.
func (c *Controller) fire(token uint64) {
	c.mu.Lock()
	if c.state != StateArmed || token != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if !c.session.Active() {
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.state = StateGenerating
	c.mu.Unlock()

	topic := c.session.Topic()
	transcript := c.session.Messages()
	if speaker, err := NextSpeaker(topic.Participants, transcript); err == nil {
		c.session.setTyping(&speaker)
	}

	msg, err := c.gateway.RequestNextMessage(context.Background(), topic, transcript)
	c.session.setTyping(nil)

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	if err != nil {
		// Local scheduling failure: skip the cycle without a chat entry.
		log.Printf("session %s: skipping turn: %v", c.session.ID, err)
	} else {
		c.session.AppendGenerated(msg)
	}
	c.Reevaluate()
}

func (c *Controller) runTicker() {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopTick:
			return
		case <-ticker.C:
			c.session.tickDuration()
		}
	}
}
