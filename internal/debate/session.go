package debate

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"debatesim/models"
)

// DefaultMaxMessages caps the transcript once a debate is underway.
const DefaultMaxMessages = 30

var (
	// ErrEmptyMessage rejects blank user input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrTranscriptFull rejects appends once the message cap is reached.
	ErrTranscriptFull = errors.New("message limit reached")
	// ErrSessionClosed rejects operations on a removed session.
	ErrSessionClosed = errors.New("session closed")
)

// Modal identifies the dialogs that suspend automatic pacing while open.
type Modal int

const (
	ModalExport Modal = iota
	ModalRestartConfirm
	ModalProfile
)

// ParseModal maps the wire name of a modal to its identifier.
func ParseModal(name string) (Modal, error) {
	switch strings.ToLower(name) {
	case "export":
		return ModalExport, nil
	case "restart":
		return ModalRestartConfirm, nil
	case "profile":
		return ModalProfile, nil
	}
	return 0, fmt.Errorf("unknown modal %q", name)
}

// SessionStats is the read-only summary shown in the stats panel.
type SessionStats struct {
	TotalMessages    int `json:"totalMessages"`
	UserMessages     int `json:"userMessages"`
	Engagement       int `json:"engagement"`
	ParticipantCount int `json:"participantCount"`
	Duration         int `json:"duration"`
}

// Session holds the transcript and control flags for one running debate. It
// is the single source of truth the pacing controller, the HTTP handlers and
// the WebSocket stream all read; every mutation is serialized through its
// mutex and triggers one re-evaluation of the controller.
type Session struct {
	ID string

	mu          sync.Mutex
	topic       models.Topic
	user        models.Participant
	messages    []models.Message
	maxMessages int
	duration    int
	paused      bool
	speedIndex  int
	speeds      []Speed
	exportOpen  bool
	restartOpen bool
	profileOpen bool
	typing      *models.Participant
	closed      bool
	subs        map[chan *Event]struct{}

	// onChange is the controller's re-evaluation hook, invoked after every
	// mutation with the session lock released.
	onChange func()
}

// NewSession seeds a session from a topic's initial messages.
func NewSession(topic models.Topic, maxMessages int, speeds []Speed, speedIndex int) *Session {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if speedIndex < 0 || speedIndex >= len(speeds) {
		speedIndex = 0
	}
	user, _ := topic.User()
	return &Session{
		ID:          uuid.NewString(),
		topic:       topic,
		user:        user,
		messages:    seedMessages(topic),
		maxMessages: maxMessages,
		speeds:      speeds,
		speedIndex:  speedIndex,
		subs:        make(map[chan *Event]struct{}),
	}
}

func seedMessages(topic models.Topic) []models.Message {
	seeded := make([]models.Message, len(topic.InitialMessages))
	for i, msg := range topic.InitialMessages {
		msg.ID = uuid.NewString()
		seeded[i] = msg
	}
	return seeded
}

// SetOnChange registers the pacing hook. Must be called before the session is
// shared.
func (s *Session) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// SendUserMessage appends a user interjection. Blank input and sends at the
// message cap are rejected. A successful send clears the pause flag.
func (s *Session) SendUserMessage(text string) (models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Message{}, ErrSessionClosed
	}
	if len(s.messages) >= s.maxMessages {
		s.mu.Unlock()
		return models.Message{}, ErrTranscriptFull
	}
	msg := models.NewMessage(s.user, trimmed)
	s.messages = append(s.messages, msg)
	s.paused = false
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventMessage, MessagePayload{Message: msg})
	s.publish(EventState, state)
	s.changed()
	return msg, nil
}

// AppendGenerated appends a completed AI (or System) turn. The cap is checked
// again here: a generation that was already in flight when the debate
// deactivated may still land, but never past the cap.
func (s *Session) AppendGenerated(msg models.Message) bool {
	s.mu.Lock()
	if s.closed || len(s.messages) >= s.maxMessages {
		s.mu.Unlock()
		return false
	}
	s.messages = append(s.messages, msg)
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventMessage, MessagePayload{Message: msg})
	s.publish(EventState, state)
	s.changed()
	return true
}

// SetPaused toggles the pause flag.
func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventState, state)
	s.changed()
}

// SetModal opens or closes one of the pacing-blocking dialogs.
func (s *Session) SetModal(m Modal, open bool) {
	s.mu.Lock()
	switch m {
	case ModalExport:
		s.exportOpen = open
	case ModalRestartConfirm:
		s.restartOpen = open
	case ModalProfile:
		s.profileOpen = open
	}
	s.mu.Unlock()
	s.changed()
}

// ToggleSpeed cycles to the next entry of the speed table and returns it.
func (s *Session) ToggleSpeed() Speed {
	s.mu.Lock()
	if len(s.speeds) > 0 {
		s.speedIndex = (s.speedIndex + 1) % len(s.speeds)
	}
	speed := s.speedLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventState, state)
	s.changed()
	return speed
}

// SetSpeedIndex selects a speed table entry directly.
func (s *Session) SetSpeedIndex(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.speeds) {
		s.mu.Unlock()
		return fmt.Errorf("speed index %d out of range", i)
	}
	s.speedIndex = i
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventState, state)
	s.changed()
	return nil
}

// Restart discards the transcript and duration and reseeds from the current
// topic.
func (s *Session) Restart() {
	s.reset(s.topicLocked())
}

// ChangeTopic switches to a different topic and reseeds, discarding all
// derived state.
func (s *Session) ChangeTopic(topic models.Topic) {
	s.reset(topic)
}

func (s *Session) topicLocked() models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

func (s *Session) reset(topic models.Topic) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.topic = topic
	if user, ok := topic.User(); ok {
		s.user = user
	}
	s.messages = seedMessages(topic)
	s.duration = 0
	s.paused = false
	s.typing = nil
	payload := ResetPayload{Topic: s.topic, Messages: append([]models.Message(nil), s.messages...)}
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(EventReset, payload)
	s.publish(EventState, state)
	s.changed()
}

// setTyping records (and streams) which participant's turn is in flight.
// Typing is presentation state only; it does not re-trigger pacing.
func (s *Session) setTyping(p *models.Participant) {
	s.mu.Lock()
	s.typing = p
	s.mu.Unlock()
	s.publish(EventTyping, TypingPayload{Participant: p})
}

// tickDuration advances the elapsed counter by one second if (and only if)
// the debate is currently active.
func (s *Session) tickDuration() {
	s.mu.Lock()
	if !s.activeLocked() {
		s.mu.Unlock()
		return
	}
	s.duration++
	state := s.stateLocked()
	s.mu.Unlock()
	s.publish(EventState, state)
}

// Active reports whether automatic pacing may proceed: not paused, no
// blocking modal open, transcript below the cap.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() bool {
	return !s.closed &&
		!s.paused &&
		!s.exportOpen &&
		!s.restartOpen &&
		!s.profileOpen &&
		len(s.messages) < s.maxMessages
}

// Topic returns the active topic.
func (s *Session) Topic() models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// User returns the session's user identity.
func (s *Session) User() models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Duration returns the elapsed active seconds.
func (s *Session) Duration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Paused reports the pause flag.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SpeedIndex returns the current position in the speed table.
func (s *Session) SpeedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speedIndex
}

// Speed returns the current speed table entry.
func (s *Session) Speed() Speed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speedLocked()
}

func (s *Session) speedLocked() Speed {
	if s.speedIndex >= 0 && s.speedIndex < len(s.speeds) {
		return s.speeds[s.speedIndex]
	}
	return Speed{}
}

// Typing returns the participant currently being generated for, if any.
func (s *Session) Typing() *models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// Closed reports whether the session has been removed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// State returns the control-state summary streamed to clients.
func (s *Session) State() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() StatePayload {
	return StatePayload{
		Paused:       s.paused,
		SpeedIndex:   s.speedIndex,
		SpeedLabel:   s.speedLocked().Label,
		MessageCount: len(s.messages),
		MaxMessages:  s.maxMessages,
		Duration:     s.duration,
	}
}

// Stats summarizes the session for the stats panel.
func (s *Session) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCount := 0
	for _, msg := range s.messages {
		if msg.Author == s.user.Name {
			userCount++
		}
	}
	engagement := 0
	if len(s.messages) > 0 {
		engagement = int(float64(userCount)/float64(len(s.messages))*100 + 0.5)
	}
	return SessionStats{
		TotalMessages:    len(s.messages),
		UserMessages:     userCount,
		Engagement:       engagement,
		ParticipantCount: len(s.topic.Participants),
		Duration:         s.duration,
	}
}

// Subscribe registers an event stream. Slow consumers drop events rather than
// block the session.
func (s *Session) Subscribe() chan *Event {
	ch := make(chan *Event, 16)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes an event stream.
func (s *Session) Unsubscribe(ch chan *Event) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

// Close marks the session removed and closes all event streams.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = make(map[chan *Event]struct{})
	s.mu.Unlock()
	s.changed()
}

func (s *Session) publish(eventType string, payload interface{}) {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("session %s: failed to marshal %s event: %v", s.ID, eventType, err)
		return
	}

	s.mu.Lock()
	for ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
	s.mu.Unlock()
}
