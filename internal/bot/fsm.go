package bot

import "sync"

// State is where a user is in the conversation. Users without an entry are Idle.
type State int

const (
	StateIdle State = iota
	StateAwaitingIdea
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingIdea:
		return "awaiting_idea"
	}
	return "unknown"
}

type Event int

const (
	EventAddIdeaCommand Event = iota
	EventCancel
	EventText
)

var transitions = map[State]map[Event]State{
	StateIdle: {
		EventAddIdeaCommand: StateAwaitingIdea,
		EventCancel:         StateIdle,
		EventText:           StateIdle,
	},
	StateAwaitingIdea: {
		EventAddIdeaCommand: StateAwaitingIdea,
		EventCancel:         StateIdle,
		EventText:           StateIdle,
	},
}

// Transition returns the state reached from s on e. Pairs missing from the
// table leave the state unchanged.
func Transition(s State, e Event) State {
	if next, ok := transitions[s][e]; ok {
		return next
	}
	return s
}

type sessions struct {
	mu     sync.Mutex
	states map[int64]State
}

func newSessions() *sessions {
	return &sessions{states: make(map[int64]State)}
}

func (s *sessions) get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

// fire applies e to the user's state and reports the state it left.
func (s *sessions) fire(userID int64, e Event) (from, to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from = s.states[userID]
	to = Transition(from, e)
	if to == StateIdle {
		delete(s.states, userID)
	} else {
		s.states[userID] = to
	}
	return from, to
}
