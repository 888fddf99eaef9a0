// Package bot holds the conversation controller: the two-phase protocol that
// turns a free-text scheduling request into a booked meeting.
package bot

import (
	"context"
	"sync"

	"github.com/asalehi100/ibm-techxchange-hack/internal/extract"
)

// Extractor converts a raw utterance into a structured meeting intent.
type Extractor interface {
	Extract(ctx context.Context, utterance string) (extract.MeetingIntent, error)
}

// Provisioner books one online meeting and returns its join URL.
type Provisioner interface {
	Create(ctx context.Context, subject string, attendeeEmails []string) (string, error)
}

// Replier sends one threaded chat reply.
type Replier interface {
	PostMessage(ctx context.Context, channel, threadTS, text string) error
}

// Runner drives the per-user protocol state machine. The session store is
// owned here exclusively; nothing else reads or writes it.
type Runner struct {
	logPrefix string

	oracle   Extractor
	meetings Provisioner
	chat     Replier
	sessions *SessionStore
	metrics  *Metrics

	userMu   sync.Mutex
	userLock map[string]*sync.Mutex
}

func NewRunner(logPrefix string, oracle Extractor, meetings Provisioner, chat Replier, metrics *Metrics) *Runner {
	return &Runner{
		logPrefix: logPrefix,
		oracle:    oracle,
		meetings:  meetings,
		chat:      chat,
		sessions:  NewSessionStore(),
		metrics:   metrics,
		userLock:  map[string]*sync.Mutex{},
	}
}

// userMutex serializes turns per user so a phase-2 message can never
// interleave with the phase-1 turn that stores its session. Different users
// proceed independently.
func (r *Runner) userMutex(userID string) *sync.Mutex {
	r.userMu.Lock()
	defer r.userMu.Unlock()
	if mu, ok := r.userLock[userID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	r.userLock[userID] = mu
	return mu
}
