package bot

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/asalehi100/ibm-techxchange-hack/internal/slack"
)

var (
	// greeting tokens are matched at the start of the lower-cased text
	greetingPattern = regexp.MustCompile(`^(hi|hello|hey)\b`)
	// scheduling requests are matched anywhere in the text
	schedulePattern = regexp.MustCompile(`(schedule|set).*(meeting|call)`)
)

// HandleMessage classifies one inbound message and runs the matching phase.
// Classification priority: greeting, new scheduling request, email
// completion, silence. Classification works on a lower-cased copy; extraction
// always sees the original-case text.
func (r *Runner) HandleMessage(ctx context.Context, ev slack.MessageEvent) error {
	lock := r.userMutex(ev.User)
	lock.Lock()
	defer lock.Unlock()

	turn := uuid.NewString()
	text := strings.ToLower(strings.TrimSpace(ev.Text))

	switch {
	case greetingPattern.MatchString(text):
		log.Printf("%s greeting: turn=%s user=%s", r.logPrefix, turn, ev.User)
		r.metrics.Turns.WithLabelValues(outcomeGreeting).Inc()
		return r.chat.PostMessage(ctx, ev.Channel, ev.TS, helpMessage(ev.User))

	case schedulePattern.MatchString(text):
		return r.handleScheduleRequest(ctx, turn, ev)

	case r.sessions.Contains(ev.User) || strings.Contains(text, ","):
		// A bare comma routes here even without a pending session; that case
		// gets an explicit "nothing to complete" reply in phase 2.
		return r.handleEmailCompletion(ctx, turn, ev)

	default:
		r.metrics.Turns.WithLabelValues(outcomeIgnored).Inc()
		return nil
	}
}

// handleScheduleRequest is phase 1: extract a meeting intent and park it as
// the user's pending session. A failed extraction leaves prior state alone.
func (r *Runner) handleScheduleRequest(ctx context.Context, turn string, ev slack.MessageEvent) error {
	utterance := strings.TrimSpace(ev.Text)

	intent, err := r.oracle.Extract(ctx, utterance)
	if err != nil {
		log.Printf("%s extraction failed: turn=%s user=%s err=%v", r.logPrefix, turn, ev.User, err)
		r.metrics.ExtractionFailures.Inc()
		r.metrics.Turns.WithLabelValues(outcomeExtractFailed).Inc()
		return r.chat.PostMessage(ctx, ev.Channel, ev.TS, parseFailureMessage(err))
	}

	sess := PendingSession{
		Topic: intent.Topic,
		Names: intent.Participants,
		Date:  intent.Date,
		Time:  intent.Time,
	}
	r.sessions.Put(ev.User, sess)

	log.Printf("%s session stored: turn=%s user=%s topic=%q participants=%d date=%s time=%s",
		r.logPrefix, turn, ev.User, sess.Topic, len(sess.Names), sess.Date, sess.Time)
	r.metrics.Turns.WithLabelValues(outcomeSummary).Inc()
	return r.chat.PostMessage(ctx, ev.Channel, ev.TS, summaryMessage(sess))
}

// handleEmailCompletion is phase 2: consume the pending session, book the
// meeting, report the join link. The session is consumed up front and never
// restored; a failed booking restarts the user at phase 1.
func (r *Runner) handleEmailCompletion(ctx context.Context, turn string, ev slack.MessageEvent) error {
	emails := splitEmails(ev.Text)

	sess, ok := r.sessions.Take(ev.User)
	if !ok {
		log.Printf("%s email completion without session: turn=%s user=%s", r.logPrefix, turn, ev.User)
		r.metrics.Turns.WithLabelValues(outcomeNoSession).Inc()
		return r.chat.PostMessage(ctx, ev.Channel, ev.ReplyThreadTS(), noPendingMessage)
	}

	joinURL, err := r.meetings.Create(ctx, sess.Topic, emails)
	if err != nil {
		log.Printf("%s meeting creation failed: turn=%s user=%s err=%v", r.logPrefix, turn, ev.User, err)
		r.metrics.BookingFailures.Inc()
		r.metrics.Turns.WithLabelValues(outcomeBookingFailed).Inc()
		return r.chat.PostMessage(ctx, ev.Channel, ev.ReplyThreadTS(), bookingFailureMessage(err))
	}

	log.Printf("%s meeting created: turn=%s user=%s topic=%q attendees=%d", r.logPrefix, turn, ev.User, sess.Topic, len(emails))
	r.metrics.MeetingsCreated.Inc()
	r.metrics.Turns.WithLabelValues(outcomeBooked).Inc()
	return r.chat.PostMessage(ctx, ev.Channel, ev.ReplyThreadTS(), confirmationMessage(sess, joinURL))
}

// splitEmails splits the raw message on commas and trims each piece. No
// address validation happens here; whatever the user typed goes through.
func splitEmails(text string) []string {
	parts := strings.Split(text, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		emails = append(emails, strings.TrimSpace(p))
	}
	return emails
}
