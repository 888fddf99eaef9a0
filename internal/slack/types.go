package slack

import "encoding/json"

// envelope is the Socket Mode frame wrapper. Every events_api envelope must
// be acked by envelope_id promptly or Slack redelivers it.
type envelope struct {
	Type                   string          `json:"type"`
	EnvelopeID             string          `json:"envelope_id"`
	Payload                json.RawMessage `json:"payload"`
	AcceptsResponsePayload bool            `json:"accepts_response_payload"`
	Reason                 string          `json:"reason"`
}

type ack struct {
	EnvelopeID string `json:"envelope_id"`
}

type eventCallback struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

// MessageEvent is one inbound chat message.
type MessageEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	User     string `json:"user"`
	BotID    string `json:"bot_id"`
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

// ReplyThreadTS is the thread timestamp replies should target: the existing
// thread when the message is already in one, else the message itself.
func (m MessageEvent) ReplyThreadTS() string {
	if m.ThreadTS != "" {
		return m.ThreadTS
	}
	return m.TS
}
