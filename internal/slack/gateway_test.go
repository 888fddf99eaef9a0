package slack

import (
	"encoding/json"
	"testing"
)

func TestDecodeMessageEvent(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    bool
	}{
		{
			"plain user message",
			`{"type":"event_callback","event":{"type":"message","user":"U1","text":"hi","channel":"C1","ts":"1.0"}}`,
			true,
		},
		{
			"threaded user message",
			`{"type":"event_callback","event":{"type":"message","user":"U1","text":"a@b.c","channel":"C1","ts":"2.0","thread_ts":"1.0"}}`,
			true,
		},
		{
			"bot message ignored",
			`{"type":"event_callback","event":{"type":"message","bot_id":"B1","user":"U9","text":"echo","channel":"C1","ts":"1.0"}}`,
			false,
		},
		{
			"edit subtype ignored",
			`{"type":"event_callback","event":{"type":"message","subtype":"message_changed","user":"U1","channel":"C1","ts":"1.0"}}`,
			false,
		},
		{
			"non-message event ignored",
			`{"type":"event_callback","event":{"type":"reaction_added","user":"U1","channel":"C1","ts":"1.0"}}`,
			false,
		},
		{
			"url verification ignored",
			`{"type":"url_verification","challenge":"x"}`,
			false,
		},
		{
			"missing user ignored",
			`{"type":"event_callback","event":{"type":"message","text":"hi","channel":"C1","ts":"1.0"}}`,
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok, err := decodeMessageEvent(json.RawMessage(tc.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("ok=%v, want %v (event=%+v)", ok, tc.want, ev)
			}
		})
	}
}

func TestDecodeMessageEventFields(t *testing.T) {
	payload := `{"type":"event_callback","event":{"type":"message","user":"U42","text":"schedule a call","channel":"C7","ts":"1700.1","thread_ts":"1600.5"}}`
	ev, ok, err := decodeMessageEvent(json.RawMessage(payload))
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if ev.User != "U42" || ev.Channel != "C7" || ev.Text != "schedule a call" {
		t.Fatalf("event=%+v", ev)
	}
	if ev.ReplyThreadTS() != "1600.5" {
		t.Fatalf("ReplyThreadTS()=%q, want existing thread", ev.ReplyThreadTS())
	}

	ev.ThreadTS = ""
	if ev.ReplyThreadTS() != "1700.1" {
		t.Fatalf("ReplyThreadTS()=%q, want own ts", ev.ReplyThreadTS())
	}
}
