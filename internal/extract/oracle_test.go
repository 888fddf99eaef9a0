package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	out string
	err error

	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.out, f.err
}

func TestExtractWellFormed(t *testing.T) {
	gen := &fakeGenerator{out: `{"participants": ["Sai"], "date": "2025-01-15", "time": "15:00", "topic": "Q2 sales"}`}
	o := NewOracle(gen, "[test]")

	intent, err := o.Extract(context.Background(), "schedule a meeting on Wednesday at 3pm with Sai to discuss Q2 sales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intent.Participants) != 1 || intent.Participants[0] != "Sai" {
		t.Fatalf("participants=%v", intent.Participants)
	}
	if intent.Date != "2025-01-15" || intent.Time != "15:00" || intent.Topic != "Q2 sales" {
		t.Fatalf("intent=%+v", intent)
	}
}

func TestExtractPromptEmbedsUtteranceVerbatim(t *testing.T) {
	gen := &fakeGenerator{out: `{"participants": [], "date": "d", "time": "t", "topic": "x"}`}
	o := NewOracle(gen, "[test]")

	utterance := "Schedule a Call with Dana McKay"
	if _, err := o.Extract(context.Background(), utterance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, `Request: "`+utterance+`"`) {
		t.Fatalf("prompt does not embed utterance: %q", gen.lastPrompt)
	}
}

func TestExtractToleratesProseAroundJSON(t *testing.T) {
	gen := &fakeGenerator{out: "Sure! Here is the JSON:\n```json\n{\"participants\": [\"Ana\", \"Bo\"], \"date\": \"2025-02-01\", \"time\": \"09:30\", \"topic\": \"roadmap\"}\n```\nLet me know if you need anything else."}
	o := NewOracle(gen, "[test]")

	intent, err := o.Extract(context.Background(), "set a meeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intent.Participants) != 2 || intent.Topic != "roadmap" {
		t.Fatalf("intent=%+v", intent)
	}
}

func TestExtractNoObjectFailsOnFirstRequiredKey(t *testing.T) {
	gen := &fakeGenerator{out: "I could not find a meeting request in that."}
	o := NewOracle(gen, "[test]")

	_, err := o.Extract(context.Background(), "gibberish")
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("err=%v, want MissingFieldError", err)
	}
	if mf.Field != "participants" {
		t.Fatalf("field=%q, want participants (first required key)", mf.Field)
	}
}

func TestExtractInvalidJSONDegradesToMissingKey(t *testing.T) {
	gen := &fakeGenerator{out: `{"participants": ["Sai",}`}
	o := NewOracle(gen, "[test]")

	_, err := o.Extract(context.Background(), "schedule something")
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("err=%v, want MissingFieldError", err)
	}
	if mf.Field != "participants" {
		t.Fatalf("field=%q", mf.Field)
	}
}

func TestExtractMissingFieldNamed(t *testing.T) {
	cases := []struct {
		name string
		out  string
		want string
	}{
		{"no topic", `{"participants": ["A"], "date": "d", "time": "t"}`, "topic"},
		{"no date", `{"participants": ["A"], "time": "t", "topic": "x"}`, "date"},
		{"no time", `{"participants": ["A"], "date": "d", "topic": "x"}`, "time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOracle(&fakeGenerator{out: tc.out}, "[test]")
			_, err := o.Extract(context.Background(), "schedule a call")
			var mf *MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("err=%v", err)
			}
			if mf.Field != tc.want {
				t.Fatalf("field=%q, want %q", mf.Field, tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not name field", err)
			}
		})
	}
}

func TestExtractGeneratorErrorPropagates(t *testing.T) {
	wantErr := errors.New("upstream down")
	o := NewOracle(&fakeGenerator{err: wantErr}, "[test]")

	_, err := o.Extract(context.Background(), "schedule a call")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v, want wrapped generator error", err)
	}
}

func TestCarveTakesFirstNonNestedObject(t *testing.T) {
	// The non-greedy match stops at the first closing brace. With a nested
	// object value the carve is cut short and fails validation downstream;
	// that behavior is pinned here on purpose.
	gen := &fakeGenerator{out: `{"participants": {"name": "Sai"}, "date": "d", "time": "t", "topic": "x"}`}
	o := NewOracle(gen, "[test]")

	_, err := o.Extract(context.Background(), "schedule a call")
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("err=%v, want MissingFieldError from truncated carve", err)
	}
}
