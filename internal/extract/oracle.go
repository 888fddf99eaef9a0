package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
)

const meetingPromptTemplate = `
You are an AI assistant that extracts meeting details only from valid meeting requests.
Extract only structured details from this meeting request. Output as JSON:
{
  "participants": [...] only take names from input don't add extra names,
  "date": "..." (Convert text to date format: DD-MM-YYYY)),
  "time": "...",
  "topic": "..."
}
Use explicit formats:
- Date: YYYY-MM-DD use default year as 2025
- Time: HH:MM in 24-hr format (UTC preferred)
Meeting request: "Set a meeting with Alice and Bob next Tuesday at 11am to discuss Q2 hiring."Only return the final JSON. **Do not include any explanation, examples, or extra responses.**
Request: "%s"
Return as JSON.
`

// firstJSONObject matches the first non-nested {...} in the model output.
// A nested object value would be cut short at its inner closing brace; that
// limitation is accepted, the prompt asks for a flat object.
var firstJSONObject = regexp.MustCompile(`(?s)\{.*?\}`)

// requiredKeys are checked in order; the first absent one is reported.
var requiredKeys = []string{"participants", "date", "time", "topic"}

// Generator produces free-form model text for a prompt. Backends: watsonx
// (default) and any OpenAI-compatible endpoint.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Oracle turns a raw utterance into a MeetingIntent via one generation call.
type Oracle struct {
	gen       Generator
	logPrefix string
}

func NewOracle(gen Generator, logPrefix string) *Oracle {
	return &Oracle{gen: gen, logPrefix: logPrefix}
}

// BuildPrompt embeds the utterance verbatim in the fixed instruction prompt.
func BuildPrompt(utterance string) string {
	return fmt.Sprintf(meetingPromptTemplate, utterance)
}

// Extract runs the generation call and parses the result. Unparseable model
// output degrades to an empty object (logged, not surfaced); a parsed object
// missing a required field fails with a MissingFieldError naming it.
func (o *Oracle) Extract(ctx context.Context, utterance string) (MeetingIntent, error) {
	out, err := o.gen.Generate(ctx, BuildPrompt(utterance))
	if err != nil {
		return MeetingIntent{}, err
	}

	carved := o.carveFirstObject(out)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(carved), &fields); err != nil {
		// carveFirstObject already validated the JSON; unreachable in practice.
		fields = map[string]json.RawMessage{}
	}
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return MeetingIntent{}, &MissingFieldError{Field: key}
		}
	}

	var intent MeetingIntent
	if err := json.Unmarshal([]byte(carved), &intent); err != nil {
		return MeetingIntent{}, fmt.Errorf("decode meeting intent: %w", err)
	}
	return intent, nil
}

// carveFirstObject locates the first substring that parses as a JSON object.
// No match, or a match that fails to parse, yields "{}" so the caller's
// required-key validation produces the actionable error.
func (o *Oracle) carveFirstObject(out string) string {
	match := firstJSONObject.FindString(out)
	if match == "" {
		log.Printf("%s no JSON object found in model output: %q", o.logPrefix, preview(out))
		return "{}"
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(match), &probe); err != nil {
		log.Printf("%s JSON found but invalid: %q err=%v", o.logPrefix, preview(match), err)
		return "{}"
	}
	return match
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
