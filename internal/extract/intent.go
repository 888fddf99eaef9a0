package extract

import "fmt"

// MeetingIntent is the structured result of one extraction call. All four
// fields are required; a missing field is a hard extraction failure.
type MeetingIntent struct {
	Participants []string `json:"participants"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Topic        string   `json:"topic"`
}

// MissingFieldError reports a parsed model output that lacks a required
// field. The field name is part of the user-visible message.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing key in parsed output: %s", e.Field)
}
