package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts conversation outcomes for the /metrics endpoint.
type Metrics struct {
	Turns              *prometheus.CounterVec
	ExtractionFailures prometheus.Counter
	MeetingsCreated    prometheus.Counter
	BookingFailures    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskmind_turns_total",
			Help: "Conversation turns handled, by outcome.",
		}, []string{"outcome"}),
		ExtractionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskmind_extraction_failures_total",
			Help: "Meeting extractions that failed.",
		}),
		MeetingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskmind_meetings_created_total",
			Help: "Teams meetings successfully created.",
		}),
		BookingFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskmind_booking_failures_total",
			Help: "Teams meeting creation calls that failed.",
		}),
	}
}

// turn outcomes
const (
	outcomeGreeting      = "greeting"
	outcomeSummary       = "summary"
	outcomeExtractFailed = "extract_failed"
	outcomeBooked        = "booked"
	outcomeBookingFailed = "booking_failed"
	outcomeNoSession     = "no_session"
	outcomeIgnored       = "ignored"
)
