package nats

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	StreamName    = "INTERVIEW_EVENTS"
	SubjectPrefix = "interview"
)

// Subject maps an event type onto the stream's subject space.
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, eventType)
}

// EventTypeFromSubject is the inverse of Subject.
func EventTypeFromSubject(subject string) string {
	return strings.TrimPrefix(subject, SubjectPrefix+".")
}

func connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
