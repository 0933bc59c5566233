package sms

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers a short text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender writes the message to the log instead of a gateway. Used in
// development and tests; production wires a real SMS gateway behind the
// same interface.
type LogSender struct {
	Logger *logrus.Logger
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	l := s.Logger
	if l == nil {
		l = logrus.New()
	}
	l.WithFields(logrus.Fields{
		"phone": phone,
	}).Infof("SIMULATED SMS: %s", message)
	return nil
}
