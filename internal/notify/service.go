package notify

import (
	"context"
	"fmt"
)

// Service fans a batch summary out to the configured channels.
// Only email exists today.
type Service struct {
	emailNotifier Notifier
	emailAddress  string
}

// NewService creates a notification service
func NewService(emailNotifier Notifier, emailAddress string) *Service {
	return &Service{
		emailNotifier: emailNotifier,
		emailAddress:  emailAddress,
	}
}

// NotifyBatchDone reports a finished submit batch.
// Errors are logged but don't fail the operation.
func (s *Service) NotifyBatchDone(ctx context.Context, summary BatchSummary) {
	fmt.Printf("Notification: batch finished (%d created, %d failed)\n", summary.Created, summary.Failed)

	if summary.Created == 0 && summary.Failed == 0 {
		return
	}

	if s.emailAddress == "" {
		fmt.Println("Notification: no email address configured")
		return
	}
	if s.emailNotifier == nil || !s.emailNotifier.IsConfigured() {
		fmt.Println("Notification: email not configured (no API key)")
		return
	}

	if err := s.emailNotifier.Send(ctx, summary, s.emailAddress); err != nil {
		fmt.Printf("Notification: email failed: %v\n", err)
	} else {
		fmt.Println("Notification: email sent successfully")
	}
}

// IsEmailAvailable returns true if email notifications can be used
func (s *Service) IsEmailAvailable() bool {
	return s.emailNotifier != nil && s.emailNotifier.IsConfigured()
}
