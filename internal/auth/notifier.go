// AngelaMos | 2026
// notifier.go

package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// logNotifier writes outbound messages to the application log instead
// of a mail provider. It stands in until an SMTP or ESP integration is
// wired behind the Notifier interface.
type logNotifier struct {
	logger          *slog.Logger
	frontendBaseURL string
}

func NewLogNotifier(logger *slog.Logger, frontendBaseURL string) Notifier {
	return &logNotifier{
		logger:          logger,
		frontendBaseURL: frontendBaseURL,
	}
}

func (n *logNotifier) SendOTP(
	_ context.Context,
	email, code string,
) error {
	n.logger.Info("otp code issued",
		"email", email,
		"code", code,
	)
	return nil
}

func (n *logNotifier) SendPasswordReset(
	_ context.Context,
	email, resetToken string,
) error {
	link := fmt.Sprintf(
		"%s/reset-password?token=%s",
		n.frontendBaseURL,
		resetToken,
	)
	n.logger.Info("password reset link issued",
		"email", email,
		"link", link,
	)
	return nil
}
