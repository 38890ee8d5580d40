package services

import (
	"context"
	"fmt"

	"github.com/lborres/bantay/core"
)

const ActivationSubject = "Activation code"

// SendActivationMail delivers the activation link. Callers run it after the
// response is written and only log the error.
func SendActivationMail(ctx context.Context, mailer core.Mailer, email, activationURL string) error {
	body := fmt.Sprintf("Here is your activation code!\n%s\n", activationURL)
	if err := mailer.Send(ctx, email, ActivationSubject, body); err != nil {
		return fmt.Errorf("failed to send activation mail: %w", err)
	}
	return nil
}
