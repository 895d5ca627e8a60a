// Package mail sends budget alert notifications over SMTP.
package mail

import (
	"fmt"

	"github.com/pkoka888/budget-control/internal/config"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Sender sends notification mails. A Sender with a nil dialer drops all
// mails silently, which is the behavior when no SMTP server is configured.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender returns a Sender for the configuration. When email is not
// configured, the returned Sender drops all mails.
func NewSender(cfg config.Email) *Sender {
	if !cfg.Enabled() {
		return &Sender{}
	}

	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// BudgetAlert sends a notification for a newly created alert to the user.
func (s *Sender) BudgetAlert(user models.User, alert models.BudgetAlert, categoryName string) error {
	if s.dialer == nil {
		log.Debug().Str("user", user.Email).Msg("email is not configured, dropping alert notification")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Budget alert: %s reached %d%% in %s", categoryName, alert.ThresholdPercent, alert.Period))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nyour %s budget for %s has reached %d%% of its limit.\n\nSpent: %s\nLimit: %s\n",
		user.Name, categoryName, alert.Period, alert.ThresholdPercent, alert.SpentAmount, alert.LimitAmount,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending the alert notification failed: %w", err)
	}

	return nil
}
