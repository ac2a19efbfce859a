// Package email sends transactional mail over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"tavern/internal/shared/config"
	"tavern/internal/shared/logger"
)

// Mailer sends transactional mail. Sending is best-effort; callers treat a
// failed send as a logged warning, never a request failure.
type Mailer struct {
	cfg    *config.EmailConfig
	logger logger.Interface
}

func NewMailer(cfg *config.EmailConfig, logger logger.Interface) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP is configured
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPHost != ""
}

// SendInvitation notifies a user they were invited to a campaign
func (m *Mailer) SendInvitation(to, campaignName, inviterName string) error {
	if !m.Enabled() {
		m.logger.Debugw("email disabled, skipping invitation mail", "to", to)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("%s invited you to join %s", inviterName, campaignName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s has invited you to join the campaign %q.\n\nLog in to accept or decline the invitation.\n",
		inviterName, campaignName))

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	m.logger.Infow("invitation email sent", "to", to, "campaign", campaignName)
	return nil
}
