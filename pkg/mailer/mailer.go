package mailer

import (
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends ticket emails over SMTP. Delivery is best effort: booking
// flows never fail on a mail error.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool {
	return m.config.Host != "" && m.config.Port != 0
}

// Send delivers a plain-text email synchronously.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.config.Host, m.config.Port, m.config.User, m.config.Password)
	if err := d.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email", zap.Error(err), zap.String("to", to))
		return err
	}

	return nil
}

// SendAsync delivers in the background so handlers do not block on SMTP.
func (m *Mailer) SendAsync(to, subject, body string) {
	go func() {
		_ = m.Send(to, subject, body)
	}()
}
