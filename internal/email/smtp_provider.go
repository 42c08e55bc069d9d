package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider delivers mail through gomail.
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) SendWelcome(to, name string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to ProposalForge")
	m.SetBody("text/html", welcomeBody(name))

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func welcomeBody(name string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Your account is ready. Paste a job description, pick a tone, and generate
your first proposal.</p>
<p>Free accounts include a monthly batch of generations; upgrade to Pro for
unlimited proposals and PDF export.</p>
<p>— The ProposalForge team</p>`, name)
}
