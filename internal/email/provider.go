package email

// Provider sends transactional email.
type Provider interface {
	// SendWelcome greets a freshly signed-up user. Best effort: callers
	// log failures and move on.
	SendWelcome(to, name string) error
}

// NopProvider is used when SMTP is not configured.
type NopProvider struct{}

func (NopProvider) SendWelcome(string, string) error { return nil }
