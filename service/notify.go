package service

import (
	"fmt"
	"time"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// Notifier sends the optional e-mail report after a successful backup.
type Notifier struct {
	cfg *config.EmailConfig
}

// NewNotifier creates the notifier; it is a no-op sender until e-mail is
// enabled in configuration.
func NewNotifier(cfg *config.EmailConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Enabled reports whether reports should be sent at all.
func (n *Notifier) Enabled() bool {
	return n.cfg != nil && n.cfg.Enabled && n.cfg.To != ""
}

// SendBackupReport mails a short summary of an exported backup.
func (n *Notifier) SendBackupReport(income, expenses, cash int, took time.Duration) error {
	if !n.Enabled() {
		return fmt.Errorf("email reports not enabled")
	}

	body := fmt.Sprintf(`
<html>
<body>
    <p>Backup to Google Sheets finished in %s.</p>
    <ul>
        <li>Income records: %d</li>
        <li>Expense records: %d</li>
        <li>Cash accounts: %d</li>
    </ul>
    <p>This message was sent automatically.</p>
</body>
</html>
`, took.Round(time.Millisecond), income, expenses, cash)

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("Finance backup complete (%s)", time.Now().Format("2006-01-02")))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	return d.DialAndSend(m)
}
