package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/rotemgl/jars_backend/internal/domain"
)

// Client sends notification mail over SMTP.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail sends a single HTML message.
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client (host=%s port=%d): %w", c.host, c.port, err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail (host=%s port=%d): %w", c.host, c.port, err)
	}
	return nil
}

// SendContactNotification tells the business a new contact form arrived.
func (c *Client) SendContactNotification(to string, msg domain.ContactMessage) error {
	subject := fmt.Sprintf("פנייה חדשה מהאתר - %s", msg.Name)
	body := fmt.Sprintf(`
		<div dir="rtl">
			<h2>פנייה חדשה מטופס יצירת הקשר</h2>
			<p><strong>שם:</strong> %s</p>
			<p><strong>אימייל:</strong> %s</p>
			<p><strong>טלפון:</strong> %s</p>
			<p><strong>הודעה:</strong></p>
			<p>%s</p>
		</div>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Phone),
		html.EscapeString(msg.Message),
	)
	return c.SendEmail(to, subject, body)
}
