package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const defaultSMTPTimeout = 15 * time.Second

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// Timeout bounds the whole SMTP exchange. ctx may shorten it.
	Timeout time.Duration
}

type EmailSender interface {
	SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error
}

type Mailer struct {
	config Config
}

func NewMailer(cfg Config) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error {
	headers := [][2]string{
		{"From", m.config.From},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n" + htmlBody)

	if err := m.send(ctx, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send html email to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) deadline(ctx context.Context) time.Time {
	timeout := m.config.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return deadline
}

// send runs the SMTP exchange on a connection whose deadline covers the
// greeting as well as every later command.
func (m *Mailer) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.config.Host, m.config.Port)
	deadline := m.deadline(ctx)

	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting from %s: %w", addr, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.config.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.config.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(m.config.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// OrderEmailData is what the new-order email shows.
type OrderEmailData struct {
	OrderID       string
	ProductName   string
	Quantity      int
	DesiredPrice  string
	UnitPrice     string
	CustomerName  string
	CustomerPhone string
	Notes         string
	AdminURL      string
}

func BuildOrderEmailBody(d OrderEmailData) string {
	notes := "-"
	if d.Notes != "" {
		notes = html.EscapeString(d.Notes)
	}
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html lang="fa" dir="rtl">
        <head>
            <meta charset="utf-8">
            <title>سفارش جدید</title>
            <style>
                body { font-family: Tahoma, sans-serif; line-height: 1.8; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .header { background-color: #f8f8f8; padding: 10px 0; text-align: center; border-bottom: 1px solid #ddd; }
                table { width: 100%%; border-collapse: collapse; }
                td { padding: 6px 4px; border-bottom: 1px solid #eee; }
                .footer { font-size: 0.8em; color: #777; text-align: center; margin-top: 20px; border-top: 1px solid #ddd; padding-top: 10px; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h2>سفارش جدید ثبت شد</h2>
                </div>
                <table>
                    <tr><td>شماره سفارش</td><td>%s</td></tr>
                    <tr><td>محصول</td><td>%s</td></tr>
                    <tr><td>تعداد</td><td>%d</td></tr>
                    <tr><td>قیمت پیشنهادی</td><td>%s</td></tr>
                    <tr><td>قیمت واحد</td><td>%s</td></tr>
                    <tr><td>نام مشتری</td><td>%s</td></tr>
                    <tr><td>تلفن</td><td>%s</td></tr>
                    <tr><td>توضیحات</td><td>%s</td></tr>
                </table>
                <div class="footer">
                    <p><a href="%s">مشاهده در پنل مدیریت</a></p>
                </div>
            </div>
        </body>
        </html>
    `,
		html.EscapeString(d.OrderID),
		html.EscapeString(d.ProductName),
		d.Quantity,
		html.EscapeString(d.DesiredPrice),
		html.EscapeString(d.UnitPrice),
		html.EscapeString(d.CustomerName),
		html.EscapeString(d.CustomerPhone),
		notes,
		html.EscapeString(d.AdminURL),
	)
}
