package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wneessen/go-mail"
	"github.com/yapay-ai/dirsentry/pkg/sizeutil"
)

const subjectTimeLayout = "2006-01-02 15:04"

// EmailNotifier sends one plain-text alert mail per run over SMTP.
type EmailNotifier struct {
	host       string
	port       int
	username   string
	password   string
	useTLS     bool
	recipients []string
	timeout    time.Duration
}

// NewEmailNotifier creates an SMTP notifier. When useTLS is set the
// connection is upgraded with STARTTLS before authenticating; credentials are
// only used when both username and password are non-empty.
func NewEmailNotifier(host string, port int, username, password string, useTLS bool, recipients []string) *EmailNotifier {
	return &EmailNotifier{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		useTLS:     useTLS,
		recipients: recipients,
		timeout:    30 * time.Second,
	}
}

func (n *EmailNotifier) Name() string { return "email" }

// Send builds the alert mail for report and submits it to every recipient on
// a single message.
func (n *EmailNotifier) Send(ctx context.Context, report Report) error {
	msg := mail.NewMsg()

	from := n.username
	if from == "" {
		from = "dirsentry@" + report.Hostname
	}
	if err := msg.From(from); err != nil {
		return fmt.Errorf("set mail sender %q: %w", from, err)
	}
	if err := msg.To(n.recipients...); err != nil {
		return fmt.Errorf("set mail recipients: %w", err)
	}
	msg.Subject(Subject(report))
	msg.SetBodyString(mail.TypeTextPlain, Body(report))
	if report.RunID != "" {
		msg.SetGenHeader(mail.Header("X-Run-ID"), report.RunID)
	}

	opts := []mail.Option{
		mail.WithPort(n.port),
		mail.WithTimeout(n.timeout),
		mail.WithTLSPolicy(mail.NoTLS),
	}
	if n.useTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if n.username != "" && n.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.username),
			mail.WithPassword(n.password),
		)
	}

	client, err := mail.NewClient(n.host, opts...)
	if err != nil {
		return fmt.Errorf("create mail client for %s:%d: %w", n.host, n.port, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send alert mail via %s:%d: %w", n.host, n.port, err)
	}
	return nil
}

// Subject renders the mail subject line for a report.
func Subject(report Report) string {
	return fmt.Sprintf("Directory size alert on %s - %s",
		report.Hostname, report.GeneratedAt.Format(subjectTimeLayout))
}

// Body renders the plain-text mail body listing every alert in the report.
func Body(report Report) string {
	var b strings.Builder

	b.WriteString("The following directories have exceeded their size thresholds:\n\n")
	for _, a := range report.Alerts {
		fmt.Fprintf(&b, "Directory: %s (%s)\n", a.Name, a.Path)
		fmt.Fprintf(&b, "Current Size: %s (%s bytes)\n",
			sizeutil.FormatSize(a.SizeBytes), humanize.Comma(a.SizeBytes))
		fmt.Fprintf(&b, "Threshold: %s\n", sizeutil.FormatSize(a.ThresholdBytes))
		fmt.Fprintf(&b, "Exceeded by: %s\n\n", sizeutil.FormatSize(a.ExceededBy()))
	}
	fmt.Fprintf(&b, "\nThis is an automated message from dirsentry running on %s.\n", report.Hostname)

	return b.String()
}
