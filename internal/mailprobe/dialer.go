package mailprobe

import (
	"context"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// smtpDialer implements dialer against a real SMTP server, using a
// HELO/MAIL FROM/RCPT TO probe without ever sending DATA.
type smtpDialer struct{}

func (smtpDialer) probe(ctx context.Context, host, local, domainName string, timeout time.Duration) (accepted, definitiveRefusal bool, err error) {
	d := net.Dialer{Timeout: timeout}
	conn, dialErr := d.DialContext(ctx, "tcp", net.JoinHostPort(strings.TrimSuffix(host, "."), "25"))
	if dialErr != nil {
		return false, false, dialErr
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	client, clientErr := smtp.NewClient(conn, host)
	if clientErr != nil {
		return false, false, clientErr
	}
	defer client.Close()

	if helloErr := client.Hello("kimchi.invalid"); helloErr != nil {
		return false, false, helloErr
	}

	if mailErr := client.Mail("probe@kimchi.invalid"); mailErr != nil {
		if isPermanentSMTPError(mailErr) {
			return false, true, nil
		}
		return false, false, mailErr
	}

	rcptErr := client.Rcpt(local + "@" + domainName)
	client.Reset()
	client.Quit()

	if rcptErr == nil {
		return true, false, nil
	}
	if isPermanentSMTPError(rcptErr) {
		return false, true, nil
	}
	return false, false, nil
}

// isPermanentSMTPError reports whether err carries a 5xx SMTP reply,
// the only refusal spec §4.5 treats as definitive; 4xx greylisting
// replies are left ambiguous.
func isPermanentSMTPError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return len(msg) > 0 && msg[0] == '5'
}
