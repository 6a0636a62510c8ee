// Package mailer renders and delivers the token emails for the election.
package mailer

// Sender delivers one rendered message to one recipient.
type Sender interface {
	Send(to, subject, htmlBody string) error
}
