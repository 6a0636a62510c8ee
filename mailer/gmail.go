package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const fromName = "Panitia Pemira HME ITB"

// GmailSender delivers mail through the Gmail API of the authorized
// committee account. The OAuth client refreshes the access token on its own.
type GmailSender struct {
	service     *gmail.Service
	senderEmail string
}

// NewGmailSender builds a sender from a client credentials file and a file
// holding the previously authorized OAuth token.
func NewGmailSender(credentialsFile, oauthTokenFile string) (*GmailSender, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file [%s]: %q", credentialsFile, err)
	}
	config, err := google.ConfigFromJSON(b, gmail.MailGoogleComScope)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration from file [%s]: %q", credentialsFile, err)
	}
	f, err := os.Open(oauthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open OAuth token file [%s]: %q", oauthTokenFile, err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err = json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to bind OAuth token: %q", err)
	}
	ctx := context.Background()
	client := config.Client(ctx, tok)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("could not create Gmail service: %q", err)
	}
	profile, err := service.Users.GetProfile("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender address of authorized account: %q", err)
	}
	return &GmailSender{
		service:     service,
		senderEmail: profile.EmailAddress,
	}, nil
}

// SenderEmail is the address of the authorized account.
func (g *GmailSender) SenderEmail() string {
	return g.senderEmail
}

// Send delivers one HTML message.
func (g *GmailSender) Send(to, subject, htmlBody string) error {
	raw := fmt.Sprintf("From: %q <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		fromName, g.senderEmail, to, subject, htmlBody)
	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}
	if _, err := g.service.Users.Messages.Send("me", message).Do(); err != nil {
		return fmt.Errorf("failed to send mail to [%s]: %q", to, err)
	}
	return nil
}
