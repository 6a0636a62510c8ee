package mailer

import (
	"fmt"
	"os"
	"strings"
)

const (
	recipientPlaceholder = "{{NAMA_PENERIMA}}"
	tokenPlaceholder     = "{{TOKEN}}"
)

// LoadTemplate reads the email template file. The template must carry the
// recipient and token placeholders; anything else is passed through as-is.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read email template [%s]: %q", path, err)
	}
	return string(b), nil
}

// Render substitutes the recipient name and token into the template. Only
// the first occurrence of each placeholder is replaced.
func Render(template, recipientName, token string) string {
	out := strings.Replace(template, recipientPlaceholder, recipientName, 1)
	return strings.Replace(out, tokenPlaceholder, token, 1)
}
