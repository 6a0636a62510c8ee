package mailer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRender(t *testing.T) {
	out := Render("Hi {{NAMA_PENERIMA}}, code {{TOKEN}}", "Ana", "AB12CD")
	if out != "Hi Ana, code AB12CD" {
		t.Errorf("want %q, got %q", "Hi Ana, code AB12CD", out)
	}
}

func TestRenderReplacesFirstOccurrenceOnly(t *testing.T) {
	out := Render("{{TOKEN}} and again {{TOKEN}}", "Ana", "AB12CD")
	if out != "AB12CD and again {{TOKEN}}" {
		t.Errorf("want only the first placeholder replaced, got %q", out)
	}
}

func TestRenderWithoutPlaceholders(t *testing.T) {
	out := Render("no placeholders here", "Ana", "AB12CD")
	if out != "no placeholders here" {
		t.Errorf("want template passed through unchanged, got %q", out)
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "email-template.html")
	content := "<p>Hi {{NAMA_PENERIMA}}, your token is {{TOKEN}}</p>"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Errorf("want error nil when writing test template, got %q", err)
	}
	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if tpl != content {
		t.Errorf("want template content %q, got %q", content, tpl)
	}
	if _, err := LoadTemplate(filepath.Join(dir, "absent.html")); err == nil {
		t.Errorf("want an error for an absent template file")
	}
}
