package voter

import (
	"strings"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	for i := 0; i < 100; i++ {
		token := GenerateToken()
		if len(token) != TokenLength {
			t.Errorf("want token length %d, got %d", TokenLength, len(token))
		}
		for _, c := range token {
			if !strings.ContainsRune(tokenAlphabet, c) {
				t.Errorf("want token drawn from %s, got character %q", tokenAlphabet, c)
			}
		}
	}
}

func TestAssignTokenReusesIssuedToken(t *testing.T) {
	issued := map[string]string{"13223010": "QZ1VNS"}
	for i := 0; i < 5; i++ {
		token, isNew := AssignToken("13223010", issued)
		if token != "QZ1VNS" {
			t.Errorf("want issued token QZ1VNS reused, got %s", token)
		}
		if isNew {
			t.Errorf("want isNew false for an already-issued token")
		}
	}
}

func TestAssignTokenGeneratesForUnknownVoter(t *testing.T) {
	issued := map[string]string{"13223010": "QZ1VNS"}
	token, isNew := AssignToken("13223099", issued)
	if !isNew {
		t.Errorf("want isNew true for a voter without a token")
	}
	if len(token) != TokenLength {
		t.Errorf("want generated token of length %d, got %d", TokenLength, len(token))
	}
}

func TestAssignTokenTreatsEmptyStoredTokenAsAbsent(t *testing.T) {
	issued := map[string]string{"13223010": ""}
	_, isNew := AssignToken("13223010", issued)
	if !isNew {
		t.Errorf("want a fresh token when the stored token is empty")
	}
}
