package status

import "testing"

func TestText(t *testing.T) {
	testCases := []struct {
		name   string
		status Status
		out    string
	}{
		{"Testing sent status", 0, "Notification sent"},
		{"Testing failed status", 1, "Delivery failed"},
		{"Testing skipped no email status", 2, "Skipped, no email on target list"},
		{"Testing skipped no token status", 3, "Skipped, no token on record"},
		{"Testing unknown status", 505, ""},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Text(tt.status)
			if res != tt.out {
				t.Errorf("want %s, got %s", tt.out, res)
			}
		})
	}
}
