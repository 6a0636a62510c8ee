package status

// Status is a custom type to represent the outcome of one dispatch item
type Status int

const (
	// Sent means the notification was confirmed delivered
	Sent Status = 0

	// Failed means delivery failed after all attempts
	Failed Status = 1

	// SkippedNoEmail means the target list has no email for the voter
	SkippedNoEmail Status = 2

	// SkippedNoToken means no issued token exists for the voter
	SkippedNoToken Status = 3
)

var (
	statusText = map[Status]string{
		Sent:           "Notification sent",
		Failed:         "Delivery failed",
		SkippedNoEmail: "Skipped, no email on target list",
		SkippedNoToken: "Skipped, no token on record",
	}
)

// Text returns a text for a status. It returns the empty
// string if the status is unknown.
func Text(status Status) string {
	return statusText[status]
}
