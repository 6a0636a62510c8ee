// Package reportstore stores generated reconciliation reports, either on
// the local filesystem or on an S3 bucket shared with the committee.
package reportstore

// FileStorage writes one report file and returns its resulting location.
type FileStorage interface {
	Upload(b []byte, bucket, fileName string) (string, error)
}
