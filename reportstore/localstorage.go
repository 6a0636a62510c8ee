package reportstore

import (
	"fmt"
	"os"
)

type localStorage struct {
}

// NewLocalStorage returns a new local storage instance
func NewLocalStorage() FileStorage {
	return &localStorage{}
}

// Upload writes the report under the given directory, creating it first
// when needed.
func (ls *localStorage) Upload(b []byte, bucket, fileName string) (string, error) {
	_, err := os.Stat(bucket) // checking if the directory exists
	if os.IsNotExist(err) {
		if err := os.MkdirAll(bucket, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %q", bucket, err)
		}
	}
	name := fmt.Sprintf("%s/%s", bucket, fileName)
	if err := os.WriteFile(name, b, 0644); err != nil {
		return "", fmt.Errorf("failed to save file %s at path %s: %q", fileName, name, err)
	}
	return name, nil
}
