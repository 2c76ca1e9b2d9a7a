package util

import "github.com/pkg/errors"

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	// ErrInvalidPlatformURL is raised synchronously, before any network
	// or subprocess work.
	ErrInvalidPlatformURL = &Error{Message: "invalid URL for this platform"}

	// ErrNoVideoFound is a signal, not a user-facing error: it triggers
	// the image fallback scraper.
	ErrNoVideoFound = &Error{Message: "no video found in this post"}

	// ErrExtractorEmpty covers the extractor exiting cleanly while
	// producing no output, which is never a silent success.
	ErrExtractorEmpty = &Error{Message: "extractor exited with code 0 but no output"}

	// ErrNoImageMetadata means the fallback scrape found nothing usable.
	ErrNoImageMetadata = &Error{Message: "could not find image metadata"}
)

// GetLastError unwraps an error chain down to its root cause, used when
// converting internal errors into a single user-facing message.
func GetLastError(err error) error {
	lastErr := err
	for {
		unwrapped := errors.Unwrap(lastErr)
		if unwrapped == nil {
			break
		}
		lastErr = unwrapped
	}
	return lastErr
}
