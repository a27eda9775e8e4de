package media

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ExtractionError reports a failed format probe: the source engine could
// not retrieve metadata for the URL.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract formats for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// MaterializationError reports a failed download or transcode.
type MaterializationError struct {
	FormatID string
	Err      error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("materialize format %s: %v", e.FormatID, e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }

var ytdlpErrorRe = regexp.MustCompile(`(?i)ERROR[:\s]+(.+?)(?:\n|$)`)

// ytdlpFailure pulls the first ERROR: line out of yt-dlp's stderr so the
// user sees the engine's reason instead of "exit status 1".
func ytdlpFailure(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if m := ytdlpErrorRe.FindStringSubmatch(string(exitErr.Stderr)); len(m) > 1 {
			return errors.New(strings.TrimSpace(m[1]))
		}
	}
	return err
}
