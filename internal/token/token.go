// Package token carries a user's format choice across the gap between
// "menu rendered" and "button clicked". The encoded form rides in the
// transport's component custom ID, so no server-side session state is
// needed: a restart between the two events loses nothing.
package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grabbit-dl/grabbit/internal/media"
)

// Delimiter separates token fields. The source URL is always the last
// field and Decode splits with a bound, so a delimiter inside the URL
// survives the round trip; the earlier fields must not contain one.
const Delimiter = "|"

const fieldCount = 4

// ProtocolError reports callback data that does not decode as a
// selection token. It crosses an untrusted boundary, so this is handled
// defensively rather than treated as impossible.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "selection token: " + e.Reason }

// Selection is one menu entry's resolution state.
type Selection struct {
	Track    media.TrackType
	FormatID string
	Size     int64 // pre-download estimate from the catalog, 0 when unknown
	URL      string
}

// Encode renders the token as track|format_id|size|url.
func (s Selection) Encode() (string, error) {
	if strings.Contains(string(s.Track), Delimiter) || strings.Contains(s.FormatID, Delimiter) {
		return "", &ProtocolError{Reason: "delimiter in field value"}
	}
	return fmt.Sprintf("%s%s%s%s%d%s%s", s.Track, Delimiter, s.FormatID, Delimiter, s.Size, Delimiter, s.URL), nil
}

// Decode parses callback data produced by Encode. Field order is fixed.
func Decode(data string) (Selection, error) {
	parts := strings.SplitN(data, Delimiter, fieldCount)
	if len(parts) != fieldCount {
		return Selection{}, &ProtocolError{Reason: fmt.Sprintf("want %d fields, got %d", fieldCount, len(parts))}
	}

	track, ok := media.ParseTrackType(parts[0])
	if !ok {
		return Selection{}, &ProtocolError{Reason: "unknown track type " + strconv.Quote(parts[0])}
	}
	if parts[1] == "" {
		return Selection{}, &ProtocolError{Reason: "empty format id"}
	}
	size, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || size < 0 {
		return Selection{}, &ProtocolError{Reason: "bad size field " + strconv.Quote(parts[2])}
	}
	if parts[3] == "" {
		return Selection{}, &ProtocolError{Reason: "empty source url"}
	}

	return Selection{Track: track, FormatID: parts[1], Size: size, URL: parts[3]}, nil
}
