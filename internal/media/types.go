package media

// TrackType distinguishes the two deliverable stream classes. Video-only
// and silent streams are never offered on their own.
type TrackType string

const (
	TrackAudio TrackType = "audio"
	TrackVideo TrackType = "video"
)

// ParseTrackType reports whether s names a known track type.
func ParseTrackType(s string) (TrackType, bool) {
	switch TrackType(s) {
	case TrackAudio, TrackVideo:
		return TrackType(s), true
	}
	return "", false
}

// Format is one selectable encoding of a source video.
type Format struct {
	Track    TrackType
	Quality  string // "1080p" for video, "192kbps" for audio
	Ext      string // container extension as reported by yt-dlp
	FormatID string // opaque yt-dlp format identifier, passed back verbatim
	Size     int64  // pre-download estimate, 0 when unknown
}

// MaterializedFile is a downloaded local artifact. The delivery router
// owns it from the moment materialization completes until it removes it.
type MaterializedFile struct {
	Path  string
	Track TrackType
	Size  int64 // measured on disk after download
}
