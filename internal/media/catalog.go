package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
)

// CatalogBuilder enumerates the encodings yt-dlp can materialize for a
// URL, shaped into a quality-ordered choice set.
type CatalogBuilder struct {
	Ytdlp string // yt-dlp binary path
}

type rawFormat struct {
	FormatID       string  `json:"format_id"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Ext            string  `json:"ext"`
	FormatNote     string  `json:"format_note"`
	Height         int     `json:"height"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

type probeResult struct {
	Formats []rawFormat `json:"formats"`
}

// BuildCatalog probes the URL once and returns the offerable encodings:
// combined audio+video entries first, audio-only entries after, each
// block sorted best quality first. An empty result means the source has
// nothing offerable, not that the probe failed.
func (c *CatalogBuilder) BuildCatalog(ctx context.Context, url string) ([]Format, error) {
	cmd := exec.CommandContext(ctx, c.Ytdlp,
		"-J",
		"--no-playlist",
		"--no-warnings",
		"--skip-download",
		url,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, &ExtractionError{URL: url, Err: ytdlpFailure(err)}
	}

	var probe probeResult
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, &ExtractionError{URL: url, Err: fmt.Errorf("parse yt-dlp output: %w", err)}
	}

	return shapeCatalog(probe.Formats), nil
}

// shapeCatalog classifies, deduplicates and orders raw yt-dlp format
// entries. Entries sharing a format_id are collapsed, last occurrence
// wins; yt-dlp lists spurious repeats and the later record is the more
// complete one.
func shapeCatalog(raw []rawFormat) []Format {
	byID := make(map[string]Format)
	var order []string
	for _, rf := range raw {
		f, ok := classify(rf)
		if !ok {
			continue
		}
		if _, seen := byID[f.FormatID]; !seen {
			order = append(order, f.FormatID)
		}
		byID[f.FormatID] = f
	}

	var video, audio []Format
	for _, id := range order {
		f := byID[id]
		if f.Track == TrackVideo {
			video = append(video, f)
		} else {
			audio = append(audio, f)
		}
	}

	byQualityDesc := func(s []Format) func(i, j int) bool {
		return func(i, j int) bool {
			return qualityValue(s[i].Quality) > qualityValue(s[j].Quality)
		}
	}
	sort.SliceStable(video, byQualityDesc(video))
	sort.SliceStable(audio, byQualityDesc(audio))

	return append(video, audio...)
}

// classify maps a raw entry to a deliverable Format. Streams without an
// audio track, or with neither track, are not independently deliverable
// and are dropped.
func classify(rf rawFormat) (Format, bool) {
	if rf.FormatID == "" {
		return Format{}, false
	}
	hasVideo := rf.VCodec != "" && rf.VCodec != "none"
	hasAudio := rf.ACodec != "" && rf.ACodec != "none"

	size := rf.Filesize
	if size == 0 {
		size = rf.FilesizeApprox
	}

	switch {
	case hasVideo && hasAudio:
		quality := rf.FormatNote
		if quality == "" && rf.Height > 0 {
			quality = fmt.Sprintf("%dp", rf.Height)
		}
		return Format{Track: TrackVideo, Quality: quality, Ext: rf.Ext, FormatID: rf.FormatID, Size: size}, true
	case !hasVideo && hasAudio:
		quality := rf.FormatNote
		if rf.ABR > 0 {
			quality = fmt.Sprintf("%.0fkbps", rf.ABR)
		}
		return Format{Track: TrackAudio, Quality: quality, Ext: rf.Ext, FormatID: rf.FormatID, Size: size}, true
	}
	return Format{}, false
}

// qualityValue parses the numeric prefix of a quality label ("1080p",
// "128kbps"). Labels without one sort below everything else.
func qualityValue(label string) int {
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	if i == 0 {
		return -1
	}
	v, err := strconv.Atoi(label[:i])
	if err != nil {
		return -1
	}
	return v
}
