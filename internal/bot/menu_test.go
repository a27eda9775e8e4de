package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/grabbit-dl/grabbit/internal/media"
	"github.com/grabbit-dl/grabbit/internal/token"
)

func TestIsVideoURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"http://m.youtube.com/watch?v=abc",
	}
	for _, u := range valid {
		if !isVideoURL(u) {
			t.Fatalf("expected %q to be recognized", u)
		}
	}
	invalid := []string{
		"https://example.com/watch?v=abc",
		"https://notyoutube.combo/x",
		"youtube.com/watch?v=abc", // no scheme
		"just some text",
		"ftp://youtube.com/x",
	}
	for _, u := range invalid {
		if isVideoURL(u) {
			t.Fatalf("expected %q to be rejected", u)
		}
	}
}

func TestButtonLabel(t *testing.T) {
	f := media.Format{Track: media.TrackVideo, Quality: "1080p", Ext: "mp4", FormatID: "137", Size: 45 << 20}
	if got := buttonLabel(f); got != "Video 1080p mp4 (45MB)" {
		t.Fatalf("unexpected label %q", got)
	}
	f = media.Format{Track: media.TrackAudio, Quality: "128kbps", Ext: "m4a", FormatID: "140"}
	if got := buttonLabel(f); got != "Audio 128kbps m4a (?)" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestMenuComponentsBindTokens(t *testing.T) {
	formats := []media.Format{
		{Track: media.TrackVideo, Quality: "720p", Ext: "mp4", FormatID: "22", Size: 100},
		{Track: media.TrackAudio, Quality: "128kbps", Ext: "m4a", FormatID: "140", Size: 50},
	}
	rows, err := menuComponents(formats, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("menuComponents failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row for two buttons, got %d", len(rows))
	}
	row := rows[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("expected two buttons, got %d", len(row.Components))
	}

	btn := row.Components[0].(discordgo.Button)
	sel, err := token.Decode(btn.CustomID)
	if err != nil {
		t.Fatalf("button custom ID does not decode: %v", err)
	}
	if sel.FormatID != "22" || sel.Track != media.TrackVideo || sel.URL != "https://youtu.be/abc" {
		t.Fatalf("token fields mismatch: %+v", sel)
	}
}

func TestMenuComponentsRowChunkingAndCap(t *testing.T) {
	var formats []media.Format
	for i := 0; i < 40; i++ {
		formats = append(formats, media.Format{
			Track:    media.TrackVideo,
			Quality:  "360p",
			Ext:      "mp4",
			FormatID: fmt.Sprintf("f%d", i),
		})
	}

	rows, err := menuComponents(formats, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("menuComponents failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows at the cap, got %d", len(rows))
	}
	total := 0
	for _, r := range rows {
		row := r.(discordgo.ActionsRow)
		if len(row.Components) > buttonsPerRow {
			t.Fatalf("row exceeds %d buttons", buttonsPerRow)
		}
		total += len(row.Components)
	}
	if total != maxMenuButtons {
		t.Fatalf("expected %d buttons total, got %d", maxMenuButtons, total)
	}
}

func TestMenuComponentsSkipsOversizedTokens(t *testing.T) {
	long := "https://www.youtube.com/watch?v=" + strings.Repeat("q", 120)
	formats := []media.Format{
		{Track: media.TrackVideo, Quality: "720p", Ext: "mp4", FormatID: "22"},
	}
	rows, err := menuComponents(formats, long)
	if err != nil {
		t.Fatalf("menuComponents failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected oversized token to be skipped, got %d rows", len(rows))
	}
}
