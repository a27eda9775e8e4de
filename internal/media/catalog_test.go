package media

import "testing"

func TestClassifyBothCodecsIsVideo(t *testing.T) {
	f, ok := classify(rawFormat{FormatID: "18", VCodec: "avc1", ACodec: "mp4a", Ext: "mp4", FormatNote: "360p"})
	if !ok {
		t.Fatalf("expected entry with both codecs to be kept")
	}
	if f.Track != TrackVideo {
		t.Fatalf("expected video classification, got %q", f.Track)
	}
}

func TestClassifyAudioOnly(t *testing.T) {
	f, ok := classify(rawFormat{FormatID: "140", VCodec: "none", ACodec: "mp4a", Ext: "m4a", ABR: 128})
	if !ok {
		t.Fatalf("expected audio-only entry to be kept")
	}
	if f.Track != TrackAudio {
		t.Fatalf("expected audio classification, got %q", f.Track)
	}
	if f.Quality != "128kbps" {
		t.Fatalf("expected bitrate label, got %q", f.Quality)
	}
}

func TestClassifyDropsSilentAndCodecless(t *testing.T) {
	if _, ok := classify(rawFormat{FormatID: "137", VCodec: "avc1", ACodec: "none"}); ok {
		t.Fatalf("video-only entry must be dropped")
	}
	if _, ok := classify(rawFormat{FormatID: "sb0", VCodec: "none", ACodec: "none"}); ok {
		t.Fatalf("codecless entry must be dropped")
	}
	if _, ok := classify(rawFormat{FormatID: "x", VCodec: "", ACodec: ""}); ok {
		t.Fatalf("entry with null codecs must be dropped")
	}
}

func TestAudioLabelFallsBackToFormatNote(t *testing.T) {
	f, ok := classify(rawFormat{FormatID: "139", VCodec: "none", ACodec: "opus", FormatNote: "low"})
	if !ok {
		t.Fatal("expected entry to be kept")
	}
	if f.Quality != "low" {
		t.Fatalf("expected format note fallback, got %q", f.Quality)
	}
}

func TestVideoLabelFallsBackToHeight(t *testing.T) {
	f, ok := classify(rawFormat{FormatID: "22", VCodec: "avc1", ACodec: "mp4a", Height: 720})
	if !ok {
		t.Fatal("expected entry to be kept")
	}
	if f.Quality != "720p" {
		t.Fatalf("expected height-derived label, got %q", f.Quality)
	}
}

func TestSizeFallsBackToApprox(t *testing.T) {
	f, _ := classify(rawFormat{FormatID: "18", VCodec: "avc1", ACodec: "mp4a", FilesizeApprox: 42})
	if f.Size != 42 {
		t.Fatalf("expected approx size 42, got %d", f.Size)
	}
}

func TestDedupeLastOccurrenceWins(t *testing.T) {
	catalog := shapeCatalog([]rawFormat{
		{FormatID: "18", VCodec: "avc1", ACodec: "mp4a", FormatNote: "360p", Filesize: 100},
		{FormatID: "18", VCodec: "avc1", ACodec: "mp4a", FormatNote: "360p", Filesize: 999},
	})
	if len(catalog) != 1 {
		t.Fatalf("expected one entry after dedupe, got %d", len(catalog))
	}
	if catalog[0].Size != 999 {
		t.Fatalf("expected later entry's size 999, got %d", catalog[0].Size)
	}
}

func TestSortOrderAndConcatenation(t *testing.T) {
	catalog := shapeCatalog([]rawFormat{
		{FormatID: "a1", VCodec: "none", ACodec: "mp4a", ABR: 64},
		{FormatID: "v1", VCodec: "avc1", ACodec: "mp4a", FormatNote: "480p"},
		{FormatID: "a2", VCodec: "none", ACodec: "mp4a", ABR: 192},
		{FormatID: "v2", VCodec: "avc1", ACodec: "mp4a", FormatNote: "1080p"},
		{FormatID: "v3", VCodec: "avc1", ACodec: "mp4a", FormatNote: "720p"},
	})
	want := []string{"v2", "v3", "v1", "a2", "a1"}
	if len(catalog) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(catalog))
	}
	for i, id := range want {
		if catalog[i].FormatID != id {
			t.Fatalf("position %d: got %s, want %s", i, catalog[i].FormatID, id)
		}
	}
}

func TestUnparsableQualitySortsLast(t *testing.T) {
	catalog := shapeCatalog([]rawFormat{
		{FormatID: "vx", VCodec: "avc1", ACodec: "mp4a", FormatNote: "premium"},
		{FormatID: "v1", VCodec: "avc1", ACodec: "mp4a", FormatNote: "144p"},
	})
	if catalog[len(catalog)-1].FormatID != "vx" {
		t.Fatalf("expected unparsable label to sort last, got order %v", catalog)
	}
}

func TestEmptyAndFullyFilteredListsYieldEmptyCatalog(t *testing.T) {
	if got := shapeCatalog(nil); len(got) != 0 {
		t.Fatalf("expected empty catalog for nil input, got %d entries", len(got))
	}
	got := shapeCatalog([]rawFormat{{FormatID: "137", VCodec: "avc1", ACodec: "none"}})
	if len(got) != 0 {
		t.Fatalf("expected empty catalog when everything is filtered, got %d entries", len(got))
	}
}

func TestScenarioCatalogOrdering(t *testing.T) {
	catalog := shapeCatalog([]rawFormat{
		{FormatID: "v480", VCodec: "avc1", ACodec: "mp4a", FormatNote: "480p", Filesize: 50 << 20},
		{FormatID: "a128", VCodec: "none", ACodec: "mp4a", ABR: 128, Filesize: 5 << 20},
		{FormatID: "v720", VCodec: "avc1", ACodec: "mp4a", FormatNote: "720p", Filesize: 500 << 20},
	})
	want := []string{"v720", "v480", "a128"}
	for i, id := range want {
		if catalog[i].FormatID != id {
			t.Fatalf("position %d: got %s, want %s", i, catalog[i].FormatID, id)
		}
	}
}

func TestQualityValue(t *testing.T) {
	if v := qualityValue("1080p"); v != 1080 {
		t.Fatalf("1080p: got %d", v)
	}
	if v := qualityValue("128kbps"); v != 128 {
		t.Fatalf("128kbps: got %d", v)
	}
	if v := qualityValue("medium"); v != -1 {
		t.Fatalf("medium: got %d, want -1", v)
	}
	if v := qualityValue(""); v != -1 {
		t.Fatalf("empty: got %d, want -1", v)
	}
}
