package media

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	audioName    = "audio.mp3"
	videoName    = "video.mp4"
	audioQuality = "192K"
)

// Materializer downloads one chosen encoding into a local file with a
// fixed name and extension. Every call gets its own UUID work directory
// under TempDir so concurrent downloads cannot collide.
type Materializer struct {
	Ytdlp   string
	FFmpeg  string // ffmpeg location passed to yt-dlp, optional
	TempDir string
}

// Materialize fetches formatID of url. Audio is extracted and transcoded
// to mp3; video is fetched as-is and renamed to mp4 when the native
// container differs. The returned path always carries the fixed
// extension for its track type.
func (m *Materializer) Materialize(ctx context.Context, url, formatID string, track TrackType) (MaterializedFile, error) {
	workDir := filepath.Join(m.TempDir, uuid.New().String())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return MaterializedFile{}, &MaterializationError{FormatID: formatID, Err: err}
	}

	args := []string{
		"--no-playlist",
		"--no-warnings",
		"-f", formatID,
	}
	if m.FFmpeg != "" {
		args = append(args, "--ffmpeg-location", m.FFmpeg)
	}
	switch track {
	case TrackAudio:
		args = append(args,
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", audioQuality,
			"-o", filepath.Join(workDir, "audio.%(ext)s"),
		)
	case TrackVideo:
		args = append(args, "-o", filepath.Join(workDir, "video.%(ext)s"))
	default:
		os.RemoveAll(workDir)
		return MaterializedFile{}, &MaterializationError{FormatID: formatID, Err: errors.New("unknown track type " + string(track))}
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, m.Ytdlp, args...)
	if _, err := cmd.Output(); err != nil {
		os.RemoveAll(workDir)
		return MaterializedFile{}, &MaterializationError{FormatID: formatID, Err: ytdlpFailure(err)}
	}

	path, err := resolveOutput(workDir, track)
	if err != nil {
		os.RemoveAll(workDir)
		return MaterializedFile{}, &MaterializationError{FormatID: formatID, Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		os.RemoveAll(workDir)
		return MaterializedFile{}, &MaterializationError{FormatID: formatID, Err: err}
	}

	return MaterializedFile{Path: path, Track: track, Size: info.Size()}, nil
}

// resolveOutput locates the produced file and pins its extension: audio
// is already transcoded to .mp3 by yt-dlp's postprocessor, video keeps
// its native container and is renamed to .mp4 when that differs.
func resolveOutput(dir string, track TrackType) (string, error) {
	prefix, want := "video", videoName
	if track == TrackAudio {
		prefix, want = "audio", audioName
	}

	target := filepath.Join(dir, want)
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix+".") {
			continue
		}
		if strings.HasSuffix(name, ".part") || strings.Contains(name, ".part-Frag") {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), target); err != nil {
			return "", err
		}
		return target, nil
	}
	return "", errors.New("downloaded file not found")
}
