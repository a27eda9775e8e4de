// Package deliver routes a materialized file to the user: inline through
// the chat transport when it fits, uploaded to a file host and relayed
// as a link when it does not.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/grabbit-dl/grabbit/internal/media"
)

// Transport is the chat-side surface the router delivers through.
type Transport interface {
	SendAudio(ctx context.Context, channelID, name string, r io.Reader) error
	SendVideo(ctx context.Context, channelID, name string, r io.Reader) error
	SendText(ctx context.Context, channelID, text string) error
}

// Uploader pushes a local file to an external host and returns a
// retrieval URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Channel names the delivery path taken.
type Channel string

const (
	SentInline Channel = "inline"
	SentAsLink Channel = "link"
)

// Outcome reports how a file reached the user.
type Outcome struct {
	Channel Channel
	URL     string // set for SentAsLink
}

// DeliveryError reports a failed inline send or upload. It is a distinct
// failure class from materialization: by the time it occurs the file
// exists and the download itself succeeded.
type DeliveryError struct {
	Op     string // "send" or "upload"
	Status int    // HTTP status for upload failures, 0 otherwise
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("deliver: %s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("deliver: %s failed: %v", e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Router decides the delivery channel by measured file size.
type Router struct {
	Transport     Transport
	Uploader      Uploader
	Threshold     int64  // bytes; at or under goes inline
	RetentionNote string // human-readable expiry note for link delivery
	Log           zerolog.Logger
}

// Deliver sends the file to channelID and removes it from disk
// afterward, on every exit path. The size is measured on disk here; the
// catalog's pre-download estimate is not trusted.
func (r *Router) Deliver(ctx context.Context, file media.MaterializedFile, channelID string) (Outcome, error) {
	defer r.cleanup(file.Path)

	info, err := os.Stat(file.Path)
	if err != nil {
		return Outcome{}, &DeliveryError{Op: "send", Err: err}
	}

	if info.Size() <= r.Threshold {
		return r.sendInline(ctx, file, channelID)
	}
	return r.sendAsLink(ctx, file, channelID)
}

func (r *Router) sendInline(ctx context.Context, file media.MaterializedFile, channelID string) (Outcome, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return Outcome{}, &DeliveryError{Op: "send", Err: err}
	}
	defer f.Close()

	name := filepath.Base(file.Path)
	switch file.Track {
	case media.TrackAudio:
		err = r.Transport.SendAudio(ctx, channelID, name, f)
	case media.TrackVideo:
		err = r.Transport.SendVideo(ctx, channelID, name, f)
	default:
		err = errors.New("unknown track type " + string(file.Track))
	}
	if err != nil {
		return Outcome{}, &DeliveryError{Op: "send", Err: err}
	}
	return Outcome{Channel: SentInline}, nil
}

func (r *Router) sendAsLink(ctx context.Context, file media.MaterializedFile, channelID string) (Outcome, error) {
	url, err := r.Uploader.Upload(ctx, file.Path)
	if err != nil {
		var de *DeliveryError
		if errors.As(err, &de) {
			return Outcome{}, err
		}
		return Outcome{}, &DeliveryError{Op: "upload", Err: err}
	}

	msg := fmt.Sprintf("Your file is ready!\nDownload: %s\n(%s)", url, r.RetentionNote)
	if err := r.Transport.SendText(ctx, channelID, msg); err != nil {
		return Outcome{}, &DeliveryError{Op: "send", Err: err}
	}
	return Outcome{Channel: SentAsLink, URL: url}, nil
}

// cleanup removes the file and its per-request work directory. Failures
// are logged, never escalated: the primary outcome has already been
// decided by the time cleanup runs.
func (r *Router) cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.Log.Warn().Err(err).Str("path", path).Msg("failed to remove materialized file")
		return
	}
	// The parent is the request's UUID work dir, empty once the file is
	// gone. Remove refuses non-empty dirs, so this is safe to attempt.
	os.Remove(filepath.Dir(path))
}
