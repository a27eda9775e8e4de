package util

import "strings"

// ToUserError condenses an engine or upload failure into a short message
// safe to show in chat. Unrecognized failures collapse to a generic one.
func ToUserError(message string) string {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "video unavailable") || strings.Contains(msg, "private video") || strings.Contains(msg, "this content is private") {
		return "This video is unavailable or has been removed"
	}
	if strings.Contains(msg, "age-restricted") || strings.Contains(msg, "age restricted") || strings.Contains(msg, "confirm your age") {
		return "This video is age-restricted"
	}
	if strings.Contains(msg, "sign in to confirm") || strings.Contains(msg, "sign in to verify") {
		return "YouTube is blocking this request, try again later"
	}
	if strings.Contains(msg, "live stream") {
		return "Live streams can't be downloaded"
	}
	if strings.Contains(msg, "geo restricted") || strings.Contains(msg, "geo-restricted") || strings.Contains(msg, "not available in your country") {
		return "This video isn't available in the server's region"
	}
	if strings.Contains(msg, "members only") || strings.Contains(msg, "members-only") {
		return "This is a members-only video"
	}
	if strings.Contains(msg, "http error 403") || strings.Contains(msg, "403 forbidden") {
		return "Access denied, the site is blocking downloads"
	}
	if strings.Contains(msg, "http error 404") || strings.Contains(msg, "404 not found") {
		return "Video not found, it may have been deleted"
	}
	if strings.Contains(msg, "unsupported url") {
		return "This website isn't supported"
	}
	if strings.Contains(msg, "requested format not available") || strings.Contains(msg, "no video formats") {
		return "That format is no longer available, fetch the menu again"
	}
	if strings.Contains(msg, "timed out") || strings.Contains(msg, "timeout") {
		return "Connection timed out, try again"
	}
	if strings.Contains(msg, "connection reset") || (strings.Contains(msg, "connection") && !strings.Contains(msg, "connected")) {
		return "Connection dropped, try again"
	}
	if strings.Contains(msg, "failed with status") {
		return "The file host rejected the upload, try again later"
	}
	return "Download failed"
}
