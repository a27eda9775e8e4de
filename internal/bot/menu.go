package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/grabbit-dl/grabbit/internal/media"
	"github.com/grabbit-dl/grabbit/internal/observability"
	"github.com/grabbit-dl/grabbit/internal/token"
)

const (
	probeTimeout = 2 * time.Minute

	// Discord caps a message at 5 action rows of 5 buttons, and a
	// component custom ID at 100 characters.
	maxMenuButtons = 25
	buttonsPerRow  = 5
	customIDLimit  = 100
)

var linkDomains = []string{"youtube.com", "youtu.be"}

// isVideoURL reports whether text is a link on one of the recognized
// video domains.
func isVideoURL(text string) bool {
	u, err := url.Parse(text)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range linkDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// handleMessage is the Idle state: a recognized link starts the catalog
// workflow, anything else gets a rejection reply.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}

	if !isVideoURL(text) {
		s.ChannelMessageSend(m.ChannelID, "Please send a valid YouTube link.")
		return
	}

	go b.presentMenu(s, m.ChannelID, text)
}

// presentMenu builds the catalog and renders it as one button per
// encoding, each bound to its selection token. On failure or an empty
// catalog the conversation stays in Idle with an error reply.
func (b *Bot) presentMenu(s *discordgo.Session, channelID, sourceURL string) {
	s.ChannelMessageSend(channelID, "Fetching available formats, please wait…")

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	formats, err := b.catalog.BuildCatalog(ctx, sourceURL)
	if err != nil {
		observability.CatalogProbes.WithLabelValues("error").Inc()
		b.log.Error().Err(err).Str("url", sourceURL).Msg("catalog probe failed")
		s.ChannelMessageSend(channelID, "Could not fetch available qualities. Please check your link or try another video.")
		return
	}
	if len(formats) == 0 {
		observability.CatalogProbes.WithLabelValues("empty").Inc()
		s.ChannelMessageSend(channelID, "No downloadable formats found for this link.")
		return
	}
	observability.CatalogProbes.WithLabelValues("ok").Inc()

	rows, err := menuComponents(formats, sourceURL)
	if err != nil {
		b.log.Error().Err(err).Str("url", sourceURL).Msg("failed to build menu")
		s.ChannelMessageSend(channelID, "Could not build the format menu for this link.")
		return
	}

	if _, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    "Choose format and quality:",
		Components: rows,
	}); err != nil {
		b.log.Error().Err(err).Msg("failed to send menu")
	}
}

// menuComponents turns the catalog into button rows. Entries whose token
// would not fit in a custom ID are skipped; the catalog is truncated to
// the button cap, which after the quality sort drops only the worst
// encodings.
func menuComponents(formats []media.Format, sourceURL string) ([]discordgo.MessageComponent, error) {
	var buttons []discordgo.MessageComponent
	for _, f := range formats {
		tok := token.Selection{Track: f.Track, FormatID: f.FormatID, Size: f.Size, URL: sourceURL}
		id, err := tok.Encode()
		if err != nil {
			return nil, err
		}
		if len(id) > customIDLimit {
			continue
		}
		buttons = append(buttons, discordgo.Button{
			Label:    buttonLabel(f),
			Style:    discordgo.SecondaryButton,
			CustomID: id,
		})
		if len(buttons) == maxMenuButtons {
			break
		}
	}

	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(buttons))
		rows = append(rows, discordgo.ActionsRow{Components: buttons[start:end]})
	}
	return rows, nil
}

func buttonLabel(f media.Format) string {
	size := "?"
	if f.Size > 0 {
		size = fmt.Sprintf("%dMB", f.Size/(1024*1024))
	}
	return fmt.Sprintf("%s %s %s (%s)", trackLabel(f.Track), f.Quality, f.Ext, size)
}

func trackLabel(t media.TrackType) string {
	if t == media.TrackAudio {
		return "Audio"
	}
	return "Video"
}
