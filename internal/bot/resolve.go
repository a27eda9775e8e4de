package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/grabbit-dl/grabbit/internal/observability"
	"github.com/grabbit-dl/grabbit/internal/token"
	"github.com/grabbit-dl/grabbit/internal/util"
)

// handleSelection is the Resolved state: decode the token carried by the
// clicked button, acknowledge the click, then materialize and deliver.
// Each selection is independent; afterward the conversation is Idle
// again.
func (b *Bot) handleSelection(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sel, err := token.Decode(i.MessageComponentData().CustomID)
	if err != nil {
		b.log.Warn().Err(err).Msg("rejected selection token")
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "That selection can't be processed. Send the link again.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	// Acknowledge by replacing the menu with a progress note; the menu
	// buttons are gone from here on.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "Downloading your selection…",
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		b.log.Error().Err(err).Msg("failed to acknowledge selection")
		return
	}

	go b.resolve(s, i, sel)
}

func (b *Bot) resolve(s *discordgo.Session, i *discordgo.InteractionCreate, sel token.Selection) {
	start := time.Now()
	ctx := context.Background()

	file, err := b.mat.Materialize(ctx, sel.URL, sel.FormatID, sel.Track)
	if err != nil {
		observability.Downloads.WithLabelValues(string(sel.Track), "error").Inc()
		b.log.Error().Err(err).Str("format", sel.FormatID).Str("url", sel.URL).Msg("materialization failed")
		editProgress(s, i, "Download failed: "+util.ToUserError(err.Error()))
		return
	}
	observability.Downloads.WithLabelValues(string(sel.Track), "ok").Inc()
	observability.DownloadDuration.Observe(time.Since(start).Seconds())
	b.log.Info().Str("format", sel.FormatID).Int64("bytes", file.Size).
		Dur("took", time.Since(start)).Msg("materialized")

	if file.Size > b.router.Threshold {
		editProgress(s, i, "File too large to attach. Uploading to cloud…")
	} else {
		editProgress(s, i, "Uploading…")
	}

	outcome, err := b.router.Deliver(ctx, file, i.ChannelID)
	if err != nil {
		observability.Deliveries.WithLabelValues("failed").Inc()
		b.log.Error().Err(err).Msg("delivery failed")
		editProgress(s, i, "Could not deliver the file: "+util.ToUserError(err.Error()))
		return
	}
	observability.Deliveries.WithLabelValues(string(outcome.Channel)).Inc()

	// The file or link has landed in the channel; the progress note has
	// served its purpose.
	s.InteractionResponseDelete(i.Interaction)
}

func editProgress(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	})
}
