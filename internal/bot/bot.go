// Package bot wires the Discord transport to the catalog, materializer
// and delivery router. The conversation is stateless across turns: the
// only state between "menu shown" and "button clicked" rides inside the
// button's custom ID as an encoded selection token.
package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/grabbit-dl/grabbit/internal/config"
	"github.com/grabbit-dl/grabbit/internal/deliver"
	"github.com/grabbit-dl/grabbit/internal/media"
	"github.com/grabbit-dl/grabbit/internal/util"
)

const greeting = "Send me a YouTube link and I'll help you download it as audio or video in your preferred quality!"

type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
	catalog *media.CatalogBuilder
	mat     *media.Materializer
	router  *deliver.Router
	cmdIDs  []string
	log     zerolog.Logger
}

func New(cfg *config.Config, uploader deliver.Uploader) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		session: s,
		cfg:     cfg,
		catalog: &media.CatalogBuilder{Ytdlp: cfg.Media.YtdlpPath},
		mat: &media.Materializer{
			Ytdlp:   cfg.Media.YtdlpPath,
			FFmpeg:  cfg.Media.FFmpegPath,
			TempDir: cfg.Media.TempDir,
		},
		log: util.GetLogger("bot"),
	}
	b.router = &deliver.Router{
		Transport:     &discordTransport{session: s},
		Uploader:      uploader,
		Threshold:     cfg.Delivery.Threshold(),
		RetentionNote: cfg.Delivery.RetentionNote,
		Log:           util.GetLogger("deliver"),
	}

	s.AddHandler(b.handleMessage)
	s.AddHandler(b.handleInteraction)
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	b.log.Info().Str("user", b.session.State.User.Username).Msg("logged in")

	for _, cmd := range b.commandDefinitions() {
		created, err := b.session.ApplicationCommandCreate(b.cfg.Discord.AppID, "", cmd)
		if err != nil {
			b.log.Error().Err(err).Str("command", cmd.Name).Msg("failed to register command")
			continue
		}
		b.cmdIDs = append(b.cmdIDs, created.ID)
		b.log.Info().Str("command", created.Name).Msg("registered command")
	}
	return nil
}

func (b *Bot) Stop() {
	for _, id := range b.cmdIDs {
		b.session.ApplicationCommandDelete(b.cfg.Discord.AppID, "", id)
	}
	b.session.Close()
}

// Ready reports whether the gateway session is established. Used by the
// status server's health endpoint.
func (b *Bot) Ready() bool {
	return b.session.State != nil && b.session.State.User != nil
}

func (b *Bot) commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "start",
			Description: "How to use the bot",
			IntegrationTypes: &[]discordgo.ApplicationIntegrationType{
				discordgo.ApplicationIntegrationGuildInstall,
				discordgo.ApplicationIntegrationUserInstall,
			},
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
				discordgo.InteractionContextBotDM,
				discordgo.InteractionContextPrivateChannel,
			},
		},
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "start" {
			s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{Content: greeting},
			})
		}
	case discordgo.InteractionMessageComponent:
		b.handleSelection(s, i)
	}
}
