package bot

import (
	"context"
	"io"

	"github.com/bwmarrin/discordgo"
)

// discordTransport adapts a discordgo session to the delivery router's
// transport surface. Discord has a single attachment primitive, so both
// track-type sends go through it.
type discordTransport struct {
	session *discordgo.Session
}

func (t *discordTransport) SendAudio(ctx context.Context, channelID, name string, r io.Reader) error {
	return t.sendFile(channelID, name, r)
}

func (t *discordTransport) SendVideo(ctx context.Context, channelID, name string, r io.Reader) error {
	return t.sendFile(channelID, name, r)
}

func (t *discordTransport) SendText(ctx context.Context, channelID, text string) error {
	_, err := t.session.ChannelMessageSend(channelID, text)
	return err
}

func (t *discordTransport) sendFile(channelID, name string, r io.Reader) error {
	_, err := t.session.ChannelFileSend(channelID, name, r)
	return err
}
