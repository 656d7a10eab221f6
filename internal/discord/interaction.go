package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ErrInvalidPublicKey is returned for a malformed application public key.
var ErrInvalidPublicKey = errors.New("invalid discord public key")

// ParsePublicKey decodes the hex application public key shown in the
// developer portal.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return ed25519.PublicKey(raw), nil
}

// VerifyRequest checks the X-Signature-Ed25519 / X-Signature-Timestamp
// headers against the request body. The body stays readable afterwards.
func VerifyRequest(r *http.Request, key ed25519.PublicKey) bool {
	return discordgo.VerifyInteraction(r, key)
}

// ParseInteraction decodes an interaction payload.
func ParseInteraction(body []byte) (*discordgo.Interaction, error) {
	var i discordgo.Interaction
	if err := json.Unmarshal(body, &i); err != nil {
		return nil, fmt.Errorf("decode interaction: %w", err)
	}
	return &i, nil
}

// Command is the name and flattened options of a slash command invocation.
type Command struct {
	Name    string
	Options map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// CommandOf extracts the slash command from an application-command
// interaction. ok is false for any other interaction type.
func CommandOf(i *discordgo.Interaction) (cmd Command, ok bool) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return Command{}, false
	}
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return Command{}, false
	}

	cmd = Command{
		Name:    data.Name,
		Options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options)),
	}
	for _, opt := range data.Options {
		cmd.Options[opt.Name] = opt
	}
	return cmd, true
}

// StringOption returns a string option, stringifying numbers.
func (c Command) StringOption(name string) (string, bool) {
	opt, ok := c.Options[name]
	if !ok || opt.Value == nil {
		return "", false
	}
	switch v := opt.Value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// IntOption returns an integer option. String values are parsed; fractional
// numbers are rejected.
func (c Command) IntOption(name string) (int64, bool) {
	opt, ok := c.Options[name]
	if !ok || opt.Value == nil {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
