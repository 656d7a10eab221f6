package nftlookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"buxdao-core/internal/discord"
	"buxdao-core/internal/domain"
	"buxdao-core/internal/solana"
)

// Embed field names.
const (
	FieldOwner    = "👤 Owner"
	FieldStatus   = "🏷️ Status"
	FieldLastSale = "💰 Last Sale"
	FieldRarity   = "✨ Rarity Rank"
)

// Render converts a lookup result into a chat-message response. A result
// with Found == false renders the themed not-found message.
func (s *Service) Render(res *Result) *discordgo.InteractionResponse {
	if !res.Found || res.Record == nil {
		return discord.Message(s.notFoundEmbed(res))
	}
	return discord.Message(s.recordEmbed(res))
}

// RenderError converts a validation error into an error message.
func RenderError(err error) *discordgo.InteractionResponse {
	return discord.ErrorResponse("Error", err.Error())
}

func (s *Service) thumbnail(logo string) *discordgo.MessageEmbedThumbnail {
	return &discordgo.MessageEmbedThumbnail{URL: s.absoluteURL(logo)}
}

// absoluteURL prefixes site-relative paths with the site URL.
func (s *Service) absoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.siteURL + path
}

func (s *Service) notFoundEmbed(res *Result) *discordgo.MessageEmbed {
	c := res.Collection

	var description string
	if res.Mode == ModeRank {
		description = fmt.Sprintf("No NFT found with rank #%d in %s", res.Rank, c.Name)
	} else {
		description = "No NFT found: " + c.ItemName(res.Index)
	}

	return &discordgo.MessageEmbed{
		Title:       "NFT Not Found",
		Description: description,
		Color:       c.Color,
		Thumbnail:   s.thumbnail(c.Logo),
		Footer:      discord.Footer(),
	}
}

func (s *Service) recordEmbed(res *Result) *discordgo.MessageEmbed {
	c := res.Collection
	r := res.Record

	fields := []*discordgo.MessageEmbedField{
		{Name: FieldOwner, Value: OwnerDisplay(r), Inline: true},
		{Name: FieldStatus, Value: statusDisplay(r), Inline: true},
	}
	if r.LastSalePrice != nil && *r.LastSalePrice > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   FieldLastSale,
			Value:  solAmount(*r.LastSalePrice) + " SOL",
			Inline: true,
		})
	}
	if c.HasRarity && r.RarityRank != nil && *r.RarityRank > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   FieldRarity,
			Value:  "#" + strconv.Itoa(*r.RarityRank),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       r.Name,
		Description: marketplaceLinks(r.Mint),
		Color:       c.Color,
		Fields:      fields,
		Thumbnail:   s.thumbnail(c.Logo),
		Footer:      discord.Footer(),
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: s.absoluteURL(*r.ImageURL)}
	}
	return embed
}

func marketplaceLinks(mint string) string {
	return fmt.Sprintf(
		"[View on Magic Eden](https://magiceden.io/item-details/%s) • [View on Tensor](https://www.tensor.trade/item/%s)\n\n**Mint:** `%s`",
		mint, mint, mint,
	)
}

func solAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func statusDisplay(r *domain.NftRecord) string {
	if !r.IsListed {
		return "Not Listed"
	}
	var price float64
	if r.ListPrice != nil {
		price = *r.ListPrice
	}
	return "Listed for " + solAmount(price) + " SOL"
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

// OwnerDisplay renders who holds the NFT. A listed NFT sits in marketplace
// escrow, so the original lister is shown instead of the escrow account.
// Raw wallets are always masked.
func OwnerDisplay(r *domain.NftRecord) string {
	if r.IsListed && nonEmpty(r.OriginalLister) {
		switch {
		case nonEmpty(r.ListerDiscordID):
			return "<@" + *r.ListerDiscordID + ">"
		case nonEmpty(r.ListerName):
			return *r.ListerName
		default:
			return "`" + solana.MaskAddress(*r.OriginalLister) + "`"
		}
	}

	switch {
	case nonEmpty(r.OwnerDiscordID):
		return "<@" + *r.OwnerDiscordID + ">"
	case nonEmpty(r.OwnerName):
		return *r.OwnerName
	case nonEmpty(r.OwnerWallet):
		return "`" + solana.MaskAddress(*r.OwnerWallet) + "`"
	default:
		return "Unknown"
	}
}
