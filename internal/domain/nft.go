package domain

// NftRecord represents an indexed NFT.
// Corresponds to nft_metadata joined with user_roles. Read-only here.
type NftRecord struct {
	Name            string  // "<Collection> #<index>", unique per symbol
	Symbol          string  // collection symbol
	Mint            string  // mint address (unique)
	OwnerWallet     *string // current owner (nullable)
	OwnerDiscordID  *string // linked Discord user of owner (nullable)
	OwnerName       *string // linked Discord name of owner (nullable)
	OriginalLister  *string // wallet that listed the NFT into escrow (nullable)
	ListerDiscordID *string // linked Discord user of lister (nullable)
	ListerName      *string // linked Discord name of lister (nullable)
	IsListed        bool
	ListPrice       *float64 // SOL, set when listed
	LastSalePrice   *float64 // SOL (nullable)
	RarityRank      *int     // only for rarity-enabled collections
	ImageURL        *string  // absolute or site-relative
}

// GalleryImage is a name/image pair used by collection galleries.
type GalleryImage struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}
