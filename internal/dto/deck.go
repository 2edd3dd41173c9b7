package dto

// CreateDeckParams params for createDeck.
type CreateDeckParams struct {
	Deck string `json:"deck" binding:"required"`
}

// DeleteDecksParams params for deleteDecks. Cards and notes inside the
// decks are only removed when CardsToo is set.
type DeleteDecksParams struct {
	Decks    []string `json:"decks" binding:"required"`
	CardsToo bool     `json:"cardsToo"`
}

// ChangeDeckParams params for changeDeck.
type ChangeDeckParams struct {
	Cards []int64 `json:"cards" binding:"required"`
	Deck  string  `json:"deck" binding:"required"`
}

// GetDeckStatsParams params for getDeckStats.
type GetDeckStatsParams struct {
	Decks []string `json:"decks" binding:"required"`
}

// DeckStatsResult per-deck counters keyed by deck ID in the reply map.
type DeckStatsResult struct {
	DeckID      int64  `json:"deck_id"`
	Name        string `json:"name"`
	NewCount    int64  `json:"new_count"`
	DueCount    int64  `json:"due_count"`
	TotalInDeck int64  `json:"total_in_deck"`
}
