package entities

// Card effect operations.
const (
	OpMoveCash     = "MOVE_CASH"
	OpCashDelta    = "CASH_DELTA"
	OpAddGoods     = "ADD_GOODS"
	OpSellGoods    = "SELL_GOODS"
	OpDrawFromDeck = "DRAW_FROM_DECK"
)

// Card types with special flow handling.
const (
	CardTypeEntryFee = "ENTRY_FEE"
	CardTypeOrder    = "ORDER"
)

// UserInput marks a MOVE_CASH amount chosen by the player.
const UserInput = "USER_INPUT"

type CardEffect struct {
	Op     string                 `json:"op"`
	Params map[string]interface{} `json:"params"`
}

type CardData struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Mandatory bool       `json:"mandatory"`
	Affects   string     `json:"affects,omitempty"`
	Timing    string     `json:"timing,omitempty"`
	Effect    CardEffect `json:"effect"`
}

type DeckData struct {
	DeckID      string     `json:"deckId"`
	Description string     `json:"description"`
	Cards       []CardData `json:"cards"`
}

type GlobalRules struct {
	Rounds                 int          `json:"rounds"`
	CardsPerPlayerPerRound int          `json:"cardsPerPlayerPerRound"`
	StartingCash           int          `json:"startingCash"`
	RoundStart             []CardEffect `json:"roundStart"`
	EndOfRound             []CardEffect `json:"endOfRound"`
}

type DecksMeta struct {
	Game    string `json:"game"`
	Version string `json:"version"`
	Notes   string `json:"notes"`
}

type DecksConfig struct {
	Meta        DecksMeta           `json:"meta"`
	Decks       map[string]DeckData `json:"decks"`
	GlobalRules GlobalRules         `json:"globalRules"`
}
