// Package deck loads card decks and deals from shuffled working copies.
package deck

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"wealthy-cats/entities"
)

// Deck IDs the game flow refers to directly.
const (
	MainDeck  = "draw"
	OrderDeck = "order"
)

//go:embed decks.json
var defaultDecks []byte

// Load parses a decks document.
func Load(data []byte) (entities.DecksConfig, error) {
	var cfg entities.DecksConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse decks: %w", err)
	}
	for key, d := range cfg.Decks {
		if d.DeckID == "" {
			return cfg, fmt.Errorf("deck %q has no deckId", key)
		}
	}
	return cfg, nil
}

func LoadFile(path string) (entities.DecksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.DecksConfig{}, fmt.Errorf("read decks: %w", err)
	}
	return Load(data)
}

// Default returns the decks bundled with the binary.
func Default() entities.DecksConfig {
	cfg, err := Load(defaultDecks)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Rand is satisfied by *rand.Rand from golang.org/x/exp.
type Rand interface {
	Intn(n int) int
}

// Manager deals cards. Each deck keeps a shuffled working copy that is
// rebuilt from the static list once it runs dry.
type Manager struct {
	config  entities.DecksConfig
	rng     Rand
	log     *zap.Logger
	byID    map[string]string
	working map[string][]entities.CardData
}

func NewManager(cfg entities.DecksConfig, rng Rand, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{config: cfg, rng: rng, log: log}
	m.Reset()
	return m
}

// Reset rebuilds and reshuffles every deck.
func (m *Manager) Reset() {
	m.byID = make(map[string]string, len(m.config.Decks))
	m.working = make(map[string][]entities.CardData, len(m.config.Decks))
	// Sorted so a seeded RNG always deals the same game.
	keys := make([]string, 0, len(m.config.Decks))
	for k := range m.config.Decks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		id := m.config.Decks[k].DeckID
		m.byID[id] = k
		m.refill(id)
	}
}

func (m *Manager) refill(deckID string) {
	cards := m.config.Decks[m.byID[deckID]].Cards
	working := make([]entities.CardData, len(cards))
	copy(working, cards)
	m.shuffle(working)
	m.working[deckID] = working
}

// shuffle is Fisher-Yates.
func (m *Manager) shuffle(cards []entities.CardData) {
	for i := len(cards) - 1; i > 0; i-- {
		j := m.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw takes the top card of deckID. It returns nil for unknown or empty
// decks.
func (m *Manager) Draw(deckID string) *entities.CardData {
	if _, ok := m.byID[deckID]; !ok {
		m.log.Warn("⚠️ draw from unknown deck", zap.String("deck", deckID))
		return nil
	}
	if len(m.working[deckID]) == 0 {
		m.log.Info("🔀 reshuffling deck", zap.String("deck", deckID))
		m.refill(deckID)
	}
	cards := m.working[deckID]
	if len(cards) == 0 {
		return nil
	}
	card := cards[len(cards)-1]
	m.working[deckID] = cards[:len(cards)-1]
	return &card
}

// AllCards returns the cards still waiting in deckID.
func (m *Manager) AllCards(deckID string) []entities.CardData {
	cards := m.working[deckID]
	out := make([]entities.CardData, len(cards))
	copy(out, cards)
	return out
}

// Remaining returns how many cards are left before a reshuffle.
func (m *Manager) Remaining(deckID string) int {
	return len(m.working[deckID])
}

func (m *Manager) GlobalRules() entities.GlobalRules {
	return m.config.GlobalRules
}

// DeckIDs lists every known deck.
func (m *Manager) DeckIDs() []string {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
