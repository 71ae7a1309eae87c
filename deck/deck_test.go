package deck

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"

	"wealthy-cats/entities"
)

func newTestManager(seed uint64) *Manager {
	return NewManager(Default(), rand.New(rand.NewSource(seed)), nil)
}

func TestDefaultDecks(t *testing.T) {
	cfg := Default()
	for _, id := range []string{MainDeck, OrderDeck, "wealthyLucky"} {
		found := false
		for _, d := range cfg.Decks {
			if d.DeckID == id {
				found = len(d.Cards) > 0
			}
		}
		if !found {
			t.Fatalf("expected non-empty deck %s", id)
		}
	}
	if len(cfg.GlobalRules.RoundStart) == 0 {
		t.Fatalf("expected a round start rule")
	}
	for _, d := range cfg.Decks {
		if d.DeckID != OrderDeck {
			continue
		}
		for _, c := range d.Cards {
			if c.Type != entities.CardTypeOrder || c.Effect.Op != entities.OpSellGoods {
				t.Fatalf("expected order card to sell goods, got %+v", c)
			}
		}
	}
}

func TestDrawReshufflesOnExhaustion(t *testing.T) {
	m := newTestManager(3)
	total := m.Remaining(OrderDeck)
	seen := map[string]int{}
	for i := 0; i < total; i++ {
		c := m.Draw(OrderDeck)
		if c == nil {
			t.Fatalf("expected a card at draw %d", i)
		}
		seen[c.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("card %s dealt %d times in one pass", id, n)
		}
	}
	if m.Remaining(OrderDeck) != 0 {
		t.Fatalf("expected deck to be empty")
	}
	if m.Draw(OrderDeck) == nil {
		t.Fatalf("expected reshuffled card")
	}
	if got := m.Remaining(OrderDeck); got != total-1 {
		t.Fatalf("expected %d remaining got %d", total-1, got)
	}
}

func TestDrawUnknownDeck(t *testing.T) {
	m := newTestManager(1)
	if m.Draw("nope") != nil {
		t.Fatalf("expected nil for unknown deck")
	}
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	a, b := newTestManager(9), newTestManager(9)
	for i := 0; i < 10; i++ {
		ca, cb := a.Draw(MainDeck), b.Draw(MainDeck)
		if ca.ID != cb.ID {
			t.Fatalf("draw %d: expected same card, got %s and %s", i, ca.ID, cb.ID)
		}
	}
}

func TestAllCardsIsACopy(t *testing.T) {
	m := newTestManager(1)
	cards := m.AllCards(OrderDeck)
	cards[0].Title = "changed"
	if m.AllCards(OrderDeck)[0].Title == "changed" {
		t.Fatalf("expected AllCards to return a copy")
	}
}

func TestResetRestoresDecks(t *testing.T) {
	m := newTestManager(1)
	full := m.Remaining(MainDeck)
	m.Draw(MainDeck)
	m.Draw(MainDeck)
	m.Reset()
	if m.Remaining(MainDeck) != full {
		t.Fatalf("expected %d cards after reset got %d", full, m.Remaining(MainDeck))
	}
}

func TestLoadRejectsMissingDeckID(t *testing.T) {
	if _, err := Load([]byte(`{"decks":{"x":{"cards":[]}}}`)); err == nil {
		t.Fatalf("expected error for deck without id")
	}
	if _, err := Load([]byte(`{`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.json")
	doc := `{"decks":{"only":{"deckId":"draw","cards":[{"id":"a","type":"INCOME","title":"A","effect":{"op":"CASH_DELTA","params":{"amount":2}}}]}},"globalRules":{"rounds":3}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewManager(cfg, rand.New(rand.NewSource(1)), nil)
	c := m.Draw(MainDeck)
	if c == nil || c.ID != "a" {
		t.Fatalf("expected card a got %+v", c)
	}
	if amt, _ := c.Effect.Params["amount"].(float64); amt != 2 {
		t.Fatalf("expected amount 2 got %v", c.Effect.Params["amount"])
	}
}
