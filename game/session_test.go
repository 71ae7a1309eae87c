package game

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"wealthy-cats/config"
	"wealthy-cats/deck"
	"wealthy-cats/entities"
	"wealthy-cats/events"
)

func card(id, op string, mandatory bool, params map[string]interface{}) entities.CardData {
	return entities.CardData{ID: id, Type: "TEST", Title: id, Mandatory: mandatory,
		Effect: entities.CardEffect{Op: op, Params: params}}
}

func testDecks(main ...entities.CardData) entities.DecksConfig {
	base := deck.Default()
	decks := map[string]entities.DeckData{}
	for k, d := range base.Decks {
		if d.DeckID != deck.MainDeck {
			decks[k] = d
		}
	}
	decks["main"] = entities.DeckData{DeckID: deck.MainDeck, Cards: main}
	return entities.DecksConfig{Decks: decks, GlobalRules: base.GlobalRules}
}

type harness struct {
	s      *Session
	events *events.Buffer
	over   []events.GameOver
}

func newHarness(t *testing.T, decks entities.DecksConfig) *harness {
	t.Helper()
	h := &harness{events: &events.Buffer{}}
	h.s = NewSession(Options{
		Game:       config.DefaultGame(),
		Decks:      decks,
		Rand:       rand.New(rand.NewSource(11)),
		Sink:       h.events,
		OnGameOver: func(r events.GameOver) { h.over = append(h.over, r) },
	})
	h.s.Start()
	h.settle(t)
	return h
}

func (h *harness) settle(t *testing.T) {
	t.Helper()
	for i := 0; h.s.Busy(); i++ {
		if i > 100000 {
			t.Fatalf("session never settled, state %s", h.s.State())
		}
		h.s.Update(16)
	}
}

func (h *harness) must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.settle(t)
}

// payEntryFee confirms the stage fee shown at the start of a stage.
func (h *harness) payEntryFee(t *testing.T) {
	t.Helper()
	c := h.s.Card()
	if h.s.State() != StateCardShown || c == nil || c.Type != entities.CardTypeEntryFee {
		t.Fatalf("expected entry fee on screen, state %s card %+v", h.s.State(), c)
	}
	h.must(t, h.s.Confirm())
}

func (h *harness) cash(player int, room string) int {
	return h.s.Players()[player].Board.Balance(room)
}

var gain1 = card("gain1", entities.OpCashDelta, false, map[string]interface{}{"amount": float64(1)})

func TestStartDealsCashAndShowsEntryFee(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	for i := range h.s.Players() {
		if got := h.cash(i, entities.RoomCash); got != 30 {
			t.Fatalf("player %d: expected cash 30 got %d", i, got)
		}
	}
	c := h.s.Card()
	if h.s.State() != StateCardShown || c == nil || c.Type != entities.CardTypeEntryFee || !c.Mandatory {
		t.Fatalf("expected mandatory entry fee, got state %s card %+v", h.s.State(), c)
	}
	if c.Title != "Stage 1: Entry Fee" {
		t.Fatalf("unexpected title %q", c.Title)
	}
	if err := h.s.Skip(); !errors.Is(err, ErrMandatory) {
		t.Fatalf("expected ErrMandatory got %v", err)
	}
	if err := h.s.Draw(); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected ErrNotIdle got %v", err)
	}
}

func TestEntryFeeReturnsToIdle(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)

	if h.s.State() != StateIdle {
		t.Fatalf("expected IDLE got %s", h.s.State())
	}
	if h.s.CurrentPlayer().ID != 1 {
		t.Fatalf("expected player 1 to keep the turn")
	}
	if got := h.cash(0, entities.RoomCash); got != 27 {
		t.Fatalf("expected cash 27 got %d", got)
	}
	if got := h.cash(0, entities.RoomDemon); got != 3 {
		t.Fatalf("expected demon 3 got %d", got)
	}
	if got := h.s.Players()[0].Stats.Fees; got != 3 {
		t.Fatalf("expected fees 3 got %d", got)
	}
}

func TestConfirmSwitchesTurn(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)

	h.must(t, h.s.Draw())
	if h.s.State() != StateCardShown || h.s.CurrentPlayer().CurrentRound != 1 {
		t.Fatalf("expected card shown in round 1, got %s round %d", h.s.State(), h.s.CurrentPlayer().CurrentRound)
	}
	h.must(t, h.s.Confirm())

	if got := h.cash(0, entities.RoomCash); got != 28 {
		t.Fatalf("expected cash 28 got %d", got)
	}
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected player 2 to have the turn")
	}
	// Player 2 opens with their own stage fee.
	if c := h.s.Card(); c == nil || c.Type != entities.CardTypeEntryFee {
		t.Fatalf("expected entry fee for player 2, got %+v", c)
	}
	switches := h.events.OfType(events.TurnSwitched)
	if len(switches) != 1 {
		t.Fatalf("expected one turn switch got %d", len(switches))
	}
	if ts := switches[0].Data.(events.TurnSwitch); ts.From != 0 || ts.To != 1 || ts.Direction != -1 {
		t.Fatalf("unexpected switch %+v", ts)
	}
	if off := h.s.Players()[0].Board.Offset(); off != -1920 {
		t.Fatalf("expected player 1 board off screen at -1920 got %v", off)
	}
	if off := h.s.Players()[1].Board.Offset(); off != 0 {
		t.Fatalf("expected player 2 board on screen got %v", off)
	}
}

func TestSkipOptionalCard(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)
	h.must(t, h.s.Draw())
	h.must(t, h.s.Skip())

	if got := h.cash(0, entities.RoomCash); got != 27 {
		t.Fatalf("expected skipped card to leave cash at 27, got %d", got)
	}
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected turn to pass")
	}
}

func TestConfirmWithoutCard(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)
	if err := h.s.Confirm(); !errors.Is(err, ErrNoCard) {
		t.Fatalf("expected ErrNoCard got %v", err)
	}
	if err := h.s.Skip(); !errors.Is(err, ErrNoCard) {
		t.Fatalf("expected ErrNoCard got %v", err)
	}
}

func TestDepositPrompt(t *testing.T) {
	save := card("save", entities.OpMoveCash, false, map[string]interface{}{
		"from": "cash", "to": "emergency", "amount": entities.UserInput,
	})
	h := newHarness(t, testDecks(save))
	h.payEntryFee(t)
	if err := h.s.ProvideDeposit(5); !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("expected ErrNoPrompt got %v", err)
	}

	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())
	prompts := h.events.OfType(events.ShowDepositPanel)
	if len(prompts) != 1 {
		t.Fatalf("expected deposit panel")
	}
	if p := prompts[0].Data.(events.DepositPrompt); p.MaxAmount != 27 {
		t.Fatalf("expected max 27 got %d", p.MaxAmount)
	}
	if snap := h.s.Snapshot(); snap.Prompt == nil || snap.Prompt.Kind != "deposit" {
		t.Fatalf("expected deposit prompt in snapshot, got %+v", snap.Prompt)
	}
	if err := h.s.ProvideProduction(1); !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("expected ErrNoPrompt for wrong prompt got %v", err)
	}

	h.must(t, h.s.ProvideDeposit(100))
	if got := h.cash(0, entities.RoomEmergency); got != 27 {
		t.Fatalf("expected deposit clamped to 27, got %d", got)
	}
	if got := h.s.Players()[0].Stats.Invested; got != 27 {
		t.Fatalf("expected invested 27 got %d", got)
	}
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected turn to pass after deposit")
	}
}

func TestProductionPrompt(t *testing.T) {
	produce := card("produce", entities.OpAddGoods, false, map[string]interface{}{
		"costPerSet": float64(2), "maxSets": float64(3),
	})
	h := newHarness(t, testDecks(produce))
	h.payEntryFee(t)
	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())

	h.must(t, h.s.ProvideProduction(9))
	if got := h.cash(0, entities.RoomGoods); got != 6 {
		t.Fatalf("expected slots clamped to 3 (goods 6), got %d", got)
	}
	if got := h.cash(0, entities.RoomCash); got != 21 {
		t.Fatalf("expected cash 21 got %d", got)
	}
	if got := h.s.Players()[0].Stats.Production; got != 6 {
		t.Fatalf("expected production 6 got %d", got)
	}
}

func TestOrderSelection(t *testing.T) {
	market := card("market", entities.OpDrawFromDeck, false, map[string]interface{}{"deck": "order", "count": float64(1)})
	h := newHarness(t, testDecks(market))
	h.payEntryFee(t)
	p := h.s.Players()[0]
	for i := 0; i < 4; i++ {
		p.Board.Spawn(entities.RoomGoods, 1)
	}

	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())

	offers := h.events.OfType(events.ShowOrderSelection)
	if len(offers) != 1 {
		t.Fatalf("expected order selection")
	}
	offer := offers[0].Data.(events.OrderPrompt)
	if offer.Jars != 2 {
		t.Fatalf("expected 2 jars got %d", offer.Jars)
	}
	var pick entities.CardData
	for _, o := range offer.Orders {
		if q := intParam(o.Effect.Params["quantity"]); q > 2 {
			t.Fatalf("offered order %s needs %d jars", o.ID, q)
		}
		if o.ID == "o01" {
			pick = o
		}
	}
	if pick.ID == "" {
		t.Fatalf("expected order o01 on offer, got %+v", offer.Orders)
	}
	if err := h.s.SelectOrder("nope"); !errors.Is(err, ErrUnknownOrder) {
		t.Fatalf("expected ErrUnknownOrder got %v", err)
	}

	h.must(t, h.s.SelectOrder(pick.ID))
	if got := h.cash(0, entities.RoomActive); got != 2 {
		t.Fatalf("expected 2 goods shipped got %d", got)
	}
	if got := h.cash(0, entities.RoomCash); got != 31 {
		t.Fatalf("expected payout to bring cash to 31, got %d", got)
	}
	if got := p.Stats.Sales; got != 4 {
		t.Fatalf("expected sales 4 got %d", got)
	}
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected turn to pass after order")
	}
}

func TestOrderWithoutStockPassesTurn(t *testing.T) {
	market := card("market", entities.OpDrawFromDeck, false, map[string]interface{}{"deck": "order"})
	h := newHarness(t, testDecks(market))
	h.payEntryFee(t)
	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())
	if len(h.events.OfType(events.ShowOrderSelection)) != 0 {
		t.Fatalf("expected no order selection without stock")
	}
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected turn to pass")
	}
}

func TestSubDrawFromLuckyDeck(t *testing.T) {
	lucky := card("lucky", entities.OpDrawFromDeck, true, map[string]interface{}{"deck": "wealthyLucky", "count": float64(1)})
	h := newHarness(t, testDecks(lucky))
	h.payEntryFee(t)
	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())

	if h.s.State() != StateCardShown {
		t.Fatalf("expected sub-draw card, got %s", h.s.State())
	}
	if snap := h.s.Snapshot(); !snap.IsSubDraw {
		t.Fatalf("expected sub-draw flag")
	}
	if got := h.s.CurrentPlayer().CurrentRound; got != 1 {
		t.Fatalf("expected sub-draw not to count as a round, got %d", got)
	}
	h.must(t, h.s.Confirm())
	if h.s.CurrentPlayer().ID != 2 {
		t.Fatalf("expected turn to pass after sub-draw")
	}
}

func TestStageReturnsPayInterest(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)
	p := h.s.Players()[0]
	p.Board.Spawn(entities.RoomEmergency, 10)
	p.Board.Spawn(entities.RoomInvestment, 10)

	for i := 0; i < 500 && p.CurrentStage == 1; i++ {
		switch h.s.State() {
		case StateCardShown:
			h.must(t, h.s.Confirm())
		case StateIdle:
			h.must(t, h.s.Draw())
		}
	}
	if p.CurrentStage != 2 {
		t.Fatalf("expected player 1 to reach stage 2")
	}
	if got := p.Board.Balance(entities.RoomEmergency) + p.Board.Balance(entities.RoomInvestment); got != 0 {
		t.Fatalf("expected savings emptied, %d left", got)
	}
	// 27 after fee, +3 from cards, +20 savings, +1 and +2 interest.
	if got := p.Board.Balance(entities.RoomCash); got != 53 {
		t.Fatalf("expected cash 53 got %d", got)
	}
	if got := p.Stats.Returns; got != 6 {
		t.Fatalf("expected returns 6 got %d", got)
	}
}

func playToEnd(t *testing.T, h *harness) {
	t.Helper()
	for i := 0; i < 1000 && !h.s.Over(); i++ {
		switch h.s.State() {
		case StateCardShown:
			h.must(t, h.s.Confirm())
		case StateIdle:
			h.must(t, h.s.Draw())
		default:
			h.settle(t)
		}
	}
	h.settle(t)
}

func TestFullGameEndsInDraw(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	playToEnd(t, h)

	if !h.s.Over() {
		t.Fatalf("expected game over")
	}
	if len(h.over) != 1 {
		t.Fatalf("expected one game over callback got %d", len(h.over))
	}
	r := h.over[0]
	if !r.Draw || r.Text != "IT'S A DRAW!" {
		t.Fatalf("expected a draw, got %+v", r)
	}
	for _, pr := range r.Players {
		if pr.FinalCash != 30 {
			t.Fatalf("%s: expected final wealth 30 got %d", pr.Name, pr.FinalCash)
		}
		if pr.Stats.Fees != 6 || pr.Stats.Returns != 6 {
			t.Fatalf("%s: unexpected stats %+v", pr.Name, pr.Stats)
		}
	}
	if len(h.events.OfType(events.ShowGameOver)) != 1 {
		t.Fatalf("expected show-gameover event")
	}
	if err := h.s.Draw(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver got %v", err)
	}
}

func TestGameOverPicksRichestPlayer(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.s.Players()[1].Board.Spawn(entities.RoomInvestment, 5)
	playToEnd(t, h)

	r := h.s.Result()
	if r == nil || r.Draw || r.Winner != "Player 2" || r.Text != "Player 2 WINS!" {
		t.Fatalf("expected Player 2 to win, got %+v", r)
	}
}

func TestRestart(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)
	h.must(t, h.s.Draw())
	h.must(t, h.s.Confirm())

	h.s.Restart()
	h.settle(t)
	if h.s.CurrentPlayer().ID != 1 || h.s.State() != StateCardShown {
		t.Fatalf("expected fresh game on player 1, got player %d state %s", h.s.CurrentPlayer().ID, h.s.State())
	}
	for i, p := range h.s.Players() {
		if got := p.Board.Balance(entities.RoomCash); got != 30 {
			t.Fatalf("player %d: expected cash 30 got %d", i, got)
		}
		if p.Stats.Fees != 0 || p.CurrentRound != 0 {
			t.Fatalf("player %d: expected clean stats", i)
		}
	}
}

func TestEventSequenceIsMonotonic(t *testing.T) {
	h := newHarness(t, testDecks(gain1))
	h.payEntryFee(t)
	var last uint64
	for _, e := range h.events.Events() {
		if e.Seq != last+1 {
			t.Fatalf("expected seq %d got %d", last+1, e.Seq)
		}
		last = e.Seq
	}
	if h.s.Snapshot().Seq != last {
		t.Fatalf("expected snapshot seq %d", last)
	}
}
