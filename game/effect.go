package game

import (
	"strconv"

	"go.uber.org/zap"

	"wealthy-cats/board"
	"wealthy-cats/config"
	"wealthy-cats/deck"
	"wealthy-cats/entities"
	"wealthy-cats/events"
	"wealthy-cats/utils"
)

// Prompter asks the active player for input an effect cannot decide alone.
// Each callback is invoked at most once, when the answer arrives.
type Prompter interface {
	PromptDeposit(p events.DepositPrompt, provide func(amount int))
	PromptProduction(p events.ProductionPrompt, provide func(slots, totalCost int))
	PromptOrder(p events.OrderPrompt, selected func(order entities.CardData))
	RequestSubDraw(deckID string, count int)
}

// Effects turns card effects into board operations.
type Effects struct {
	cfg    config.GameConfig
	decks  *deck.Manager
	prompt Prompter
	stat   func(stat string, amount int)
	log    *zap.Logger
}

func NewEffects(cfg config.GameConfig, decks *deck.Manager, prompt Prompter, stat func(string, int), log *zap.Logger) *Effects {
	if stat == nil {
		stat = func(string, int) {}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Effects{cfg: cfg, decks: decks, prompt: prompt, stat: stat, log: log}
}

type moveCashParams struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount interface{} `json:"amount"`
}

type cashDeltaParams struct {
	Amount int `json:"amount"`
}

type addGoodsParams struct {
	CostPerSet int `json:"costPerSet"`
	MaxSets    int `json:"maxSets"`
}

type sellGoodsParams struct {
	Quantity int `json:"quantity"`
	Payout   int `json:"payout"`
}

type drawParams struct {
	Deck  string `json:"deck"`
	Count int    `json:"count"`
}

// Execute applies card's effect to b. done reports whether a sub-draw or
// order selection took over the flow; it is always called exactly once,
// possibly before Execute returns.
func (e *Effects) Execute(b *board.Manager, card entities.CardData, done func(subDrawStarted bool)) {
	finish := func() { done(false) }
	params := card.Effect.Params

	switch card.Effect.Op {
	case entities.OpMoveCash:
		var p moveCashParams
		if !e.decode(card, &p) {
			finish()
			return
		}
		e.moveCash(b, card, p, finish)

	case entities.OpCashDelta:
		var p cashDeltaParams
		if !e.decode(card, &p) || p.Amount <= 0 {
			finish()
			return
		}
		b.Gain(entities.RoomCash, p.Amount, finish)
		e.stat(entities.StatReturns, p.Amount)

	case entities.OpAddGoods:
		var p addGoodsParams
		if !e.decode(card, &p) || p.CostPerSet <= 0 {
			finish()
			return
		}
		e.production(b, p, finish)

	case entities.OpSellGoods:
		var p sellGoodsParams
		if !e.decode(card, &p) {
			finish()
			return
		}
		b.Sell(p.Quantity, func() {
			b.Gain(entities.RoomCash, p.Payout, finish)
			e.stat(entities.StatSales, p.Payout)
		})

	case entities.OpDrawFromDeck:
		var p drawParams
		if !e.decode(card, &p) {
			finish()
			return
		}
		if p.Count <= 0 {
			p.Count = 1
		}
		if p.Deck == deck.OrderDeck {
			e.offerOrders(b, done)
			return
		}
		e.prompt.RequestSubDraw(p.Deck, p.Count)
		done(true)

	default:
		e.log.Info("🃏 effect not automated", zap.String("op", card.Effect.Op), zap.String("card", card.ID), zap.Any("params", params))
		finish()
	}
}

func (e *Effects) decode(card entities.CardData, out interface{}) bool {
	if err := utils.Decode(card.Effect.Params, out); err != nil {
		e.log.Warn("⚠️ bad effect params", zap.String("card", card.ID), zap.Error(err))
		return false
	}
	return true
}

func (e *Effects) moveCash(b *board.Manager, card entities.CardData, p moveCashParams, finish func()) {
	from, to := entities.ResolveRoom(p.From), entities.ResolveRoom(p.To)

	if s, ok := p.Amount.(string); ok && s == entities.UserInput {
		e.prompt.PromptDeposit(events.DepositPrompt{
			Title:     card.Title,
			From:      from,
			To:        to,
			MaxAmount: b.Balance(from),
		}, func(amount int) {
			b.MoveCash(from, to, amount, finish)
			switch to {
			case entities.RoomEmergency, entities.RoomInvestment:
				e.stat(entities.StatInvested, amount)
			case entities.RoomCandy:
				e.stat(entities.StatIndulgence, amount)
			}
		})
		return
	}

	amount := intParam(p.Amount)
	b.MoveCash(from, to, amount, finish)

	switch {
	case card.Type == entities.CardTypeEntryFee:
		e.stat(entities.StatFees, amount)
	case to == entities.RoomEmergency || to == entities.RoomInvestment:
		e.stat(entities.StatInvested, amount)
	case to == entities.RoomCandy:
		e.stat(entities.StatIndulgence, amount)
	case to == entities.RoomBasic:
		e.stat(entities.StatMaintenance, amount)
	}
}

func (e *Effects) production(b *board.Manager, p addGoodsParams, finish func()) {
	maxSlots := e.cfg.Production.MaxSlots
	e.prompt.PromptProduction(events.ProductionPrompt{
		CostPerSlot: p.CostPerSet,
		CurrentCash: b.Balance(entities.RoomCash),
		MaxSlots:    maxSlots,
	}, func(slots, totalCost int) {
		b.Produce(slots, totalCost, finish)
		e.stat(entities.StatProduction, totalCost)
	})
}

// offerOrders shows every order the stock can fill. One jar is two goods.
func (e *Effects) offerOrders(b *board.Manager, done func(bool)) {
	jars := b.Balance(entities.RoomGoods) / 2
	if jars <= 0 {
		e.log.Info("📦 no goods in stock for an order")
		done(false)
		return
	}
	var valid []entities.CardData
	for _, order := range e.decks.AllCards(deck.OrderDeck) {
		var p sellGoodsParams
		if err := utils.Decode(order.Effect.Params, &p); err != nil {
			continue
		}
		if p.Quantity <= jars {
			valid = append(valid, order)
		}
	}
	if len(valid) == 0 {
		e.log.Info("📦 no order fits the stock", zap.Int("jars", jars))
		done(false)
		return
	}
	e.prompt.PromptOrder(events.OrderPrompt{Jars: jars, Orders: valid}, func(order entities.CardData) {
		e.Execute(b, order, done)
	})
	done(true)
}

// intParam reads a numeric param that may arrive as a JSON number or string.
func intParam(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
