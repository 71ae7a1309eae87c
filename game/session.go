package game

import (
	"fmt"

	"go.uber.org/zap"

	"wealthy-cats/anim"
	"wealthy-cats/board"
	"wealthy-cats/config"
	"wealthy-cats/deck"
	"wealthy-cats/entities"
	"wealthy-cats/events"
	"wealthy-cats/utils"
)

// Rand covers what the board and decks draw on. *rand.Rand from
// golang.org/x/exp satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type Player struct {
	ID           int
	Name         string
	Board        *board.Manager
	CurrentRound int
	CurrentStage int
	Stats        entities.PlayerStats
}

// Wealth is what counts at the end: cash plus both savings rooms.
func (p *Player) Wealth() int {
	return p.Board.Balance(entities.RoomCash) +
		p.Board.Balance(entities.RoomEmergency) +
		p.Board.Balance(entities.RoomInvestment)
}

type promptKind int

const (
	promptNone promptKind = iota
	promptDeposit
	promptProduction
	promptOrder
)

func (k promptKind) String() string {
	switch k {
	case promptDeposit:
		return "deposit"
	case promptProduction:
		return "production"
	case promptOrder:
		return "order"
	default:
		return ""
	}
}

type pendingPrompt struct {
	kind       promptKind
	deposit    events.DepositPrompt
	production events.ProductionPrompt
	order      events.OrderPrompt
	onDeposit  func(int)
	onProduce  func(slots, totalCost int)
	onOrder    func(entities.CardData)
}

// Options configure a new Session.
type Options struct {
	Game  config.GameConfig
	Decks entities.DecksConfig
	Rand  Rand
	Sink  events.Sink
	Log   *zap.Logger
	// OnGameOver runs once when the final result is shown.
	OnGameOver func(events.GameOver)
}

// Session is one match. It is driven by Update and commands from a single
// goroutine and is not safe for concurrent use.
type Session struct {
	opts    Options
	cfg     config.GameConfig
	log     *zap.Logger
	tl      *anim.Timeline
	decks   *deck.Manager
	effects *Effects

	players []*Player
	current int
	state   State
	card    *entities.CardData
	subDraw bool
	prompt  pendingPrompt
	started bool
	over    bool
	result  *events.GameOver

	seq    uint64
	coinID int
}

func NewSession(opts Options) *Session {
	if opts.Sink == nil {
		opts.Sink = events.Discard
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	s := &Session{
		opts: opts,
		cfg:  opts.Game,
		log:  opts.Log,
		tl:   anim.NewTimeline(),
	}
	s.decks = deck.NewManager(opts.Decks, opts.Rand, opts.Log)
	s.effects = NewEffects(s.cfg, s.decks, s, func(stat string, amount int) {
		s.currentPlayer().Stats.Add(stat, amount)
	}, opts.Log)
	s.setupPlayers()
	return s
}

func (s *Session) setupPlayers() {
	s.players = nil
	starting := 0
	for _, v := range s.cfg.Gameplay.InitialCash {
		starting += v
	}
	for i := 0; i < s.cfg.Gameplay.TotalPlayers; i++ {
		idx := i
		p := &Player{
			ID:           i + 1,
			Name:         fmt.Sprintf("Player %d", i+1),
			CurrentStage: 1,
			Stats:        entities.PlayerStats{StartingCash: starting},
		}
		p.Board = board.NewManager(board.Deps{
			Config:   s.cfg,
			Timeline: s.tl,
			Rand:     s.opts.Rand,
			Emit:     func(t events.Type, data interface{}) { s.emitFor(idx, t, data) },
			NextID:   s.nextCoinID,
			Log:      s.log.With(zap.Int("player", idx)),
		})
		if i > 0 {
			p.Board.SetOffset(s.cfg.Visuals.BoardWidth)
		}
		s.players = append(s.players, p)
	}
}

func (s *Session) nextCoinID() int {
	s.coinID++
	return s.coinID
}

func (s *Session) emit(t events.Type, data interface{}) {
	s.emitFor(s.current, t, data)
}

func (s *Session) emitFor(player int, t events.Type, data interface{}) {
	s.seq++
	s.opts.Sink.Emit(events.Event{Seq: s.seq, Type: t, Player: player, Data: data})
}

func (s *Session) currentPlayer() *Player {
	return s.players[s.current]
}

// Start deals the opening cash to every player and opens the first stage.
// Calling it twice has no effect.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.state = StateAnimating
	delay := s.cfg.InitialSetup.SpawnDelay
	for _, p := range s.players {
		p := p
		for i, v := range s.cfg.Gameplay.InitialCash {
			v := v
			s.tl.After(float32(i*delay), func() { p.Board.Spawn(entities.RoomCash, v) })
		}
	}
	s.tl.After(float32(s.cfg.Visuals.TransitionDuration), func() { s.emitHUD(s.currentPlayer()) })
	s.tl.After(float32(s.cfg.InitialSetup.InitialDelay), s.triggerStageStart)
	s.log.Info("🎮 game started", zap.Int("players", len(s.players)))
}

// Update advances animations and timers by dt milliseconds.
func (s *Session) Update(dt float32) {
	s.tl.Update(dt)
}

// Busy reports whether anything is still animating or scheduled.
func (s *Session) Busy() bool {
	return s.tl.Busy()
}

func (s *Session) State() State { return s.state }

func (s *Session) Over() bool { return s.over }

func (s *Session) Result() *events.GameOver { return s.result }

func (s *Session) CurrentPlayer() *Player { return s.currentPlayer() }

func (s *Session) Players() []*Player { return s.players }

// Card returns the card on screen or being resolved.
func (s *Session) Card() *entities.CardData { return s.card }

// Draw takes the next card from the main deck for the active player.
func (s *Session) Draw() error {
	if s.over {
		return ErrGameOver
	}
	if s.state != StateIdle {
		return ErrNotIdle
	}
	s.drawSequence(deck.MainDeck)
	return nil
}

func (s *Session) drawSequence(deckID string) {
	isMain := deckID == deck.MainDeck
	if isMain && s.state != StateIdle {
		return
	}
	card := s.decks.Draw(deckID)
	if card == nil {
		if !isMain {
			// Nothing to show; hand the turn on rather than hang.
			s.switchTurn()
		}
		return
	}
	p := s.currentPlayer()
	s.subDraw = !isMain
	if isMain {
		p.CurrentRound++
		s.emitHUD(p)
	}
	s.showCard(card)
}

func (s *Session) showCard(card *entities.CardData) {
	s.card = card
	s.state = StateCardShown
	s.emit(events.ShowCardOverlay, events.CardOverlay{Card: *card, IsSubDraw: s.subDraw})
}

// Confirm resolves the card on screen.
func (s *Session) Confirm() error {
	if s.over {
		return ErrGameOver
	}
	if s.state != StateCardShown || s.card == nil {
		return ErrNoCard
	}
	p := s.currentPlayer()
	card := *s.card
	s.state = StateAnimating
	s.emit(events.DismissCardOverlay, nil)
	s.tl.After(float32(s.cfg.Visuals.OverlayFadeDuration), func() {
		s.effects.Execute(p.Board, card, s.finalize)
	})
	return nil
}

// finalize runs once a confirmed card's effect has played out.
func (s *Session) finalize(subDrawStarted bool) {
	if subDrawStarted {
		return
	}
	s.emitHUD(s.currentPlayer())
	isEntryFee := s.card != nil && s.card.Type == entities.CardTypeEntryFee
	if s.subDraw && isEntryFee {
		s.state = StateIdle
		s.subDraw = false
		return
	}
	s.switchTurn()
}

// Skip dismisses an optional card without applying it.
func (s *Session) Skip() error {
	if s.over {
		return ErrGameOver
	}
	if s.state != StateCardShown || s.card == nil {
		return ErrNoCard
	}
	if s.card.Mandatory {
		return ErrMandatory
	}
	isEntryFee := s.card.Type == entities.CardTypeEntryFee
	s.state = StateAnimating
	s.emit(events.DismissCardOverlay, nil)
	s.tl.After(float32(s.cfg.Visuals.OverlayFadeDuration), func() {
		if s.subDraw && isEntryFee {
			s.state = StateIdle
			s.subDraw = false
			return
		}
		s.switchTurn()
		s.subDraw = false
	})
	return nil
}

func (s *Session) switchTurn() {
	s.state = StateAnimating
	s.tl.After(float32(s.cfg.Visuals.TurnDelay), func() {
		old := s.currentPlayer()
		if old.CurrentRound < s.cfg.Gameplay.RoundsPerStage {
			s.proceedWithTurnSwitch(old)
			return
		}
		s.stageReturns(old, func() {
			if old.CurrentStage >= s.cfg.Gameplay.MaxStages && s.current == len(s.players)-1 {
				s.gameOver()
				return
			}
			old.CurrentRound = 0
			old.CurrentStage++
			s.proceedWithTurnSwitch(old)
		})
	})
}

func (s *Session) proceedWithTurnSwitch(old *Player) {
	from := s.current
	s.current = (s.current + 1) % len(s.players)
	next := s.currentPlayer()
	direction := 1
	if s.current == 1 {
		direction = -1
	}
	s.emit(events.TurnSwitched, events.TurnSwitch{From: from, To: s.current, Direction: direction})

	arrived := func() {
		s.subDraw = false
		s.emitHUD(next)
		if next.CurrentRound == 0 {
			s.state = StateAnimating
			s.tl.After(float32(s.cfg.Visuals.StageStartDelay), s.triggerStageStart)
			return
		}
		s.state = StateIdle
	}

	v := s.cfg.Visuals
	if old == next {
		s.tl.After(float32(v.BoardSlideDuration), arrived)
		return
	}
	width := v.BoardWidth
	slide := anim.Options{Duration: float32(v.BoardSlideDuration), Ease: anim.EaseSlide}
	s.tl.Value(old.Board.Offset(), float64(direction)*width, slide, old.Board.SetOffset, nil)
	next.Board.SetOffset(float64(-direction) * width)
	s.tl.Value(next.Board.Offset(), 0, slide, next.Board.SetOffset, arrived)
}

// triggerStageStart shows the stage entry fee, if the rules define one.
func (s *Session) triggerStageStart() {
	rules := s.decks.GlobalRules()
	p := s.currentPlayer()
	if len(rules.RoundStart) == 0 {
		s.state = StateIdle
		return
	}
	s.subDraw = true
	s.showCard(&entities.CardData{
		ID:        "stage_start_rule",
		Type:      entities.CardTypeEntryFee,
		Title:     fmt.Sprintf("Stage %d: Entry Fee", p.CurrentStage),
		Mandatory: true,
		Effect:    rules.RoundStart[0],
	})
}

// stageReturns brings savings back to cash and pays interest per whole ten.
func (s *Session) stageReturns(p *Player, done func()) {
	emergency := p.Board.Balance(entities.RoomEmergency)
	investment := p.Board.Balance(entities.RoomInvestment)
	in := s.cfg.Interest
	interest := emergency/10*in.EmergencyPerTen + investment/10*in.InvestmentPerTen

	p.Board.MoveCash(entities.RoomEmergency, entities.RoomCash, emergency, func() {
		p.Board.MoveCash(entities.RoomInvestment, entities.RoomCash, investment, func() {
			if interest <= 0 {
				done()
				return
			}
			p.Stats.Returns += interest
			p.Board.Gain(entities.RoomCash, interest, func() {
				s.tl.After(float32(s.cfg.Visuals.ReturnsSettleDelay), done)
			})
		})
	})
}

func (s *Session) gameOver() {
	s.state = StateAnimating
	s.over = true

	result := events.GameOver{}
	maxWealth := -1
	for _, p := range s.players {
		w := p.Wealth()
		if w > maxWealth {
			maxWealth = w
			result.Winner = p.Name
			result.Draw = false
		} else if w == maxWealth {
			result.Draw = true
		}
		result.Players = append(result.Players, events.PlayerResult{Name: p.Name, FinalCash: w, Stats: p.Stats})
	}
	if result.Draw {
		result.Text = "IT'S A DRAW!"
	} else {
		result.Text = result.Winner + " WINS!"
	}
	s.result = &result
	s.log.Info("🏁 game over", zap.String("result", result.Text))

	s.tl.After(float32(s.cfg.Visuals.GameOverDelay), func() {
		s.emit(events.ShowGameOver, result)
		if s.opts.OnGameOver != nil {
			s.opts.OnGameOver(result)
		}
	})
}

// Restart throws away the match and deals a fresh one.
func (s *Session) Restart() {
	s.tl.Reset()
	s.decks.Reset()
	s.current = 0
	s.state = StateIdle
	s.card = nil
	s.subDraw = false
	s.prompt = pendingPrompt{}
	s.over = false
	s.result = nil
	s.started = false
	s.setupPlayers()
	s.Start()
}

func (s *Session) emitHUD(p *Player) {
	s.emit(events.UpdateHUD, events.HUD{
		Stage:      p.CurrentStage,
		Round:      p.CurrentRound,
		PlayerName: p.Name,
		Cash:       p.Board.Balance(entities.RoomCash),
	})
}

// PromptDeposit, PromptProduction, PromptOrder and RequestSubDraw let the
// effect dispatcher hand control to the player.

func (s *Session) PromptDeposit(p events.DepositPrompt, provide func(int)) {
	s.prompt = pendingPrompt{kind: promptDeposit, deposit: p, onDeposit: provide}
	s.emit(events.ShowDepositPanel, p)
}

func (s *Session) PromptProduction(p events.ProductionPrompt, provide func(slots, totalCost int)) {
	s.prompt = pendingPrompt{kind: promptProduction, production: p, onProduce: provide}
	s.emit(events.ShowProductionPanel, p)
}

func (s *Session) PromptOrder(p events.OrderPrompt, selected func(entities.CardData)) {
	s.subDraw = true
	s.prompt = pendingPrompt{kind: promptOrder, order: p, onOrder: selected}
	s.emit(events.ShowOrderSelection, p)
}

func (s *Session) RequestSubDraw(deckID string, count int) {
	s.tl.After(float32(s.cfg.Visuals.SubDrawDelay), func() { s.drawSequence(deckID) })
}

// ProvideDeposit answers an open deposit prompt. The amount is clamped to
// what the source room holds.
func (s *Session) ProvideDeposit(amount int) error {
	if s.prompt.kind != promptDeposit {
		return ErrNoPrompt
	}
	pr := s.prompt
	s.prompt = pendingPrompt{}
	pr.onDeposit(utils.Clamp(amount, 0, pr.deposit.MaxAmount))
	return nil
}

// ProvideProduction answers an open production prompt with a slot count,
// clamped to the slots and the cash available.
func (s *Session) ProvideProduction(slots int) error {
	if s.prompt.kind != promptProduction {
		return ErrNoPrompt
	}
	pr := s.prompt
	s.prompt = pendingPrompt{}
	p := pr.production
	affordable := p.CurrentCash / p.CostPerSlot
	limit := p.MaxSlots
	if affordable < limit {
		limit = affordable
	}
	slots = utils.Clamp(slots, 0, limit)
	pr.onProduce(slots, slots*p.CostPerSlot)
	return nil
}

// SelectOrder fills one of the offered orders.
func (s *Session) SelectOrder(orderID string) error {
	if s.prompt.kind != promptOrder {
		return ErrNoPrompt
	}
	for _, order := range s.prompt.order.Orders {
		if order.ID != orderID {
			continue
		}
		pr := s.prompt
		s.prompt = pendingPrompt{}
		chosen := order
		s.card = &chosen
		pr.onOrder(chosen)
		return nil
	}
	return ErrUnknownOrder
}
