package game

import (
	"wealthy-cats/entities"
	"wealthy-cats/events"
)

type PlayerSnapshot struct {
	ID       int                  `json:"id"`
	Name     string               `json:"name"`
	Round    int                  `json:"round"`
	Stage    int                  `json:"stage"`
	Offset   float64              `json:"offset"`
	Balances map[string]int       `json:"balances"`
	Coins    []entities.Coin      `json:"coins"`
	Stats    entities.PlayerStats `json:"stats"`
}

// PromptSnapshot describes the input the active player owes, if any.
type PromptSnapshot struct {
	Kind       string                   `json:"kind"`
	Deposit    *events.DepositPrompt    `json:"deposit,omitempty"`
	Production *events.ProductionPrompt `json:"production,omitempty"`
	Order      *events.OrderPrompt      `json:"order,omitempty"`
}

// Snapshot is a full copy of a session for clients joining late.
type Snapshot struct {
	State         string             `json:"state"`
	CurrentPlayer int                `json:"currentPlayer"`
	IsSubDraw     bool               `json:"isSubDraw"`
	Card          *entities.CardData `json:"card,omitempty"`
	Prompt        *PromptSnapshot    `json:"prompt,omitempty"`
	Players       []PlayerSnapshot   `json:"players"`
	Over          bool               `json:"over"`
	Result        *events.GameOver   `json:"result,omitempty"`
	Seq           uint64             `json:"seq"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:         s.state.String(),
		CurrentPlayer: s.current,
		IsSubDraw:     s.subDraw,
		Over:          s.over,
		Seq:           s.seq,
	}
	if s.card != nil {
		c := *s.card
		snap.Card = &c
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	switch pr := s.prompt; pr.kind {
	case promptDeposit:
		d := pr.deposit
		snap.Prompt = &PromptSnapshot{Kind: pr.kind.String(), Deposit: &d}
	case promptProduction:
		p := pr.production
		snap.Prompt = &PromptSnapshot{Kind: pr.kind.String(), Production: &p}
	case promptOrder:
		o := pr.order
		snap.Prompt = &PromptSnapshot{Kind: pr.kind.String(), Order: &o}
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Round:    p.CurrentRound,
			Stage:    p.CurrentStage,
			Offset:   p.Board.Offset(),
			Balances: p.Board.Balances(),
			Coins:    p.Board.Coins(),
			Stats:    p.Stats,
		})
	}
	return snap
}
