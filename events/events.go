// Package events carries presentation events from a game to its renderers.
package events

import (
	"sync"

	"wealthy-cats/entities"
)

type Type string

const (
	CoinSpawned         Type = "coin-spawned"
	CoinMoved           Type = "coin-moved"
	CoinDestroyed       Type = "coin-destroyed"
	ShowCardOverlay     Type = "show-card-overlay"
	DismissCardOverlay  Type = "dismiss-card-overlay"
	UpdateHUD           Type = "update-hud"
	ShowDepositPanel    Type = "show-deposit-panel"
	ShowProductionPanel Type = "show-production-panel"
	ShowOrderSelection  Type = "show-order-selection"
	TurnSwitched        Type = "turn-switched"
	ShowGameOver        Type = "show-gameover"
)

// Event is one outbound message. Seq is assigned by the emitting session and
// increases by one per event.
type Event struct {
	Seq    uint64      `json:"seq"`
	Type   Type        `json:"type"`
	Player int         `json:"player"`
	Data   interface{} `json:"data,omitempty"`
}

// Sink receives events. Emit is called from the session loop and must not
// block.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a func to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Buffer collects events in memory.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

func (b *Buffer) Emit(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// Events returns a copy of everything collected so far.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// OfType returns collected events of type t in order.
func (b *Buffer) OfType(t Type) []Event {
	var out []Event
	for _, e := range b.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

type CoinSpawn struct {
	Coin   entities.Coin `json:"coin"`
	RoomID string        `json:"roomId,omitempty"`
}

// CoinMove tells the renderer to glide a coin; the engine runs the same tween
// and owns the final position.
type CoinMove struct {
	CoinID   int     `json:"coinId"`
	ToX      float64 `json:"toX"`
	ToY      float64 `json:"toY"`
	Delay    int     `json:"delay"`
	Duration int     `json:"duration"`
	Ease     string  `json:"ease"`
}

type CoinDestroy struct {
	CoinID int  `json:"coinId"`
	Broken bool `json:"broken"`
}

type CardOverlay struct {
	Card      entities.CardData `json:"card"`
	IsSubDraw bool              `json:"isSubDraw"`
}

type HUD struct {
	Stage      int    `json:"stage"`
	Round      int    `json:"round"`
	PlayerName string `json:"playerName"`
	Cash       int    `json:"cash"`
}

type DepositPrompt struct {
	Title     string `json:"title"`
	From      string `json:"from"`
	To        string `json:"to"`
	MaxAmount int    `json:"maxAmount"`
}

type ProductionPrompt struct {
	CostPerSlot int `json:"costPerSlot"`
	CurrentCash int `json:"currentCash"`
	MaxSlots    int `json:"maxSlots"`
}

type OrderPrompt struct {
	Jars   int                 `json:"jars"`
	Orders []entities.CardData `json:"orders"`
}

type TurnSwitch struct {
	From      int `json:"from"`
	To        int `json:"to"`
	Direction int `json:"direction"`
}

type PlayerResult struct {
	Name      string               `json:"name"`
	FinalCash int                  `json:"finalCash"`
	Stats     entities.PlayerStats `json:"stats"`
}

type GameOver struct {
	Winner  string         `json:"winner"`
	Draw    bool           `json:"draw"`
	Text    string         `json:"text"`
	Players []PlayerResult `json:"players"`
}
