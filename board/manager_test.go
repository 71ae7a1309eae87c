package board

import (
	"testing"

	"golang.org/x/exp/rand"

	"wealthy-cats/anim"
	"wealthy-cats/config"
	"wealthy-cats/entities"
	"wealthy-cats/events"
)

type fixture struct {
	m      *Manager
	tl     *anim.Timeline
	events *events.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tl := anim.NewTimeline()
	buf := &events.Buffer{}
	m := NewManager(Deps{
		Config:   config.DefaultGame(),
		Timeline: tl,
		Rand:     rand.New(rand.NewSource(42)),
		Emit: func(typ events.Type, data interface{}) {
			buf.Emit(events.Event{Type: typ, Data: data})
		},
	})
	return &fixture{m: m, tl: tl, events: buf}
}

func (f *fixture) run(t *testing.T) {
	t.Helper()
	for i := 0; f.tl.Busy(); i++ {
		if i > 10000 {
			t.Fatalf("timeline never settled")
		}
		f.tl.Update(16)
	}
}

func (f *fixture) fill(room string, values ...int) {
	for _, v := range values {
		f.m.Spawn(room, v)
	}
}

func TestSpawnLandsInRoom(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10, 5, 5, 2, 2, 2, 1, 1, 1, 1)
	if got := f.m.Balance(entities.RoomCash); got != 30 {
		t.Fatalf("expected cash 30 got %d", got)
	}
	if got := len(f.events.OfType(events.CoinSpawned)); got != 10 {
		t.Fatalf("expected 10 spawn events got %d", got)
	}
	if f.m.Spawn("nowhere", 5) != nil {
		t.Fatalf("expected nil coin for unknown room")
	}
}

func TestMoveCashExact(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10, 5, 2)
	done := 0
	f.m.MoveCash(entities.RoomCash, entities.RoomEmergency, 7, func() { done++ })
	f.run(t)

	if done != 1 {
		t.Fatalf("expected one completion got %d", done)
	}
	if got := f.m.Balance(entities.RoomCash); got != 10 {
		t.Fatalf("expected cash 10 got %d", got)
	}
	if got := f.m.Balance(entities.RoomEmergency); got != 7 {
		t.Fatalf("expected emergency 7 got %d", got)
	}
}

func TestMoveCashBreaksUntilExact(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10)
	done := false
	f.m.MoveCash(entities.RoomCash, entities.RoomEmergency, 4, func() { done = true })
	f.run(t)

	if !done {
		t.Fatalf("expected completion")
	}
	moved := valuesOf(f.m.CoinsIn(entities.RoomEmergency))
	if !equalInts(moved, []int{2, 2}) {
		t.Fatalf("expected [2 2] moved got %v", moved)
	}
	if got := f.m.Balance(entities.RoomCash); got != 6 {
		t.Fatalf("expected cash 6 got %d", got)
	}
	if got := len(f.events.OfType(events.CoinDestroyed)); got != 2 {
		t.Fatalf("expected 2 broken coins got %d", got)
	}
}

func TestMoveCashZeroCompletesImmediately(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 5)
	done := false
	f.m.MoveCash(entities.RoomCash, entities.RoomEmergency, 0, func() { done = true })
	if !done {
		t.Fatalf("expected synchronous completion")
	}
	if f.tl.Busy() {
		t.Fatalf("expected no animation")
	}
}

func TestMoveCashImpossibleIsNoop(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 1)
	done := false
	f.m.MoveCash(entities.RoomCash, entities.RoomEmergency, 5, func() { done = true })
	f.run(t)
	if !done {
		t.Fatalf("expected completion")
	}
	if f.m.Balance(entities.RoomCash) != 1 || f.m.Balance(entities.RoomEmergency) != 0 {
		t.Fatalf("expected nothing to move, balances %v", f.m.Balances())
	}
}

func TestMoveCashFromGenericRoomIsNoop(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCandy, 5)
	done := false
	f.m.MoveCash(entities.RoomCandy, entities.RoomCash, 5, func() { done = true })
	if !done || f.m.Balance(entities.RoomCandy) != 5 {
		t.Fatalf("expected immediate no-op")
	}
}

func TestMoveCashConservesTotal(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10, 5, 5, 2, 2, 2, 1, 1, 1, 1)
	for _, amt := range []int{3, 7, 1, 4} {
		f.m.MoveCash(entities.RoomCash, entities.RoomBasic, amt, nil)
		f.run(t)
	}
	if got := f.m.Balance(entities.RoomBasic); got != 15 {
		t.Fatalf("expected basic 15 got %d", got)
	}
	if got := f.m.Balance(entities.RoomCash); got != 15 {
		t.Fatalf("expected cash 15 got %d", got)
	}
}

func TestProduce(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10, 2, 2)
	done := false
	f.m.Produce(2, 4, func() { done = true })
	f.run(t)
	if !done {
		t.Fatalf("expected completion")
	}
	if got := f.m.Balance(entities.RoomGoods); got != 4 {
		t.Fatalf("expected goods 4 got %d", got)
	}
	if got := f.m.Balance(entities.RoomCash); got != 10 {
		t.Fatalf("expected cash 10 got %d", got)
	}
}

func TestProduceZeroSlots(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10)
	done := false
	f.m.Produce(0, 0, func() { done = true })
	if !done || f.tl.Busy() {
		t.Fatalf("expected immediate completion")
	}
}

func TestSellShipsTwoCoinsPerJar(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomGoods, 1, 1, 1, 1, 1)
	done := false
	f.m.Sell(2, func() { done = true })
	f.run(t)
	if !done {
		t.Fatalf("expected completion")
	}
	if got := f.m.Balance(entities.RoomActive); got != 4 {
		t.Fatalf("expected active 4 got %d", got)
	}
	if got := f.m.Balance(entities.RoomGoods); got != 1 {
		t.Fatalf("expected goods 1 got %d", got)
	}
}

func TestSellWithEmptyGoods(t *testing.T) {
	f := newFixture(t)
	done := false
	f.m.Sell(3, func() { done = true })
	if !done {
		t.Fatalf("expected immediate completion")
	}
}

func TestGain(t *testing.T) {
	f := newFixture(t)
	done := false
	f.m.Gain(entities.RoomCash, 8, func() { done = true })
	f.run(t)
	if !done {
		t.Fatalf("expected completion")
	}
	if got := valuesOf(f.m.CoinsIn(entities.RoomCash)); !equalInts(got, []int{5, 2, 1}) {
		t.Fatalf("expected [5 2 1] got %v", got)
	}
}

func TestCoinIDsAreUnique(t *testing.T) {
	f := newFixture(t)
	f.fill(entities.RoomCash, 10, 10)
	f.m.MoveCash(entities.RoomCash, entities.RoomEmergency, 3, nil)
	f.run(t)
	seen := map[int]bool{}
	for _, c := range f.m.Coins() {
		if seen[c.ID] {
			t.Fatalf("duplicate coin id %d", c.ID)
		}
		seen[c.ID] = true
	}
}
