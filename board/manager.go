package board

import (
	"go.uber.org/zap"

	"wealthy-cats/anim"
	"wealthy-cats/config"
	"wealthy-cats/entities"
	"wealthy-cats/events"
)

// Deps are the collaborators a Manager shares with the rest of its game.
type Deps struct {
	Config   config.GameConfig
	Timeline *anim.Timeline
	Rand     Rand
	// Emit publishes a presentation event for this board's player.
	Emit func(t events.Type, data interface{})
	// NextID hands out coin IDs unique within the game.
	NextID func() int
	Log    *zap.Logger
}

// Manager owns the coins and rooms of one player board and runs every coin
// settlement on it.
type Manager struct {
	deps   Deps
	rooms  map[string]Controller
	order  []string
	coins  []*entities.Coin
	offset float64
}

func NewManager(deps Deps) *Manager {
	if deps.Emit == nil {
		deps.Emit = func(events.Type, interface{}) {}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.NextID == nil {
		next := 0
		deps.NextID = func() int { next++; return next }
	}
	m := &Manager{deps: deps, rooms: make(map[string]Controller)}
	for _, def := range deps.Config.Rooms {
		m.AddRoom(def)
	}
	return m
}

// AddRoom registers a room; a repeated ID replaces the earlier controller.
func (m *Manager) AddRoom(def entities.RoomDefinition) {
	if _, ok := m.rooms[def.ID]; !ok {
		m.order = append(m.order, def.ID)
	}
	m.rooms[def.ID] = NewController(NewRoom(def))
}

// Controller returns the controller for roomID or nil.
func (m *Manager) Controller(roomID string) Controller {
	return m.rooms[roomID]
}

// RoomIDs lists rooms in the order they were added.
func (m *Manager) RoomIDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Coins returns a snapshot of the coins on the board.
func (m *Manager) Coins() []entities.Coin {
	out := make([]entities.Coin, len(m.coins))
	for i, c := range m.coins {
		out[i] = *c
	}
	return out
}

// CoinsIn returns live coins inside roomID.
func (m *Manager) CoinsIn(roomID string) []*entities.Coin {
	ctrl := m.rooms[roomID]
	if ctrl == nil {
		return nil
	}
	return ctrl.Room().CoinsIn(m.coins)
}

// Balance is the total value of coins in roomID; unknown rooms hold 0.
func (m *Manager) Balance(roomID string) int {
	ctrl := m.rooms[roomID]
	if ctrl == nil {
		return 0
	}
	return ctrl.Room().Balance(m.coins)
}

func (m *Manager) Balances() map[string]int {
	out := make(map[string]int, len(m.order))
	for _, id := range m.order {
		out[id] = m.Balance(id)
	}
	return out
}

// Offset is the horizontal slide of the board, 0 when on screen.
func (m *Manager) Offset() float64 { return m.offset }

func (m *Manager) SetOffset(x float64) { m.offset = x }

// Spawn creates a coin at a free spot inside roomID.
func (m *Manager) Spawn(roomID string, value int) *entities.Coin {
	ctrl := m.rooms[roomID]
	if ctrl == nil {
		m.deps.Log.Warn("⚠️ spawn into unknown room", zap.String("room", roomID), zap.Int("value", value))
		return nil
	}
	pt := ctrl.Room().Polygon.RandomPoint(m.deps.Rand, m.deps.Config.Coins.Margin)
	return m.spawnAt(pt.X, pt.Y, value, roomID)
}

func (m *Manager) spawnAt(x, y float64, value int, roomID string) *entities.Coin {
	c := &entities.Coin{ID: m.deps.NextID(), Value: value, X: x, Y: y}
	m.coins = append(m.coins, c)
	m.deps.Emit(events.CoinSpawned, events.CoinSpawn{Coin: *c, RoomID: roomID})
	return c
}

func (m *Manager) destroy(c *entities.Coin, broken bool) {
	for i, other := range m.coins {
		if other == c {
			m.coins = append(m.coins[:i], m.coins[i+1:]...)
			break
		}
	}
	m.deps.Emit(events.CoinDestroyed, events.CoinDestroy{CoinID: c.ID, Broken: broken})
}

func (m *Manager) glide(c *entities.Coin, to entities.Point, delay, duration int, easeName string, done func()) {
	m.deps.Emit(events.CoinMoved, events.CoinMove{
		CoinID: c.ID, ToX: to.X, ToY: to.Y, Delay: delay, Duration: duration, Ease: easeName,
	})
	fn := anim.EaseInOut
	if easeName == easeScatter {
		fn = anim.EaseOut
	}
	m.deps.Timeline.Move(c, to.X, to.Y, anim.Options{
		Delay:    float32(delay),
		Duration: float32(duration),
		Ease:     fn,
	}, done)
}

const (
	easeGlide   = "inOutQuad"
	easeScatter = "outCubic"
)

// MoveCash transfers exactly amount from one room to another. When the
// source cannot pay it exactly, the smallest larger coin is broken and the
// transfer retried; if there is no such coin nothing moves. done always
// fires.
func (m *Manager) MoveCash(fromID, toID string, amount int, done func()) {
	if done == nil {
		done = func() {}
	}
	if amount <= 0 {
		done()
		return
	}
	from, ok := m.rooms[fromID].(*CashRoom)
	to := m.rooms[toID]
	if !ok || to == nil {
		m.deps.Log.Warn("⚠️ move between unsupported rooms", zap.String("from", fromID), zap.String("to", toID))
		done()
		return
	}

	selected := from.Select(m.coins, amount)
	if entities.SumCoins(selected) == amount {
		v := m.deps.Config.Visuals
		step := anim.Join(len(selected), done)
		for i, c := range selected {
			pt := to.Room().Polygon.RandomPoint(m.deps.Rand, m.deps.Config.Coins.Margin)
			m.glide(c, pt, i*v.CoinStaggerDelay, v.CoinGlideDuration, easeGlide, step)
		}
		return
	}

	bigger := SmallestAbove(from.Room().CoinsIn(m.coins), amount)
	if bigger == nil {
		m.deps.Log.Info("💸 cannot settle amount", zap.String("from", fromID), zap.Int("amount", amount))
		done()
		return
	}
	m.breakCoin(from.Room(), bigger, func() {
		m.MoveCash(fromID, toID, amount, done)
	})
}

// Produce moves totalCost from cash into the production slots, split evenly
// over slots.
func (m *Manager) Produce(slots, totalCost int, done func()) {
	if done == nil {
		done = func() {}
	}
	cash, okCash := m.rooms[entities.RoomCash].(*CashRoom)
	_, okGoods := m.rooms[entities.RoomGoods].(*GoodsRoom)
	if !okCash || !okGoods || slots <= 0 || totalCost <= 0 {
		done()
		return
	}

	available := cash.Room().CoinsIn(m.coins)
	selected := SelectCoinsForAmount(available, totalCost)
	if entities.SumCoins(selected) == totalCost {
		m.toSlots(PartitionIntoBuckets(selected, slots, totalCost/slots), done)
		return
	}

	bigger := SmallestAbove(available, totalCost)
	if bigger == nil {
		done()
		return
	}
	m.breakCoin(cash.Room(), bigger, func() {
		m.Produce(slots, totalCost, done)
	})
}

func (m *Manager) toSlots(buckets [][]*entities.Coin, done func()) {
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	step := anim.Join(total, done)
	if total == 0 {
		return
	}
	slotCoords := m.deps.Config.Production.Slots
	spread := m.deps.Config.Coins.SlotJitter
	goods := m.rooms[entities.RoomGoods].Room()
	for slot, bucket := range buckets {
		var target entities.Point
		if len(slotCoords) > 0 {
			target = slotCoords[slot%len(slotCoords)]
		} else {
			target = goods.Polygon.RandomPoint(m.deps.Rand, m.deps.Config.Coins.Margin)
		}
		for i, c := range bucket {
			pt := entities.Point{
				X: target.X + jitter(m.deps.Rand, spread),
				Y: target.Y + jitter(m.deps.Rand, spread) - float64(i*4),
			}
			m.glide(c, pt, slot*100+i*50, m.deps.Config.Visuals.CoinGlideDuration, easeGlide, step)
		}
	}
}

// Sell ships quantity jars, two goods coins each, to the active room.
func (m *Manager) Sell(quantity int, done func()) {
	if done == nil {
		done = func() {}
	}
	goods, okGoods := m.rooms[entities.RoomGoods].(*GoodsRoom)
	active := m.rooms[entities.RoomActive]
	if !okGoods || active == nil {
		done()
		return
	}
	inRoom := goods.Room().CoinsIn(m.coins)
	n := quantity * 2
	if n < 0 {
		n = 0
	}
	if n > len(inRoom) {
		n = len(inRoom)
	}
	shipped := inRoom[:n]
	step := anim.Join(len(shipped), done)
	v := m.deps.Config.Visuals
	for i, c := range shipped {
		pt := active.Room().Polygon.RandomPoint(m.deps.Rand, m.deps.Config.Coins.Margin)
		m.glide(c, pt, i*v.CoinStaggerDelay, v.CoinGlideDuration, easeGlide, step)
	}
}

// Gain spawns amount into roomID as change, one coin per spawn delay. done
// fires with the last coin.
func (m *Manager) Gain(roomID string, amount int, done func()) {
	if done == nil {
		done = func() {}
	}
	if amount <= 0 {
		done()
		return
	}
	parts := MakeChange(amount)
	delay := m.deps.Config.InitialSetup.SpawnDelay
	for i, v := range parts {
		v, last := v, i == len(parts)-1
		m.deps.Timeline.After(float32(i*delay), func() {
			m.Spawn(roomID, v)
			if last {
				done()
			}
		})
	}
}

// breakCoin replaces c with smaller coins scattered around its position.
// Scatter targets that would leave room fall back to the broken coin's spot.
func (m *Manager) breakCoin(room *Room, c *entities.Coin, done func()) {
	v := m.deps.Config.Visuals
	x, y := c.X, c.Y
	m.deps.Timeline.After(float32(v.BreakDuration), func() {
		m.destroy(c, true)
		parts := BreakDown(c.Value)
		step := anim.Join(len(parts), done)
		spread := m.deps.Config.Coins.BreakJitter
		for i, value := range parts {
			value := value
			m.deps.Timeline.After(float32(i*v.BreakSpawnDelay), func() {
				nc := m.spawnAt(x, y, value, "")
				pt := entities.Point{X: x + jitter(m.deps.Rand, spread), Y: y + jitter(m.deps.Rand, spread)}
				if !room.Polygon.Contains(pt.X, pt.Y) {
					pt = entities.Point{X: x, Y: y}
				}
				m.glide(nc, pt, 0, v.BreakScatterTime, easeScatter, step)
			})
		}
	})
}
