package board

import "wealthy-cats/entities"

// Room is one labelled region of a player board.
type Room struct {
	Def     entities.RoomDefinition
	Polygon Polygon
}

func NewRoom(def entities.RoomDefinition) *Room {
	return &Room{Def: def, Polygon: NewPolygon(def.Points)}
}

func (r *Room) ID() string { return r.Def.ID }

// CoinsIn returns the coins whose centre lies inside the room, keeping the
// input order.
func (r *Room) CoinsIn(coins []*entities.Coin) []*entities.Coin {
	var in []*entities.Coin
	for _, c := range coins {
		if r.Polygon.Contains(c.X, c.Y) {
			in = append(in, c)
		}
	}
	return in
}

func (r *Room) Balance(coins []*entities.Coin) int {
	return entities.SumCoins(r.CoinsIn(coins))
}

// Controller is the behaviour attached to a room. The concrete type tells
// which settlement operations the room supports.
type Controller interface {
	Room() *Room
	Kind() entities.RoomKind
}

// CashRoom holds liquid coins that can be selected and broken.
type CashRoom struct{ room *Room }

func (c *CashRoom) Room() *Room             { return c.room }
func (c *CashRoom) Kind() entities.RoomKind { return entities.RoomKindCash }

// Select picks coins in the room for target, see SelectCoinsForAmount.
func (c *CashRoom) Select(coins []*entities.Coin, target int) []*entities.Coin {
	return SelectCoinsForAmount(c.room.CoinsIn(coins), target)
}

// GoodsRoom holds production coins laid out in slots.
type GoodsRoom struct{ room *Room }

func (g *GoodsRoom) Room() *Room             { return g.room }
func (g *GoodsRoom) Kind() entities.RoomKind { return entities.RoomKindGoods }

type GenericRoom struct{ room *Room }

func (g *GenericRoom) Room() *Room             { return g.room }
func (g *GenericRoom) Kind() entities.RoomKind { return entities.RoomKindGeneric }

// NewController picks the controller for a room from its ID.
func NewController(room *Room) Controller {
	switch entities.KindOf(room.ID()) {
	case entities.RoomKindCash:
		return &CashRoom{room: room}
	case entities.RoomKindGoods:
		return &GoodsRoom{room: room}
	default:
		return &GenericRoom{room: room}
	}
}
