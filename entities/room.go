package entities

// Room IDs used on every player board.
const (
	RoomCash       = "cash"
	RoomGoods      = "goods"
	RoomEmergency  = "emergency"
	RoomInvestment = "investment"
	RoomStorage    = "storage"
	RoomBasic      = "basic"
	RoomActive     = "active"
	RoomCandy      = "candy"
	RoomDemon      = "demon"
)

// RoomAliases maps the names used in card data to board room IDs.
var RoomAliases = map[string]string{
	"maintenance": RoomBasic,
	"indulgence":  RoomCandy,
	"cash":        RoomCash,
	"emergency":   RoomEmergency,
	"longTerm":    RoomInvestment,
	"production":  RoomGoods,
}

// ResolveRoom returns the board room ID for a card room name.
func ResolveRoom(name string) string {
	if id, ok := RoomAliases[name]; ok {
		return id
	}
	return name
}

// RoomKind groups rooms by the controller that handles them.
type RoomKind string

const (
	RoomKindCash    RoomKind = "cash"
	RoomKindGoods   RoomKind = "goods"
	RoomKindGeneric RoomKind = "generic"
)

// KindOf returns the controller category of a room ID.
func KindOf(roomID string) RoomKind {
	switch roomID {
	case RoomCash, RoomEmergency, RoomInvestment:
		return RoomKindCash
	case RoomGoods:
		return RoomKindGoods
	default:
		return RoomKindGeneric
	}
}

type RoomDefinition struct {
	ID     string    `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Points []float64 `json:"points" yaml:"points"` // x0,y0,x1,y1...
	Color  uint32    `json:"color" yaml:"color"`
}

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}
