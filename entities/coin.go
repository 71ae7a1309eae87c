package entities

// Denominations are the coin face values, largest first.
var Denominations = []int{10, 5, 2, 1}

// Coin is a single token on a player board. Its room is derived from its
// position, never stored.
type Coin struct {
	ID    int     `json:"id"`
	Value int     `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// SumCoins returns the total face value of coins.
func SumCoins(coins []*Coin) int {
	total := 0
	for _, c := range coins {
		total += c.Value
	}
	return total
}

func (c *Coin) Pos() (float64, float64) { return c.X, c.Y }

func (c *Coin) SetPos(x, y float64) { c.X, c.Y = x, y }
