package entities

// Stat names tracked per player.
const (
	StatInvested    = "invested"
	StatReturns     = "returns"
	StatProduction  = "production"
	StatSales       = "sales"
	StatIndulgence  = "indulgence"
	StatMaintenance = "maintenance"
	StatFees        = "fees"
)

type PlayerStats struct {
	StartingCash int `json:"startingCash"`
	Invested     int `json:"invested"`
	Returns      int `json:"returns"`
	Production   int `json:"production"`
	Sales        int `json:"sales"`
	Indulgence   int `json:"indulgence"`
	Maintenance  int `json:"maintenance"`
	Fees         int `json:"fees"`
}

// Add increments the named stat. Unknown names are ignored.
func (s *PlayerStats) Add(stat string, amount int) {
	switch stat {
	case StatInvested:
		s.Invested += amount
	case StatReturns:
		s.Returns += amount
	case StatProduction:
		s.Production += amount
	case StatSales:
		s.Sales += amount
	case StatIndulgence:
		s.Indulgence += amount
	case StatMaintenance:
		s.Maintenance += amount
	case StatFees:
		s.Fees += amount
	}
}
