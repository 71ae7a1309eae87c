package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wealthy-cats/entities"
)

// Visuals holds animation timings in milliseconds.
type Visuals struct {
	TransitionDuration  int `yaml:"transitionDuration"`
	CardSlideDuration   int `yaml:"cardSlideDuration"`
	OverlayFadeDuration int `yaml:"overlayFadeDuration"`
	CoinGlideDuration   int `yaml:"coinGlideDuration"`
	PanelPopDuration    int `yaml:"panelPopDuration"`
	CoinStaggerDelay    int `yaml:"coinStaggerDelay"`
	BreakDuration       int `yaml:"breakDuration"`
	BreakSpawnDelay     int `yaml:"breakSpawnDelay"`
	BreakScatterTime    int `yaml:"breakScatterTime"`
	TurnDelay           int `yaml:"turnDelay"`
	BoardSlideDuration  int `yaml:"boardSlideDuration"`
	StageStartDelay     int `yaml:"stageStartDelay"`
	SubDrawDelay        int `yaml:"subDrawDelay"`
	ReturnsSettleDelay  int `yaml:"returnsSettleDelay"`
	GameOverDelay       int `yaml:"gameOverDelay"`
	// BoardWidth is how far a board slides off screen on turn switch.
	BoardWidth float64 `yaml:"boardWidth"`
}

type Production struct {
	MaxSlots int              `yaml:"maxSlots"`
	Slots    []entities.Point `yaml:"slots"`
}

type InitialSetup struct {
	SpawnDelay   int `yaml:"spawnDelay"`
	InitialDelay int `yaml:"initialDelay"`
}

type Gameplay struct {
	MaxStages      int   `yaml:"maxStages"`
	RoundsPerStage int   `yaml:"roundsPerStage"`
	TotalPlayers   int   `yaml:"totalPlayers"`
	InitialCash    []int `yaml:"initialCash"`
}

type Coins struct {
	Radius float64 `yaml:"radius"`
	Margin float64 `yaml:"margin"`
	// Jitter is the half-width of the scatter box used when coins land.
	BreakJitter float64 `yaml:"breakJitter"`
	SlotJitter  float64 `yaml:"slotJitter"`
}

// Interest is paid per whole ten held at the end of a stage.
type Interest struct {
	EmergencyPerTen  int `yaml:"emergencyPerTen"`
	InvestmentPerTen int `yaml:"investmentPerTen"`
}

// GameConfig is the board and pacing configuration of a game.
type GameConfig struct {
	Visuals      Visuals                   `yaml:"visuals"`
	Rooms        []entities.RoomDefinition `yaml:"rooms"`
	Production   Production                `yaml:"production"`
	InitialSetup InitialSetup              `yaml:"initialSetup"`
	Gameplay     Gameplay                  `yaml:"gameplay"`
	Coins        Coins                     `yaml:"coins"`
	Interest     Interest                  `yaml:"interest"`
}

// DefaultGame returns the stock board layout and pacing.
func DefaultGame() GameConfig {
	return GameConfig{
		Visuals: Visuals{
			TransitionDuration:  500,
			CardSlideDuration:   500,
			OverlayFadeDuration: 500,
			CoinGlideDuration:   500,
			PanelPopDuration:    500,
			CoinStaggerDelay:    80,
			BreakDuration:       300,
			BreakSpawnDelay:     50,
			BreakScatterTime:    400,
			TurnDelay:           500,
			BoardSlideDuration:  800,
			StageStartDelay:     500,
			SubDrawDelay:        800,
			ReturnsSettleDelay:  1000,
			GameOverDelay:       1000,
			BoardWidth:          1920,
		},
		Rooms: []entities.RoomDefinition{
			{ID: entities.RoomCash, Name: "CASH", Color: 0x4CAF50,
				Points: []float64{604, 514, 929, 505, 916, 103, 659, 233, 572, 276}},
			{ID: entities.RoomGoods, Name: "GOODS", Color: 0x2196F3,
				Points: []float64{945, 504, 1317, 505, 1337, 228, 1135, 138, 937, 173}},
			{ID: entities.RoomEmergency, Name: "EMERGENCY", Color: 0xFF9800,
				Points: []float64{583, 764, 963, 768, 925, 523, 595, 535, 548, 604}},
			{ID: entities.RoomInvestment, Name: "INVESTMENT", Color: 0xE91E63,
				Points: []float64{978, 763, 1318, 755, 1320, 526, 937, 523}},
			{ID: entities.RoomStorage, Name: "STORAGE", Color: 0x9E9E9E,
				Points: []float64{622, 999, 1286, 992, 1265, 769, 580, 778}},
			{ID: entities.RoomBasic, Name: "MAINTENANCE / LIVING", Color: 0xFFEB3B,
				Points: []float64{438, 694, 590, 516, 540, 148, 322, 230, 295, 662}},
			{ID: entities.RoomActive, Name: "ACTIVE", Color: 0xCDDC39,
				Points: []float64{1342, 644, 1601, 624, 1593, 257, 1347, 244}},
			{ID: entities.RoomCandy, Name: "CANDY", Color: 0x795548,
				Points: []float64{300, 1007, 589, 1010, 554, 742, 290, 691}},
			{ID: entities.RoomDemon, Name: "DEMON", Color: 0x000000,
				Points: []float64{1343, 990, 1596, 998, 1597, 705, 1333, 717}},
		},
		Production: Production{
			MaxSlots: 3,
			Slots: []entities.Point{
				{X: 1069, Y: 382},
				{X: 1205, Y: 386},
				{X: 1198, Y: 258},
			},
		},
		InitialSetup: InitialSetup{SpawnDelay: 100, InitialDelay: 1000},
		Gameplay: Gameplay{
			MaxStages:      2,
			RoundsPerStage: 3,
			TotalPlayers:   2,
			InitialCash:    []int{10, 5, 5, 2, 2, 2, 1, 1, 1, 1},
		},
		Coins: Coins{Radius: 40, Margin: 45, BreakJitter: 30, SlotJitter: 4},
		Interest: Interest{
			EmergencyPerTen:  1,
			InvestmentPerTen: 2,
		},
	}
}

// LoadGame returns DefaultGame with the YAML file at path applied over it.
// An empty path returns the defaults.
func LoadGame(path string) (GameConfig, error) {
	cfg := DefaultGame()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read board config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse board config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the invariants the engine relies on.
func (g GameConfig) Validate() error {
	if g.Gameplay.TotalPlayers < 1 {
		return fmt.Errorf("totalPlayers must be at least 1")
	}
	if g.Gameplay.RoundsPerStage < 1 || g.Gameplay.MaxStages < 1 {
		return fmt.Errorf("roundsPerStage and maxStages must be at least 1")
	}
	if len(g.Production.Slots) < g.Production.MaxSlots {
		return fmt.Errorf("production has %d slots, maxSlots is %d", len(g.Production.Slots), g.Production.MaxSlots)
	}
	for _, r := range g.Rooms {
		if len(r.Points) < 6 || len(r.Points)%2 != 0 {
			return fmt.Errorf("room %s: need at least 3 points, got %d values", r.ID, len(r.Points))
		}
	}
	for _, v := range g.Gameplay.InitialCash {
		if !isDenomination(v) {
			return fmt.Errorf("initialCash: %d is not a coin value", v)
		}
	}
	return nil
}

func isDenomination(v int) bool {
	for _, d := range entities.Denominations {
		if d == v {
			return true
		}
	}
	return false
}
