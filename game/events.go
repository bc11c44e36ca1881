package game

// Events counts what happened during one tick or action.
// Front-ends use it for sound and telemetry; it carries no entity references.
// Unless noted, counts refer to the human.
type Events struct {
	FoodEaten    int
	EjectedEaten int
	// CellsEaten counts agent cells consumed by the human.
	CellsEaten int
	// CellsLost counts human cells consumed by agents.
	CellsLost  int
	VirusHits  int
	Splits     int
	Ejects     int
	ScoreDelta int
	Died       bool

	NewHighScore bool

	// Agent activity.
	AgentPellets int // food and ejected mass eaten by agents
	AgentKills   int // agent cells eaten by other agents
	AgentSplits  int
	AgentVirus   int
	AgentsKilled int // agents that went from alive to dead
	Respawns     int

	VirusesFed  int
	VirusesBorn int
}

// Add accumulates o into e. Boolean flags are OR-ed.
func (e *Events) Add(o Events) {
	e.FoodEaten += o.FoodEaten
	e.EjectedEaten += o.EjectedEaten
	e.CellsEaten += o.CellsEaten
	e.CellsLost += o.CellsLost
	e.VirusHits += o.VirusHits
	e.Splits += o.Splits
	e.Ejects += o.Ejects
	e.ScoreDelta += o.ScoreDelta
	e.Died = e.Died || o.Died
	e.NewHighScore = e.NewHighScore || o.NewHighScore

	e.AgentPellets += o.AgentPellets
	e.AgentKills += o.AgentKills
	e.AgentSplits += o.AgentSplits
	e.AgentVirus += o.AgentVirus
	e.AgentsKilled += o.AgentsKilled
	e.Respawns += o.Respawns

	e.VirusesFed += o.VirusesFed
	e.VirusesBorn += o.VirusesBorn
}

// Empty reports whether nothing was recorded.
func (e Events) Empty() bool {
	return e == Events{}
}
