package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// TPS is the fixed simulation rate. All durations in the simulation are
	// counted in ticks at this rate.
	TPS = 60

	// Players is the number of combatants a hazard can strike.
	Players = 2
)
