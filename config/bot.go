package config

import "fmt"

// BotDifficulty affects reaction time and how precisely the autopilot flies
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds autopilot tuning for one difficulty
type BotDifficultyConfig struct {
	ReactionDelay int     // Ticks between steering decisions
	ArriveRadius  float32 // Distance at which a waypoint counts as reached
	SlowRadius    float32 // Distance at which the autopilot starts braking
	CruiseSpeed   float32 // Desired closing speed far from the waypoint
	Tolerance     float32 // Velocity error ignored per axis
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds autopilot configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 10, // half a second at 20 Hz
				ArriveRadius:  25,
				SlowRadius:    80,
				CruiseSpeed:   10,
				Tolerance:     2,
			},
			BotDifficultyNormal: {
				ReactionDelay: 4,
				ArriveRadius:  15,
				SlowRadius:    60,
				CruiseSpeed:   18,
				Tolerance:     1,
			},
			BotDifficultyHard: {
				ReactionDelay: 1,
				ArriveRadius:  8,
				SlowRadius:    50,
				CruiseSpeed:   30,
				Tolerance:     0.5,
			},
		},
	}
}

// ParseBotDifficulty maps "easy", "normal" or "hard".
func ParseBotDifficulty(s string) (BotDifficulty, error) {
	switch s {
	case "easy":
		return BotDifficultyEasy, nil
	case "normal", "":
		return BotDifficultyNormal, nil
	case "hard":
		return BotDifficultyHard, nil
	}
	return BotDifficultyNormal, fmt.Errorf("unknown bot difficulty %q", s)
}
