package config

// Balance holds the progression/economy numbers.
type Balance struct {
	QuestXP              int `yaml:"quest_xp" json:"quest_xp"`
	QuestAttributeGain   int `yaml:"quest_attribute_gain" json:"quest_attribute_gain"`
	MapPointXP           int `yaml:"map_point_xp" json:"map_point_xp"`
	MapPointEXPLGain     int `yaml:"map_point_expl_gain" json:"map_point_expl_gain"`
	PhotoXP              int `yaml:"photo_xp" json:"photo_xp"`
	RolloverHPPenalty    int `yaml:"rollover_hp_penalty" json:"rollover_hp_penalty"`
	StartingTavernTokens int `yaml:"starting_tavern_tokens" json:"starting_tavern_tokens"`
}

// DefaultBalance returns the baseline tuning.
func DefaultBalance() Balance {
	return Balance{
		QuestXP:              10,
		QuestAttributeGain:   10,
		MapPointXP:           20,
		MapPointEXPLGain:     15,
		PhotoXP:              10,
		RolloverHPPenalty:    15,
		StartingTavernTokens: 3,
	}
}

// CasualBalance softens the fatigue penalty and pays exploration more.
func CasualBalance() Balance {
	b := DefaultBalance()
	b.RolloverHPPenalty = 10
	b.MapPointXP = 25
	b.StartingTavernTokens = 5
	return b
}

// HardBalance raises the cost of skipping CON duties.
func HardBalance() Balance {
	b := DefaultBalance()
	b.RolloverHPPenalty = 25
	b.StartingTavernTokens = 1
	return b
}
