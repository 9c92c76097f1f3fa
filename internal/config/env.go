package config

import (
	"github.com/caarlos0/env/v11"
)

type envOverrides struct {
	Addr              string `env:"LIFERPG_ADDR"`
	DataDir           string `env:"LIFERPG_DATA_DIR"`
	PlayerName        string `env:"LIFERPG_PLAYER_NAME"`
	Difficulty        string `env:"LIFERPG_DIFFICULTY"`
	QuestXP           int    `env:"LIFERPG_QUEST_XP"`
	RolloverHPPenalty int    `env:"LIFERPG_ROLLOVER_HP_PENALTY"`
}

// ApplyEnv overlays environment overrides onto a loaded config.
// LIFERPG_DIFFICULTY selects a balance preset (casual, hard) before the
// per-value overrides land.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return err
	}

	switch o.Difficulty {
	case "casual":
		cfg.Balance = CasualBalance()
	case "hard":
		cfg.Balance = HardBalance()
	}

	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.PlayerName != "" {
		cfg.PlayerName = o.PlayerName
	}
	if o.QuestXP > 0 {
		cfg.Balance.QuestXP = o.QuestXP
	}
	if o.RolloverHPPenalty > 0 {
		cfg.Balance.RolloverHPPenalty = o.RolloverHPPenalty
	}
	return nil
}
