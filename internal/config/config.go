package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr       string  `yaml:"addr" json:"addr"`
	DataDir    string  `yaml:"data_dir" json:"data_dir"`
	PlayerName string  `yaml:"player_name" json:"player_name"`
	Balance    Balance `yaml:"balance" json:"balance"`
}

func Default() Config {
	return Config{
		Addr:       ":8310",
		DataDir:    "data",
		PlayerName: "Neto",
		Balance:    DefaultBalance(),
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.PlayerName == "" {
		c.PlayerName = d.PlayerName
	}
	if c.Balance == (Balance{}) {
		c.Balance = d.Balance
	}
}

// Load reads the YAML config. A missing file yields the defaults; a
// malformed one is an error so typos never silently retune the game.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			return &cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}
