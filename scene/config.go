package scene

import (
	"encoding/json"
	"io/ioutil"
)

// Config defines all the required settings for the pose service
type Config struct {
	ListenAddr   string `json:"ListenAddr"`
	WorkspaceDir string `json:"WorkspaceDir"`
	EnableAuth   bool   `json:"EnableAuth"`
	Vault        Vault  `json:"Vault"`
}

// DefaultConfig returns the settings which are used when no config file is
// given
func DefaultConfig() Config {
	return Config{
		ListenAddr:   ":8080",
		WorkspaceDir: "workspace",
	}
}

// LoadConfig reads the JSON config file from the given path. Missing fields
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
