package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the config file is looked up when no --config
	// flag is given.
	DefaultPath = "chattally.toml"

	defaultOutput  = "answers.txt"
	configFileMode = 0o600
)

// ErrInvalid marks any startup configuration failure. The CLI reports it
// as a fatal "Invalid Config" error and exits.
var ErrInvalid = errors.New("invalid config")

// Config carries everything the process needs at startup.
type Config struct {
	Token   string // OAuth token for the chat transport
	Name    string // bot account name used to authenticate
	Channel string // chat channel to watch, defaults to Name
	Output  string // path of the published answers file
}

// Load reads the TOML config file at path. A missing file is fatal, but
// an example skeleton is written in its place so the operator has a
// template to fill in before the next start.
func Load(path string) (Config, error) {
	cfg := viper.New()
	cfg.SetConfigFile(path)
	cfg.SetConfigType("toml")
	cfg.SetDefault("board.output", defaultOutput)

	if err := cfg.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if werr := writeExample(path); werr != nil {
				return Config{}, fmt.Errorf("%w: %s missing, writing example failed: %v", ErrInvalid, path, werr)
			}
			return Config{}, fmt.Errorf("%w: %s missing, example written", ErrInvalid, path)
		}
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalid, path, err)
	}

	c := Config{
		Token:   strings.TrimSpace(cfg.GetString("auth.token")),
		Name:    strings.TrimSpace(cfg.GetString("auth.name")),
		Channel: strings.TrimSpace(cfg.GetString("chat.channel")),
		Output:  cfg.GetString("board.output"),
	}

	if c.Token == "" {
		return Config{}, fmt.Errorf("%w: auth.token is required", ErrInvalid)
	}
	if c.Name == "" {
		return Config{}, fmt.Errorf("%w: auth.name is required", ErrInvalid)
	}
	if c.Channel == "" {
		c.Channel = c.Name
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}

	return c, nil
}

type fileSchema struct {
	Auth  authSchema  `toml:"auth"`
	Chat  chatSchema  `toml:"chat"`
	Board boardSchema `toml:"board"`
}

type authSchema struct {
	Token string `toml:"token"`
	Name  string `toml:"name"`
}

type chatSchema struct {
	Channel string `toml:"channel"`
}

type boardSchema struct {
	Output string `toml:"output"`
}

func writeExample(path string) error {
	// token and name stay empty on purpose: the template must not pass
	// validation until the operator fills it in
	data, err := toml.Marshal(fileSchema{
		Chat:  chatSchema{Channel: "channel-to-watch"},
		Board: boardSchema{Output: defaultOutput},
	})
	if err != nil {
		return fmt.Errorf("encode example config: %w", err)
	}

	return os.WriteFile(path, data, configFileMode)
}
