package config

import (
	"os"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"stegimg/stego"
	"stegimg/util"
)

/*
 * Configuration of the local API server.
 */
type ServerConfiguration struct {
	Address		string		`yaml:"address"`
	AllowedOrigins	[]string	`yaml:"allowed_origins"`
	MaxUploadMB	int64		`yaml:"max_upload_mb"`
}

/*
 * Default codec parameters, used whenever a caller does not spell
 * them out. Channels is a string of channel letters, e.g. "rgb".
 */
type CodecConfig struct {
	BitsPerChannel	uint8	`yaml:"bits_per_channel"`
	Channels	string	`yaml:"channels"`
	Framing		string	`yaml:"framing"`
}

/*
 * Full configuration of the tool.
 */
type FullConfig struct {
	ServerConfig	ServerConfiguration	`yaml:"local_server_config"`
	Codec		CodecConfig		`yaml:"codec_config"`
	Logger		util.LoggerInfo		`yaml:"logger_config"`
}

// ToStego resolves the yaml representation into a codec config.
func( c CodecConfig ) ToStego() (stego.Config, error) {
	cfg := stego.Config{
		BitsPerChannel: c.BitsPerChannel,
	}

	for _, letter := range strings.ToLower( c.Channels ) {
		switch letter {
		case 'r':
			cfg.Channels |= stego.RMode
		case 'g':
			cfg.Channels |= stego.GMode
		case 'b':
			cfg.Channels |= stego.BMode
		case 'a':
			cfg.Channels |= stego.AMode
		default:
			return cfg, fmt.Errorf("unknown channel letter %q", letter)
		}
	}

	switch c.Framing {
	case "", "length-prefix":
		cfg.Framing = stego.LengthPrefix
	case "terminator":
		cfg.Framing = stego.Terminator
	default:
		return cfg, fmt.Errorf("unknown framing strategy %q", c.Framing)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig( filename string ) (*FullConfig, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}

	var conf FullConfig
	if err := yaml.Unmarshal( data, &conf ); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig( filename string, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return os.WriteFile( filename, data, 0600 )
}

func DefaultConfig( logFile string ) *FullConfig {
	return &FullConfig{
		ServerConfig: ServerConfiguration{
			Address: "127.0.0.1:8080",
			AllowedOrigins: []string{ "http://localhost:3000" },
			MaxUploadMB: 32,
		},
		Codec: CodecConfig{
			BitsPerChannel: 1,
			Channels: "rgb",
			Framing: "length-prefix",
		},
		Logger: util.LoggerInfo{
			Filename: logFile,
			IsColored: true,
			SaveTime: true,
			Mode: util.Error | util.Warning,
		},
	}
}
