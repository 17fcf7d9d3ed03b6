package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the optional JSON
// configuration file. Durations are accepted as strings like "1h" or "30s".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenPrefix   string   `json:"token_prefix"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Gateway struct {
		Blacklist     []string `json:"blacklist"`
		Whitelist     []string `json:"whitelist"`
		TokenHeader   string   `json:"token_header"`
		DebugHeader   string   `json:"debug_header"`
		DebugBypass   bool     `json:"debug_bypass"`
		Strategy      string   `json:"strategy"`
		LoginPath     string   `json:"login_path"`
		LookupTimeout Duration `json:"lookup_timeout"`
		LookupRetries int      `json:"lookup_retries"`
		Routes        []Route  `json:"routes"`
	} `json:"gateway,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenPrefix:   jsonCfg.App.TokenPrefix,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Gateway: Gateway{
			Blacklist:     jsonCfg.Gateway.Blacklist,
			Whitelist:     jsonCfg.Gateway.Whitelist,
			TokenHeader:   jsonCfg.Gateway.TokenHeader,
			DebugHeader:   jsonCfg.Gateway.DebugHeader,
			DebugBypass:   jsonCfg.Gateway.DebugBypass,
			Strategy:      jsonCfg.Gateway.Strategy,
			LoginPath:     jsonCfg.Gateway.LoginPath,
			LookupTimeout: time.Duration(jsonCfg.Gateway.LookupTimeout),
			LookupRetries: jsonCfg.Gateway.LookupRetries,
			Routes:        jsonCfg.Gateway.Routes,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h" and "30s", as well as from bare nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration: want string or number")
	}
}
