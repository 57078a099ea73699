package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors StructuredConfig for JSON files.
type StructuredJSONConfig struct {
	App struct {
		BuilderOptionKey string `json:"builder_option_key"`
		FeatureName      string `json:"feature_name"`
		WrapperClass     string `json:"wrapper_class"`
		NoWrapperClass   bool   `json:"no_wrapper_class"`
		EscapeFactor     int    `json:"escape_factor"`
		DedupWindow      int    `json:"dedup_window"`
		ImportOptionsKey string `json:"import_options_key"`
		Version          string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver        string `json:"driver"`
			DSN           string `json:"dsn"`
			UnslashRounds int    `json:"unslash_rounds"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
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
			BuilderOptionKey: jsonCfg.App.BuilderOptionKey,
			FeatureName:      jsonCfg.App.FeatureName,
			WrapperClass:     jsonCfg.App.WrapperClass,
			NoWrapperClass:   jsonCfg.App.NoWrapperClass,
			EscapeFactor:     jsonCfg.App.EscapeFactor,
			DedupWindow:      jsonCfg.App.DedupWindow,
			ImportOptionsKey: jsonCfg.App.ImportOptionsKey,
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver:        jsonCfg.Storage.DB.Driver,
				DSN:           jsonCfg.Storage.DB.DSN,
				UnslashRounds: jsonCfg.Storage.DB.UnslashRounds,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
	}

	return cfg, nil
}

// UnmarshalJSON accepts "30s"-style strings and plain nanosecond numbers.
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
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
