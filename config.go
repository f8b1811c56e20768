package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/duhrer/guitarompler/audio"
)

const defaultConfig = `
{
	"level": -6.0,
	"midiPort": "",
	"samples": [
		{ "url": "samples/a2.wav", "basePitch": 45, "offsets": { "low": -6, "high": 5 } },
		{ "url": "samples/a3.wav", "basePitch": 57, "offsets": { "low": -6, "high": 5 } },
		{ "url": "samples/a4.wav", "basePitch": 69, "offsets": { "low": -6, "high": 5 } }
	]
}
`

type OffsetRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type SampleConfig struct {
	URL       string      `json:"url"`
	BasePitch int         `json:"basePitch"`
	Offsets   OffsetRange `json:"offsets"`
}

type Config struct {
	Level    float64        `json:"level"`
	MIDIPort string         `json:"midiPort"`
	Samples  []SampleConfig `json:"samples"`
}

func ReadConfig(p string) (*Config, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(p, []byte(defaultConfig), 0644); err != nil {
			return nil, fmt.Errorf("can't write default config: %w", err)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if len(c.Samples) == 0 {
		return errors.New("config: no samples configured")
	}
	for _, s := range c.Samples {
		if s.URL == "" {
			return errors.New("config: sample without url")
		}
		if s.Offsets.Low > s.Offsets.High {
			return fmt.Errorf("config: %s: inverted offset range %d..%d", s.URL, s.Offsets.Low, s.Offsets.High)
		}
		if s.BasePitch+s.Offsets.Low < 0 || s.BasePitch+s.Offsets.High > 127 {
			return fmt.Errorf("config: %s: pitches %d..%d outside 0..127",
				s.URL, s.BasePitch+s.Offsets.Low, s.BasePitch+s.Offsets.High)
		}
	}
	return nil
}

// families converts the sample list into family configs, preserving the
// declared order: on overlapping pitch ranges, later samples win.
func (c *Config) families() []audio.FamilyConfig {
	var configs []audio.FamilyConfig
	for _, s := range c.Samples {
		configs = append(configs, audio.FamilyConfig{
			URL:       s.URL,
			BasePitch: s.BasePitch,
			Low:       s.Offsets.Low,
			High:      s.Offsets.High,
		})
	}
	return configs
}
