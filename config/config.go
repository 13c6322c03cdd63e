package config

import (
	"fmt"
	"time"

	"github.com/soocke/pixel-click-go/domain/capture"
)

// Capture backends, re-exported for flag defaults and validation.
const (
	BackendVova    = capture.BackendVova
	BackendDisplay = capture.BackendDisplay
	BackendGDI     = capture.BackendGDI
)

// Config holds runtime configuration for detection and actuation.
// Values are populated from command-line flags; there is no config file.
type Config struct {
	Debug bool
	// Detection parameters
	Template     string
	Threshold    float64
	Timeout      time.Duration
	PollInterval time.Duration
	Seed         uint64 // 0 selects a time-based seed
	// Capture
	Backend string
	// Actuation
	Double bool
	// Crop margins around a detected box
	CropLeft   int
	CropRight  int
	CropTop    int
	CropBottom int
	CropOut    string
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		Template:     "example.png",
		Threshold:    0.90,
		Timeout:      3 * time.Second,
		PollInterval: 100 * time.Millisecond,
		Backend:      BackendVova,
		CropLeft:     80,
		CropRight:    100,
		CropTop:      50,
		CropBottom:   15,
		CropOut:      "crop.png",
	}
}

// Validate normalizes values to safe ranges. A threshold outside [0,1] is an
// error; detection does no clamping of its own.
func (c *Config) Validate() error {
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return fmt.Errorf("threshold %v outside [0,1]", c.Threshold)
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	switch c.Backend {
	case BackendVova, BackendDisplay, BackendGDI:
	default:
		c.Backend = BackendVova
	}
	if c.CropLeft < 0 {
		c.CropLeft = 0
	}
	if c.CropRight < 0 {
		c.CropRight = 0
	}
	if c.CropTop < 0 {
		c.CropTop = 0
	}
	if c.CropBottom < 0 {
		c.CropBottom = 0
	}
	if c.CropOut == "" {
		c.CropOut = "crop.png"
	}
	return nil
}
