package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrimshady/scrimshady/internal/effects"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks the config for invalid values and returns all problems
// found. Dangerous values that would break window or swap-chain creation
// are clamped to a safe range; those clamps are reported but do not
// prevent startup.
func (c *Config) Validate() []error {
	var errs []error

	if c.Window.Width < 160 || c.Window.Width > 7680 {
		errs = append(errs, fmt.Errorf("window.width %d outside 160..7680, clamping", c.Window.Width))
		c.Window.Width = clamp(c.Window.Width, 160, 7680)
	}
	if c.Window.Height < 120 || c.Window.Height > 4320 {
		errs = append(errs, fmt.Errorf("window.height %d outside 120..4320, clamping", c.Window.Height))
		c.Window.Height = clamp(c.Window.Height, 120, 4320)
	}
	if c.Window.Title == "" {
		c.Window.Title = Default().Window.Title
	}

	if c.Capture.DisplayIndex < 0 {
		errs = append(errs, fmt.Errorf("capture.display_index %d is negative, using 0", c.Capture.DisplayIndex))
		c.Capture.DisplayIndex = 0
	}

	if _, ok := ResolveEffect(c.Effects.Start); !ok {
		errs = append(errs, fmt.Errorf("effects.start %q is not a known effect (known: %s), using default",
			c.Effects.Start, strings.Join(effects.Names(), ", ")))
		c.Effects.Start = Default().Effects.Start
	}

	if c.Screenshot.Prefix == "" {
		c.Screenshot.Prefix = Default().Screenshot.Prefix
	}
	if strings.ContainsAny(c.Screenshot.Prefix, `/\:*?"<>|`) {
		errs = append(errs, fmt.Errorf("screenshot.prefix %q contains path separators or reserved characters, using default", c.Screenshot.Prefix))
		c.Screenshot.Prefix = Default().Screenshot.Prefix
	}
	if c.Screenshot.Dir == "" {
		c.Screenshot.Dir = "."
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("unknown log.level %q, using info", c.Log.Level))
		c.Log.Level = "info"
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, fmt.Errorf("unknown log.format %q, using text", c.Log.Format))
		c.Log.Format = "text"
	}

	return errs
}

// ResolveEffect maps a config value, either an effect name or a
// 1-based ordinal, to a roster index.
func ResolveEffect(s string) (int, bool) {
	if idx, ok := effects.IndexByName(s); ok {
		return idx, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(effects.Names()) {
			return n - 1, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
