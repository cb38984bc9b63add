package config

import (
	"fmt"
	"strings"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate runs structural checks against the config and returns the
// findings. Call after ApplyDefaults.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersion()...)
	results = append(results, c.validateTailwind()...)
	results = append(results, c.validateServe()...)
	return results
}

// Check returns the first error-level finding as an error, or nil when
// the config only carries warnings.
func (c Config) Check() error {
	for _, r := range c.Validate() {
		if r.Level == "error" {
			return fmt.Errorf("config: %s", r.Message)
		}
	}
	return nil
}

func (c Config) validateVersion() []ValidationResult {
	if c.Version != CurrentVersion {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("unsupported config version %d (this build reads version %d)", c.Version, CurrentVersion),
		}}
	}
	return nil
}

func (c Config) validateTailwind() []ValidationResult {
	var results []ValidationResult
	if strings.TrimSpace(c.Tailwind.Input) == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "tailwind.input must name the stylesheet entry point",
		})
	}
	if strings.TrimSpace(c.Tailwind.Output) == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "tailwind.output must name the compiled stylesheet path",
		})
	}
	if c.Tailwind.Input != "" && c.Tailwind.Input == c.Tailwind.Output {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "tailwind.input and tailwind.output point at the same file",
		})
	}
	return results
}

func (c Config) validateServe() []ValidationResult {
	var results []ValidationResult
	if strings.TrimSpace(c.Serve.Command) == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "serve.command must not be blank",
		})
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("serve.port %d outside 0-65535", c.Serve.Port),
		})
	}
	for _, path := range c.Serve.Watch {
		if strings.TrimSpace(path) == "" {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: "serve.watch contains a blank path entry",
			})
		}
	}
	return results
}
