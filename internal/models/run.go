package models

import (
	"fmt"
	"time"
)

// Implementation describes one side of a comparison: the analyzer command
// and where its captured output lands.
type Implementation struct {
	Name    string `yaml:"name"`    // Display name, e.g. "Python"
	Command string `yaml:"command"` // Shell command emitting a JSON document on stdout
	Output  string `yaml:"output"`  // File receiving the captured stdout
}

// Validate checks if required fields are present
func (i Implementation) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.Command == "" {
		return fmt.Errorf("command is required")
	}
	if i.Output == "" {
		return fmt.Errorf("output is required")
	}
	return nil
}

// RunResult represents one successful analyzer invocation
type RunResult struct {
	Implementation string        // Implementation name
	Command        string        // Command that was executed
	OutputPath     string        // File holding the captured stdout
	Duration       time.Duration // Wall-clock time from launch to exit
}

// Seconds returns the elapsed time as fractional seconds.
func (r *RunResult) Seconds() float64 {
	if r == nil {
		return 0
	}
	return r.Duration.Seconds()
}
