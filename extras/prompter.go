package extras

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// TerminalPrompter provides interactive capability selection in a terminal.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PickCapabilities asks the user to choose capability bundles from the
// registry. preselected names are checked by default.
func (p *TerminalPrompter) PickCapabilities(reg *Registry, preselected []string) ([]string, error) {
	if !p.IsInteractive() {
		return nil, fmt.Errorf("capability selection requires an interactive terminal")
	}

	names := reg.List()
	options := make([]huh.Option[string], 0, len(names))
	checked := make(map[string]bool, len(preselected))
	for _, name := range preselected {
		checked[name] = true
	}

	for _, name := range names {
		reqs, err := reg.Bundle(name)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("%s (%d requirements)", name, len(reqs))
		options = append(options, huh.NewOption(label, name).Selected(checked[name]))
	}

	var selection []string
	err := huh.NewMultiSelect[string]().
		Title("Optional integrations").
		Description("Selected bundles are resolved together with the core requirements.").
		Options(options...).
		Value(&selection).
		Run()
	if err != nil {
		return nil, err
	}
	return selection, nil
}
