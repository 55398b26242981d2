// ABOUTME: Interactive credential prompt for the dexshare CLI
// ABOUTME: Collects Share username and password when the environment has none

package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/loopnlearn/dexshare/config"
)

// promptCredentials fills in missing Share credentials interactively.
func promptCredentials(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Share account name").
				Value(&cfg.Username).
				Validate(nonEmpty("account name")),
			huh.NewInput().
				Title("Share password").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Password).
				Validate(nonEmpty("password")),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("credentials required: set SHARE_USERNAME and SHARE_PASSWORD or run interactively (%w)", err)
	}
	return nil
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
