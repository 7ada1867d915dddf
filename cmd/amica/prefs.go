package main

import (
	"fmt"

	"github.com/spf13/cobra"

	domainPreferences "github.com/amica/backend/internal/domain/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change client preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		theme, err := client.Preferences.Theme()
		if err != nil {
			return err
		}
		prompt, err := client.Preferences.ShouldPromptInstall()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "theme:          %s\n", theme)
		fmt.Fprintf(out, "install prompt: %t\n", prompt)
		fmt.Fprintf(out, "server:         %s\n", client.Config.APIURL)
		return nil
	},
}

var prefsThemeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or set the theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if len(args) == 0 {
			theme, err := client.Preferences.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		}

		var theme domainPreferences.Theme
		if args[0] == "toggle" {
			theme, err = client.Preferences.ToggleTheme()
		} else {
			theme, err = client.Preferences.SetTheme(args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

var prefsDismissInstallCmd = &cobra.Command{
	Use:   "dismiss-install",
	Short: "Hide the install suggestion for 7 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		return client.Preferences.DismissInstall()
	},
}

var prefsInstalledCmd = &cobra.Command{
	Use:   "installed",
	Short: "Mark the client as installed and open the welcome conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Preferences.DismissInstall(); err != nil {
			return err
		}
		created, err := client.Session.Welcome()
		if err != nil {
			return err
		}
		if created {
			conv := client.Store.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", conv.Title, conv.Messages[0].Content)
		}
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsThemeCmd)
	prefsCmd.AddCommand(prefsDismissInstallCmd)
	prefsCmd.AddCommand(prefsInstalledCmd)
}
