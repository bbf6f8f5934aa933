// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/datafix/internal/store"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the output theme",
	Long:      `Theme prints the saved theme, or saves a new one. The default is dark.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var theme store.Theme
	switch {
	case len(args) == 0:
		theme, err = st.Theme(ctx)
	case args[0] == "toggle":
		theme, err = st.ToggleTheme(ctx)
	default:
		theme, err = store.ParseTheme(args[0])
		if err == nil {
			err = st.SetTheme(ctx, theme)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), theme)
	return nil
}
