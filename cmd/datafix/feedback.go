// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/datafix/internal/feedback"
	"github.com/pdiddy/datafix/internal/remote"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [text...]",
	Short: "Send feedback to the service owners",
	Long: `Feedback posts free text to the service. With no arguments the text is
read from standard input. Blank feedback is not sent.`,
	RunE: runFeedback,
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading feedback: %w", err)
		}
		text = string(data)
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	client, err := remote.New(clientConfig(cfg), nil)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := newLogger(os.Stderr)
	fx := chooseEffects(ctx, st)
	showWelcomeOnce(ctx, st, fx, os.Stdout, logger)

	form := feedback.NewForm(client, logger)
	form.SetText(text)

	stop := fx.Spin(os.Stdout, "Submitting...")
	ok := form.Submit(ctx)
	stop()

	if ok {
		fmt.Fprintln(os.Stdout, fx.Accent(form.Confirmation().Text()))
	}
	return nil
}
