// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/datafix/internal/batch"
	"github.com/pdiddy/datafix/internal/download"
	"github.com/pdiddy/datafix/internal/remote"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files.pkg...]",
	Short: "Convert .pkg files and save the generated scripts",
	Long: `Upload sends each .pkg file to the conversion service and saves the
generated script under the filename the service returns. Files without the
.pkg suffix are rejected locally and never sent. A failure on one file does
not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringP("out", "o", ".", "directory generated scripts are saved into")
	uploadCmd.Flags().Int("parallel", 1, "number of files submitted at once")

	if err := viper.BindPFlag("output.dir", uploadCmd.Flags().Lookup("out")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("upload.parallel", uploadCmd.Flags().Lookup("parallel")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	saver := download.FileSaver{Dir: cfg.Output.Dir}
	runner := &batch.Runner{
		Uploader: client,
		Saver:    saver,
		Recorder: st,
		Effects:  fx,
		Logger:   logger,
		Parallel: cfg.Upload.Parallel,
		Where: func(name string) string {
			p, err := saver.Path(name)
			if err != nil {
				return name
			}
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		},
	}

	result := runner.Run(ctx, args, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}
