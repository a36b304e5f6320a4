package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/tmuxflash/internal/config"
	"github.com/smykla-skalski/tmuxflash/internal/xdg"
)

var (
	globalFlag bool
	forceFlag  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tmuxflash configuration",
	Long: `Write a configuration file with every default spelled out.

By default, creates a project configuration file (.tmuxflash/config.toml).
Use --global or -g to create the global configuration file
($XDG_CONFIG_HOME/tmuxflash/config.toml).

Use --force to overwrite an existing configuration file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(
		&globalFlag,
		"global",
		"g",
		false,
		"Initialize global configuration",
	)

	initCmd.Flags().BoolVarP(
		&forceFlag,
		"force",
		"f",
		false,
		"Overwrite existing configuration file",
	)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := initTargetPath()
	if err != nil {
		return err
	}

	if err := internalconfig.NewWriter(forceFlag).WriteFile(path, internalconfig.DefaultConfig()); err != nil {
		if errors.Is(err, internalconfig.ErrConfigExists) {
			return errors.Wrap(err, "use --force to overwrite")
		}

		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration: %s\n", path)

	return nil
}

func initTargetPath() (string, error) {
	if globalFlag {
		return xdg.GlobalConfigFile(), nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}

	return filepath.Join(workDir, internalconfig.ProjectConfigDir, internalconfig.ProjectConfigFile), nil
}
