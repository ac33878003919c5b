package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/config/file"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config.toml",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := loadSettings()
	if err != nil {
		return err
	}
	if store.Exists() && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
	}

	store.Update(file.DefaultSettings())
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Wrote default settings to %s\n", store.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := file.Marshal(store.Settings())
	if err != nil {
		return err
	}

	source := store.Path()
	if !store.Exists() {
		source += " (not found, showing defaults)"
	}
	cmd.Printf("# %s\n\n", source)
	cmd.Print(string(data))
	return nil
}
