package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage the location → country code table",
	Long: `The location table maps free-text author locations ("Berlin, Germany")
to country codes ("DE"). Matching is exact; unmapped locations become null
during prepare.`,
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <location> <code>",
	Short: "Add or replace a mapping",
	Args:  cobra.ExactArgs(2),
	RunE:  runLocationsAdd,
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all mappings",
	RunE:  runLocationsList,
}

var locationsImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Import mappings from a TOML file",
	Long: `Imports a TOML document of "raw location" = "CC" pairs. Existing
mappings for the same location are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocationsImport,
}

func init() {
	locationsCmd.AddCommand(locationsAddCmd)
	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsImportCmd)
	rootCmd.AddCommand(locationsCmd)
}

// openSettingsStore loads settings and opens the corpus store they point to.
func openSettingsStore() (corpusStore, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	store, err := openStore(settings.DBDir())
	if err != nil {
		return nil, fmt.Errorf("open corpus store: %w", err)
	}
	return store, nil
}

func runLocationsAdd(cmd *cobra.Command, args []string) error {
	raw, code := args[0], strings.TrimSpace(args[1])
	if raw == "" || code == "" {
		return errors.New("location and code must not be empty")
	}

	store, err := openSettingsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutLocation(cmd.Context(), raw, code); err != nil {
		return fmt.Errorf("failed to add location: %w", err)
	}
	cmd.Printf("%q → %s\n", raw, code)
	return nil
}

func runLocationsList(cmd *cobra.Command, _ []string) error {
	store, err := openSettingsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	codes, err := store.Locations(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}
	if len(codes) == 0 {
		cmd.Println("No locations configured.")
		return nil
	}

	table := memory.NewLocationTable(codes)
	for _, raw := range table.Keys() {
		code, _ := table.Lookup(raw)
		cmd.Printf("%-40s %s\n", raw, code)
	}
	return nil
}

func runLocationsImport(cmd *cobra.Command, args []string) error {
	table, err := memory.LoadLocationTable(args[0])
	if err != nil {
		return err
	}

	store, err := openSettingsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	imported := 0
	for raw, code := range table.Map() {
		if raw == "" || code == "" {
			cmd.PrintErrf("skipping empty mapping %q = %q\n", raw, code)
			continue
		}
		if err := store.PutLocation(cmd.Context(), raw, code); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				continue
			}
			return fmt.Errorf("failed to import %q: %w", raw, err)
		}
		imported++
	}
	cmd.Printf("Imported %d locations from %s\n", imported, args[0])
	return nil
}
