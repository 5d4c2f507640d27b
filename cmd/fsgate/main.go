package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yanmxa/fsgate/internal/config"
	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/log"
	"github.com/yanmxa/fsgate/internal/policy"
)

var (
	version = "0.1.0"
)

func init() {
	// Load .env file if it exists (silent fail if not found)
	_ = godotenv.Load()

	// Initialize logging (enabled via FSGATE_DEBUG=1)
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

var (
	configFlag string
	prettyFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "fsgate",
	Short: "fsgate - policy-enforcing read-only filesystem gateway",
	Long: `fsgate exposes read_file, list_directory, get_file_info and search_files
to untrusted callers while enforcing restricted paths, an extension
allowlist, binary category toggles and a file size ceiling.

Settings are loaded from (lowest to highest priority):
  ~/.fsgate/settings.{json,yaml,yml}          User level
  ./.fsgate/settings.{json,yaml,yml}          Project level
  ./.fsgate/settings.local.{json,yaml,yml}    Local level (git-ignored)
  --config <file>                             Explicit file
  FSGATE_* environment variables`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fsgate version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Settings file layered above the default locations")
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", false, "Render results for humans instead of JSON")

	rootCmd.AddCommand(versionCmd)
}

// newLoader returns the settings loader honoring --config.
func newLoader() *config.Loader {
	loader := config.NewLoader()
	if configFlag != "" {
		loader.WithFile(configFlag)
	}
	return loader
}

// loadPolicy loads settings and builds the policy. Any failure here is a
// configuration error.
func loadPolicy(loader *config.Loader) (*config.Settings, *policy.Policy, error) {
	settings, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	p, err := settings.Policy()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid policy: %w", err)
	}
	if log.IsEnabled() {
		log.Logger().Info("[policy] loaded", log.PolicyField(p))
	}
	return settings, p, nil
}

// newExecutor builds an executor over source using the search limits from
// settings.
func newExecutor(settings *config.Settings, source policy.Source, observer fsops.Observer) *fsops.Executor {
	return fsops.New(source, fsops.Options{
		MaxSearchResults: settings.SearchLimit(),
		Observer:         observer,
	})
}
