package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.grimoire/config.toml.

Keys use dot notation, for example data.dir, query.limit or
categories.starships. Category overrides take a "mainType/SubType" value.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Example: `  grimoire settings set data.dir ~/rules/data
  grimoire settings set data.source github
  grimoire settings set github.repo owner/rules-data
  grimoire settings set categories.starships equipment/Vehicles`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:     "unset <key>",
	Short:   "Restore a setting to its default",
	Example: "  grimoire settings unset categories.starships",
	Args:    cobra.ExactArgs(1),
	RunE:    runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	cmd.Printf("  Source: %s\n", settings.Data.Source.Description())
	cmd.Printf("  Directory: %s\n", settings.Data.Dir)
	cmd.Printf("  Manifest: %s\n", settings.Data.Manifest)
	cmd.Println()

	cmd.Println("[GitHub]")
	if settings.GitHub.Repo == "" {
		cmd.Println("  Repository: (not set)")
	} else {
		cmd.Printf("  Repository: %s\n", settings.GitHub.Repo)
		cmd.Printf("  Ref: %s\n", orDefault(settings.GitHub.Ref, "(default branch)"))
		cmd.Printf("  Path: %s\n", orDefault(settings.GitHub.Path, "/"))
	}
	if settings.GitHub.Token != "" {
		cmd.Printf("  Token: %s\n", maskToken(settings.GitHub.Token))
	} else {
		cmd.Println("  Token: (not set)")
	}
	cmd.Println()

	cmd.Println("[Load]")
	cmd.Printf("  Concurrency: %d\n", settings.Load.Concurrency)
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Limit: %d\n", settings.Query.Limit)
	cmd.Printf("  Match category: %t\n", settings.Query.MatchCategory)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Interval: %dms\n", settings.Watch.IntervalMs)
	cmd.Println()

	cmd.Println("[Serve]")
	cmd.Printf("  Address: %s\n", settings.Serve.Addr)

	if len(settings.Categories) > 0 {
		cmd.Println()
		cmd.Println("[Categories]")
		keys := make([]string, 0, len(settings.Categories))
		for k := range settings.Categories {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, settings.Categories[k])
		}
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated.\n", args[0])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return err
	}
	cmd.Printf("%s reset to default.\n", args[0])
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// maskToken keeps the GitHub token prefix (ghp_, github_pat_) readable.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "****"
	}
	prefix := 4
	if i := strings.LastIndex(token[:12], "_"); i >= 0 {
		prefix = i + 1
	}
	return token[:prefix] + "****" + token[len(token)-4:]
}
