package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/wgapi"

var (
	version   = "dev"
	buildTime = "unknown"
)

// errDevBuild is returned when a development build is asked to update itself
var errDevBuild = errors.New("cannot update a development build")

// SetVersion sets the version information reported by the version command
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd.OutOrStdout(), version, buildTime)
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update wgapi to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runUpdate(ctx, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func printVersion(out io.Writer, v, bt string) {
	fmt.Fprintf(out, "wgapi %s\n", v)
	fmt.Fprintf(out, "Build time: %s\n", bt)
	if _, err := parseVersion(v); err != nil {
		fmt.Fprintln(out, "Development build")
	}
}

// parseVersion parses a release version, tolerating a leading "v"
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%w: %q is not a release version", errDevBuild, v)
	}
	return parsed, nil
}

// needsUpdate reports whether latest is newer than current
func needsUpdate(current, latest string) (bool, error) {
	cur, err := parseVersion(current)
	if err != nil {
		return false, err
	}
	lat, err := semver.ParseTolerant(latest)
	if err != nil {
		return false, fmt.Errorf("invalid release version %q: %w", latest, err)
	}
	return lat.GT(cur), nil
}

func runUpdate(ctx context.Context, out io.Writer) error {
	if _, err := parseVersion(version); err != nil {
		return err
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	newer, err := needsUpdate(version, latest.Version())
	if err != nil {
		return err
	}
	if !newer {
		fmt.Fprintf(out, "Already up to date (%s)\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("current", version).
		Str("latest", latest.Version()).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "Updated to %s\n", latest.Version())
	return nil
}
