package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobil-koeln/mvg-tui/internal/api"
	"github.com/mobil-koeln/mvg-tui/internal/cache"
	"github.com/mobil-koeln/mvg-tui/internal/config"
	"github.com/mobil-koeln/mvg-tui/internal/logging"
	"github.com/mobil-koeln/mvg-tui/internal/models"
	"github.com/mobil-koeln/mvg-tui/internal/output"
	"github.com/mobil-koeln/mvg-tui/internal/state"
	"github.com/mobil-koeln/mvg-tui/internal/tui"
)

var version = "0.1.0"

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mvg",
	Short: "Live departure board for Munich public transport",
	Long: `mvg shows live departures of the Munich public transport network
(MVG) in your terminal.

Features:
  - Full-screen departure board with automatic refresh
  - Station picker and incremental station search
  - Transport type filter and favorite directions from the config file
  - JSON output and a watch mode for scripting
  - Response caching for the station list

Quick Start:
  1. Launch TUI:               mvg (or mvg tui)
  2. List stations:            mvg stations Marienplatz
  3. Search for a station:     mvg search "Garching"
  4. Show departures:          mvg departures de:09162:2
  5. Drop cached responses:    mvg cache clear

The station index printed by 'mvg stations' is the value expected by
fav_station_idx in the config file.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig   string
	flagNoCache  bool
	flagLogLevel string
	flagLogFile  string
	flagColor    string
)

// Command flags
var (
	flagJSON     bool
	flagWatch    bool
	flagMessages bool
)

// cfg is loaded once by setup before any command runs.
var cfg config.Config

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ./config.toml, then the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default $"+logging.LogLevelEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default "+logging.DefaultLogPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")

	stationsCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")

	departuresCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	departuresCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh every refresh_rate seconds")
	departuresCmd.Flags().BoolVarP(&flagMessages, "messages", "m", false, "Show service messages below each departure")

	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// setup loads the config file and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	logPath := flagLogFile
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}
	if err := logging.Initialize(flagLogLevel, logPath); err != nil {
		return err
	}
	logging.Debug("Config loaded",
		zap.String("path", cfg.Path),
		zap.Int("refresh_rate", cfg.RefreshRate),
		zap.Strings("transport", cfg.Transport),
	)

	if unknown := cfg.UnknownTransports(api.TransportTypes); len(unknown) > 0 {
		logging.Warn("Unknown transport types in config", zap.Strings("types", unknown))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown transport types %s (known: %s)\n",
			strings.Join(unknown, ", "), strings.Join(api.TransportTypes, ", "))
	}
	return nil
}

// createClient creates an API client from the loaded config
func createClient() (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.APITimeout),
		api.WithDepartureLimit(cfg.DepartureLimit),
		api.WithLogger(logging.GetLogger()),
		api.WithUserAgent(userAgent()),
	}

	// Enable caching unless disabled
	if !flagNoCache {
		opts = append(opts, api.WithDefaultCache())
	}

	client, err := api.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

func userAgent() string {
	return "mvg-tui/" + version + " (+https://github.com/mobil-koeln/mvg-tui)"
}

// getColors returns the table colors selected by the --color flag
func getColors() *output.Colors {
	return output.NewColors(output.ParseColorMode(flagColor))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive departure board",
	Long: `Launch the full-screen departure board.

Keyboard (normal mode):
  Tab            Switch between departures and the station list
  j/k or arrows  Move the cursor
  g / G          First / last entry
  Esc            Clear the cursor
  Enter          Show departures of the highlighted station
  / or s         Search a station by name
  r              Refresh now
  ?              More keys
  q, Ctrl+C      Quit

Keyboard (search mode):
  Up/Down        Choose a suggestion
  Left/Right     Move the text cursor
  Enter          Show departures of the chosen suggestion
  Esc            Leave search`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	app, err := state.New(cfg.Options())
	if err != nil {
		return err
	}

	model := tui.New(app, client, tui.Settings{
		RefreshInterval: cfg.RefreshInterval(),
		RequestTimeout:  cfg.APITimeout,
		DisplaySeconds:  cfg.DisplaySeconds,
	})
	logging.Info("Starting departure board", zap.String("version", version))

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

var stationsCmd = &cobra.Command{
	Use:   "stations [filter]",
	Short: "List all stations with their index",
	Long: `List all stations of the network.

The number in front of each station is its index in the list; put it into
fav_station_idx to open that station when the board starts. An optional
filter keeps stations whose name contains it, without renumbering.

Examples:
  mvg stations
  mvg stations Garching
  mvg stations --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStations,
}

func runStations(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	stations, err := client.ListStations(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), stations)
	}

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}
	output.RenderStations(cmd.OutOrStdout(), stations, output.StationListOptions{
		Colors:        getColors(),
		Filter:        filter,
		FavStationIdx: cfg.FavStationIdx,
	})
	return nil
}

var departuresCmd = &cobra.Command{
	Use:   "departures <station-id>",
	Short: "Show departures at a station",
	Long: `Show upcoming departures at a station.

The station is given by its global id, e.g. de:09162:2 for Marienplatz.
Use 'mvg search <name>' or 'mvg stations' to find station ids.

The transport filter and favorite directions from the config file apply.

Examples:
  mvg departures de:09162:2
  mvg departures de:09162:2 --json
  mvg departures de:09162:2 --watch       # Refresh every refresh_rate seconds
  mvg departures de:09162:2 --messages    # Include service messages`,
	Args: cobra.ExactArgs(1),
	RunE: runDepartures,
}

func runDepartures(cmd *cobra.Command, args []string) error {
	stationID := args[0]

	client, err := createClient()
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context) ([]models.Departure, error) {
		deps, err := client.ListDepartures(ctx, stationID)
		if err != nil {
			return nil, err
		}
		return state.FilterDepartures(deps, cfg.Transport), nil
	}

	w := cmd.OutOrStdout()
	loc := client.Timezone()

	if flagWatch {
		return runWatch(cmd.Context(), w, cfg.RefreshInterval(), loc, func(ctx context.Context) error {
			deps, err := fetch(ctx)
			if err != nil {
				return err
			}
			renderDepartures(w, deps, time.Now().In(loc))
			return nil
		})
	}

	departures, err := fetch(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(w, departures)
	}
	renderDepartures(w, departures, time.Now().In(loc))
	return nil
}

func renderDepartures(w io.Writer, deps []models.Departure, now time.Time) {
	output.RenderDepartures(w, deps, output.TableOptions{
		Colors:        getColors(),
		Now:           now,
		Width:         output.Width(os.Stdout),
		FavDirections: cfg.FavDirections,
		ShowMessages:  flagMessages,
	})
}

// runWatch runs a continuous refresh loop until interrupted
func runWatch(ctx context.Context, w io.Writer, interval time.Duration, loc *time.Location, fetchAndRender func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := output.SignalContext(ctx)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	output.HideCursor(w)
	defer output.ShowCursor(w)

	for {
		output.ClearScreen(w)

		now := time.Now().In(loc)
		_, _ = fmt.Fprintf(w, "Last update: %s | Next refresh in %s | Press Ctrl+C to exit\n\n",
			now.Format("15:04:05"), interval)

		if err := fetchAndRender(ctx); err != nil {
			logging.Warn("Watch refresh failed", zap.Error(err))
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			output.ClearScreen(w)
			_, _ = fmt.Fprintln(w, "Watch mode ended.")
			return nil
		}
	}
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for stations by name",
	Long: `Search for stations by name.

Example:
  mvg search Marienplatz
  mvg search "Garching Forschungszentrum"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	stations, err := client.SearchStations(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), stations)
	}
	output.RenderSearchResults(cmd.OutOrStdout(), stations, getColors())
	return nil
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Long: `Remove all cached API responses.

The station list is cached for a day and search results for ten minutes.
Clear the cache after the network changed stations, e.g. at the timetable
change in December.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	fc, err := cache.NewFileCache(cache.DefaultCacheDir())
	if err != nil {
		return err
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	logging.Info("Cache cleared", zap.String("dir", fc.Dir()))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache in %s\n", fc.Dir())
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
