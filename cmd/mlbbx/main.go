// Package main provides the CLI entrypoint for mlbbx, the end-game
// screenshot extractor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mlbb-extractor/internal/config"
	"mlbb-extractor/internal/decode"
	"mlbb-extractor/internal/export"
	"mlbb-extractor/internal/extract"
	"mlbb-extractor/internal/ocr"
	"mlbb-extractor/internal/pipeline"
	"mlbb-extractor/internal/profile"
)

const defaultConfigPath = "mlbbx.json"

var (
	configPath string
	logLevel   string
	debugMode  bool

	extractOut string

	findPlayer string
	findOut    string

	batchPlayer string
	batchOut    string
	batchWatch  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mlbbx",
		Short:         "Extract match data from MLBB end-game screenshots",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "save intermediate region images")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newProfilesCmd())

	return rootCmd
}

// loadConfig applies CLI overrides on top of the config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if debugMode {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
}

// buildExtractor assembles the full pipeline from the configuration. The
// returned cleanup releases the OCR engine.
func buildExtractor(cfg config.Config, log zerolog.Logger) (*extract.Extractor, func(), error) {
	registry := profile.NewRegistry()
	if cfg.ProfilesFile != "" {
		if err := registry.LoadFile(cfg.ProfilesFile); err != nil {
			return nil, nil, fmt.Errorf("loading profiles: %w", err)
		}
	}

	aliases := map[string]string{}
	if cfg.AliasesFile != "" {
		loaded, err := decode.LoadAliases(cfg.AliasesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading aliases: %w", err)
		}
		aliases = loaded
	}

	engine, err := ocr.NewEngine(cfg.TessdataPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("starting OCR engine: %w", err)
	}
	cleanup := func() {
		if cerr := engine.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing OCR engine")
		}
	}

	extractor := extract.New(registry, engine, decode.NewNicknameMatcher(aliases))
	extractor.SetLogger(log)
	if cfg.Debug {
		sink, err := extract.NewFileSink(cfg.DebugDir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		extractor.SetDebugSink(sink)
	}
	return extractor, cleanup, nil
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract all five player rows from one screenshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtractCmd,
	}
	cmd.Flags().StringVar(&extractOut, "out", "", "write records to file (csv, json or xlsx)")
	return cmd
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	extractor, cleanup, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := extractor.ExtractAll(args[0])
	if err != nil {
		return err
	}
	if extractOut != "" {
		if err := export.Write(extractOut, records); err != nil {
			return err
		}
		log.Info().Str("file", extractOut).Int("records", len(records)).Msg("records written")
		return nil
	}
	printRecords(cmd, records)
	return nil
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <image>",
		Short: "Extract one player's row by nickname",
		Args:  cobra.ExactArgs(1),
		RunE:  runFindCmd,
	}
	cmd.Flags().StringVar(&findPlayer, "player", "", "nickname to search for")
	cmd.Flags().StringVar(&findOut, "out", "", "write the record to file (csv, json or xlsx)")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func runFindCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	extractor, cleanup, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := extractor.FindPlayer(args[0], findPlayer)
	if err != nil {
		return err
	}
	if findOut != "" {
		return export.Write(findOut, []extract.GameRecord{*rec})
	}
	printRecords(cmd, []extract.GameRecord{*rec})
	return nil
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every screenshot in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatchCmd,
	}
	cmd.Flags().StringVar(&batchPlayer, "player", "", "extract only this player's rows")
	cmd.Flags().StringVar(&batchOut, "out", "", "output file (csv, json or xlsx); defaults to the configured output")
	cmd.Flags().BoolVar(&batchWatch, "watch", false, "keep watching the directory for new screenshots")
	return cmd
}

func runBatchCmd(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	extractor, cleanup, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := pipeline.New(extractor)
	runner.SetLogger(log)
	if batchPlayer != "" {
		runner.SetNickname(batchPlayer)
	}

	out := batchOut
	if out == "" {
		out = cfg.OutputFile
	}

	if batchWatch {
		return watchDir(runner, args[0], out, log)
	}

	results, err := runner.ProcessDir(args[0])
	if err != nil {
		return err
	}
	records := pipeline.Flatten(results)
	if err := export.Write(out, records); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.Info().
		Int("images", len(results)).
		Int("failed", failed).
		Int("records", len(records)).
		Str("file", out).
		Msg("batch complete")
	return nil
}

// watchDir appends each new screenshot's records to the output as it
// arrives; watch mode therefore requires a CSV output.
func watchDir(runner *pipeline.Runner, dir, out string, log zerolog.Logger) error {
	if format, err := export.FormatForPath(out); err != nil {
		return err
	} else if format != export.FormatCSV {
		return fmt.Errorf("watch mode appends records and needs a csv output, got %q", format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runner.Watch(ctx, dir, func(res pipeline.Result) {
		if res.Err != nil {
			return
		}
		if err := export.AppendCSV(out, res.Records); err != nil {
			log.Error().Err(err).Str("image", res.Image).Msg("appending records")
		}
	})
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List available resolution profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfilesCmd,
	}
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := profile.NewRegistry()
	if cfg.ProfilesFile != "" {
		if err := registry.LoadFile(cfg.ProfilesFile); err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
	}

	active := registry.Active()
	for _, name := range registry.Names() {
		p, err := registry.Get(name)
		if err != nil {
			return err
		}
		marker := " "
		if active != nil && name == active.Name {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%dx%d) %s\n",
			marker, p.Name, p.ReferenceWidth, p.ReferenceHeight, p.Description)
	}
	return nil
}

func printRecords(cmd *cobra.Command, records []extract.GameRecord) {
	out := cmd.OutOrStdout()
	for _, rec := range records {
		fmt.Fprintf(out, "#%d %-20s %2d/%2d/%2d  gold %5d  medal %-6s  rating %.1f\n",
			rec.Position, rec.Nickname, rec.Kills, rec.Deaths, rec.Assists,
			rec.Gold, rec.Medal, rec.Ratio)
	}
	if len(records) > 0 {
		info := records[0].MatchInfo
		fmt.Fprintf(out, "%s %d-%d in %s\n",
			info.Result, info.MyTeamScore, info.AdversaryTeamScore, info.Duration)
	}
}
