package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"threadsuite/internal/bootstrap"
	launcherdto "threadsuite/internal/modules/launcher/dto"
	threaddto "threadsuite/internal/modules/thread/dto"
	"threadsuite/internal/platform/config"
	apperrors "threadsuite/internal/platform/errors"
	"threadsuite/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	home       string
	configPath string
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "threadsuite",
		Short:         "Launch suite applications and split long text into threads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&opts.home, "home", "", "suite home directory (default: directory of this executable)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <home>/.threadsuite/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newTargetsCmd(opts))
	root.AddCommand(newLaunchCmd(opts))
	root.AddCommand(newLaunchesCmd(opts))
	root.AddCommand(newSplitCmd(opts))
	root.AddCommand(newThreadsCmd(opts))
	root.AddCommand(newTUICmd(opts))
	return root
}

// loadApp reads config, builds the logger and wires the application. The TUI
// owns the terminal, so its logs go to a file instead of stderr.
func loadApp(opts *rootOptions, tui bool) (*bootstrap.App, error) {
	home, err := resolveHome(opts.home, os.Executable)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(home, opts.configPath)
	if err != nil {
		return nil, err
	}
	logOpts := logging.Options{Level: cfg.LogLevel, Verbose: opts.verbose, Console: !tui}
	if tui {
		logOpts.LogDir = cfg.LogDir
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}
	opts.logger = logger
	logger.Debug("config loaded", zap.String("home", cfg.HomePath), zap.String("config", cfg.ConfigPath))
	return bootstrap.New(cfg, logger)
}

// resolveHome defaults to the directory holding the threadsuite binary, so
// the suite's sibling executables resolve from any working directory.
func resolveHome(flagValue string, executable func() (string, error)) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := resolveHome(opts.home, os.Executable)
			if err != nil {
				return err
			}
			cfg, err := config.New(home)
			if err != nil {
				return err
			}
			path := cfg.ConfigPath
			if opts.configPath != "" {
				path = opts.configPath
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func newTargetsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List launch targets and which locations exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			targets, err := app.LauncherCLI.Targets(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), targets)
			}
			for _, t := range targets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.Name, targetState(t), resolvedHint(t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func targetState(t launcherdto.TargetOutput) string {
	switch {
	case t.PrimaryExists:
		return "primary"
	case t.FallbackExists:
		return "fallback"
	default:
		return "missing"
	}
}

func resolvedHint(t launcherdto.TargetOutput) string {
	if !t.PrimaryExists && t.FallbackExists {
		return t.FallbackPath
	}
	return t.PrimaryPath
}

func newLaunchCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "launch <target>...",
		Short: "Start one or more targets detached",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := checkTargetNames(ctx, app, args); err != nil {
				return err
			}

			results := make([]launcherdto.LaunchOutput, len(args))
			var g errgroup.Group
			for i, name := range args {
				g.Go(func() error {
					out, err := app.LauncherCLI.Launch(ctx, name)
					if err != nil {
						return fmt.Errorf("launch %s: %w", name, err)
					}
					results[i] = out
					return nil
				})
			}
			launchErr := g.Wait()

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Target == "" {
						continue
					}
					if r.Started {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started %s pid=%d path=%s\n", r.Target, r.PID, r.ResolvedPath)
					} else {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "failed %s reason=%s: %s\n", r.Target, r.Reason, r.Error)
					}
				}
			}
			if launchErr != nil {
				return launchErr
			}
			failed := 0
			for _, r := range results {
				if !r.Started {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d launches failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// checkTargetNames rejects the whole batch before anything is spawned when a
// name is not in the target table.
func checkTargetNames(ctx context.Context, app *bootstrap.App, names []string) error {
	targets, err := app.LauncherCLI.Targets(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		known[t.Name] = struct{}{}
	}
	var unknown []string
	for _, name := range names {
		if _, ok := known[strings.TrimSpace(name)]; !ok {
			unknown = append(unknown, strconv.Quote(name))
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s; nothing was launched", apperrors.ErrUnknownTarget, strings.Join(unknown, ", "))
	}
	return nil
}

func newLaunchesCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "launches",
		Short: "Show recent launch attempts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			records, err := app.LauncherCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no launches")
				return nil
			}
			for _, r := range records {
				state := "started"
				if !r.Started {
					state = "failed: " + r.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					r.At.Local().Format("2006-01-02 15:04:05"), r.Target, r.ResolvedPath, state)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")
	return cmd
}

func newSplitCmd(opts *rootOptions) *cobra.Command {
	var (
		text      string
		title     string
		maxLength int
		numbered  bool
		hashtags  []string
		save      bool
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "split [file|-]",
		Short: "Split text into numbered thread posts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			input := threaddto.BuildInput{
				Text:      text,
				Title:     title,
				MaxLength: app.Config.Thread.MaxLength,
				Numbered:  app.Config.Thread.ReserveForNumbering,
				Hashtags:  app.Config.Thread.Hashtags,
				Save:      save,
			}
			if cmd.Flags().Changed("max-length") {
				input.MaxLength = maxLength
			}
			if cmd.Flags().Changed("number") {
				input.Numbered = numbered
			}
			if cmd.Flags().Changed("hashtag") {
				input.Hashtags = hashtags
			}
			if len(args) == 1 {
				if args[0] == "-" {
					if strings.TrimSpace(text) != "" {
						return fmt.Errorf("%w: give either --text or stdin, not both", apperrors.ErrInvalidInput)
					}
					raw, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					input.Text = string(raw)
				} else {
					input.Path = args[0]
				}
			}

			out, err := app.ThreadCLI.Build(context.Background(), input)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printThread(cmd.OutOrStdout(), out.Segments, input.MaxLength)
			printReport(cmd.ErrOrStderr(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to split (instead of a file)")
	cmd.Flags().StringVar(&title, "title", "", "thread title when saving")
	cmd.Flags().IntVar(&maxLength, "max-length", config.DefaultMaxLength, "characters per post")
	cmd.Flags().BoolVar(&numbered, "number", true, "append (i/N) numbering")
	cmd.Flags().StringSliceVar(&hashtags, "hashtag", nil, "hashtags to place (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "save the thread to history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printThread(w io.Writer, segments []threaddto.SegmentOutput, maxLength int) {
	for i, s := range segments {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "--- %d (%d/%d) ---\n%s\n", s.Index, s.Length, maxLength, s.Text)
	}
}

func printReport(w io.Writer, out threaddto.BuildOutput) {
	r := out.Report
	_, _ = fmt.Fprintf(w, "%d posts, %d chars, avg %.1f, engagement %d/%d\n",
		r.Count, r.TotalChars, r.AverageLength, r.EngagementScore, r.EngagementMax)
	if len(r.EngagementFactors) > 0 {
		_, _ = fmt.Fprintf(w, "engagement factors: %s\n", strings.Join(r.EngagementFactors, ", "))
	}
	for _, rec := range r.Recommendations {
		_, _ = fmt.Fprintf(w, "recommendation: %s\n", rec)
	}
	for _, issue := range r.Issues {
		_, _ = fmt.Fprintf(w, "issue: %s\n", issue)
	}
	for _, warning := range r.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if len(out.DroppedHashtags) > 0 {
		_, _ = fmt.Fprintf(w, "dropped hashtags: %s\n", strings.Join(out.DroppedHashtags, " "))
	}
	if out.Saved {
		_, _ = fmt.Fprintf(w, "saved %s (%s)\n", out.Title, out.ID)
	}
}

func newThreadsCmd(opts *rootOptions) *cobra.Command {
	threads := &cobra.Command{Use: "threads", Short: "Saved thread history"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved threads, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			items, err := app.ThreadCLI.ListThreads(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no threads")
				return nil
			}
			for _, t := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n",
					t.ID, t.CreatedAt.Local().Format("2006-01-02 15:04"), t.SegmentCount, t.Title)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "number of threads")

	var asJSON bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			detail, err := app.ThreadCLI.GetThread(context.Background(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), detail)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n", detail.Title)
			printThread(cmd.OutOrStdout(), detail.Segments, detail.MaxLength)
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	threads.AddCommand(list, show)
	return threads
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the launcher dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(opts, true)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
