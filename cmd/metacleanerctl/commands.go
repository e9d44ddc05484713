package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"MetaCleaner/common"
	"MetaCleaner/exiftool"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// toolRunner is the part of exiftool.Runner the commands use
type toolRunner interface {
	Reference() exiftool.ToolReference
	Available() bool
	Summary(ctx context.Context, file string) (string, error)
	Detailed(ctx context.Context, file string) (string, error)
	Clear(ctx context.Context, file string) (exiftool.ClearOutcome, error)
	Version(ctx context.Context) (string, error)
}

// cliEnv holds what the commands need from the outside world; tests replace parts of it
type cliEnv struct {
	// newRunner locates the tool and returns a runner bound to the result
	newRunner func(ctx context.Context, cfg common.GlobalCfg, logger *common.Logger) (toolRunner, error)
	// defaultConfigPath and defaultJournalPath resolve the desktop application's files
	defaultConfigPath  func() (string, error)
	defaultJournalPath func() (string, error)
}

func newDefaultEnv() *cliEnv {
	return &cliEnv{
		newRunner: func(ctx context.Context, cfg common.GlobalCfg, logger *common.Logger) (toolRunner, error) {
			ref, err := common.NewToolLocator(cfg, logger, nil).Locate(ctx)
			if err != nil && !errors.Is(err, exiftool.ErrToolNotFound) {
				return nil, err
			}
			return common.NewToolRunner(ref, cfg, logger), nil
		},
		defaultConfigPath: func() (string, error) {
			return common.LocateOrCreatePath(common.FileNameSettings, "")
		},
		defaultJournalPath: func() (string, error) {
			return common.LocateOrCreatePath(common.FileNameJournal, "")
		},
	}
}

// options are the persistent flags shared by every command
type options struct {
	configPath   string
	journalPath  string
	exiftoolPath string
	verbose      bool
}

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgHiGreen)
	failColor    = color.New(color.FgRed)
)

func newRootCmd(env *cliEnv) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "metacleanerctl",
		Short:         "View and strip media file metadata with ExifTool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default: the desktop application's settings.conf)")
	cmd.PersistentFlags().StringVar(&opts.journalPath, "journal", "", "clear journal database (default: the desktop application's history.db)")
	cmd.PersistentFlags().StringVar(&opts.exiftoolPath, "exiftool", "", "ExifTool executable or directory, checked before the built-in locations")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log tool invocations to stderr")

	cmd.AddCommand(
		locateCmd(env, opts),
		viewCmd(env, opts, "summary", "Show the summary metadata of a file", exiftool.OperationSummary),
		viewCmd(env, opts, "detail", "Show all metadata of a file grouped by family", exiftool.OperationDetailed),
		clearCmd(env, opts),
		historyCmd(env, opts),
	)
	return cmd
}

// session is the per-invocation state built from the flags
type session struct {
	cfg    common.GlobalCfg
	logger *common.Logger
	runner toolRunner
}

func openSession(cmd *cobra.Command, env *cliEnv, opts *options, needTool bool) (*session, error) {
	logger := common.NewWriterLogger(nil)
	if opts.verbose {
		logger = common.NewWriterLogger(cmd.ErrOrStderr())
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		var err error
		if cfgPath, err = env.defaultConfigPath(); err != nil {
			return nil, err
		}
	}
	configMgr, err := common.NewConfigManager(cfgPath)
	if err != nil {
		return nil, err
	}
	if common.FileExists(cfgPath) {
		if err := configMgr.LoadCfg(); err != nil {
			warnColor.Fprintf(cmd.ErrOrStderr(), "warning: %v, using defaults\n", err)
		}
	}

	s := &session{cfg: configMgr.GetGlobalConfig(), logger: logger}
	if opts.exiftoolPath != "" {
		s.cfg.ExiftoolPath = opts.exiftoolPath
	}
	if !needTool {
		return s, nil
	}

	s.runner, err = env.newRunner(cmd.Context(), s.cfg, logger)
	if err != nil {
		return nil, err
	}
	if !s.runner.Available() {
		return nil, fmt.Errorf("%w (use --exiftool or set ExiftoolPath in %s)", exiftool.ErrToolNotFound, cfgPath)
	}
	return s, nil
}

func (s *session) openJournal(env *cliEnv, opts *options) (*common.JournalManager, error) {
	if s.cfg.JournalDisabled {
		return nil, nil
	}
	path := opts.journalPath
	if path == "" {
		var err error
		if path, err = env.defaultJournalPath(); err != nil {
			return nil, err
		}
	}
	return common.NewJournalManager(path, s.logger)
}

func locateCmd(env *cliEnv, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the ExifTool reference that would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, env, opts, true)
			if err != nil {
				return err
			}
			ref := s.runner.Reference()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ref.Value, ref.Kind)

			if v, err := s.runner.Version(cmd.Context()); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "version\t%s\n", v)
			} else {
				warnColor.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}
}

func viewCmd(env *cliEnv, opts *options, use, short string, op exiftool.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if err := common.ValidateTargetFile(file, false); err != nil {
				return err
			}
			s, err := openSession(cmd, env, opts, true)
			if err != nil {
				return err
			}
			return printView(cmd, s.runner, op, file)
		},
	}
}

func printView(cmd *cobra.Command, runner toolRunner, op exiftool.Operation, file string) error {
	var (
		text string
		err  error
	)
	if op == exiftool.OperationDetailed {
		text, err = runner.Detailed(cmd.Context(), file)
	} else {
		text, err = runner.Summary(cmd.Context(), file)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func clearCmd(env *cliEnv, opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear <file>",
		Short: "Remove all metadata from a file in place",
		Long: `Remove all metadata from a file in place. The original is overwritten
and cannot be restored. Without --yes the command asks for confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if err := common.ValidateTargetFile(file, true); err != nil {
				return err
			}
			s, err := openSession(cmd, env, opts, true)
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Clear all metadata from %s? This cannot be undone. [y/N]: ", file)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing was changed.")
				return nil
			}

			outcome, clearErr := s.runner.Clear(cmd.Context(), file)
			recordClear(cmd, env, opts, s, file, outcome, clearErr)

			switch {
			case clearErr != nil:
				failColor.Fprintf(cmd.ErrOrStderr(), "clear failed: %v\n", clearErr)
			case outcome.Failed:
				failColor.Fprintf(cmd.ErrOrStderr(), "ExifTool reported an error: %s\n", outcome.Reason)
			default:
				successColor.Fprintf(cmd.OutOrStdout(), "Metadata cleared: %s\n", file)
			}

			// the summary is shown whatever the clear reported
			fmt.Fprintln(cmd.OutOrStdout())
			if err := printView(cmd, s.runner, exiftool.OperationSummary, file); err != nil {
				warnColor.Fprintf(cmd.ErrOrStderr(), "warning: summary failed: %v\n", err)
			}

			if clearErr != nil {
				return clearErr
			}
			if outcome.Failed {
				return fmt.Errorf("clear failed: %s", outcome.Reason)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func recordClear(cmd *cobra.Command, env *cliEnv, opts *options, s *session, file string, outcome exiftool.ClearOutcome, clearErr error) {
	journal, err := s.openJournal(env, opts)
	if err != nil {
		warnColor.Fprintf(cmd.ErrOrStderr(), "warning: journal unavailable: %v\n", err)
		return
	}
	if journal == nil {
		return
	}
	defer journal.Finalize()

	entry := common.JournalEntry{
		FilePath:  file,
		ToolPath:  s.runner.Reference().Value,
		ExitCode:  outcome.Result.ExitCode,
		Succeeded: clearErr == nil && !outcome.Failed,
		Stderr:    string(outcome.Result.Stderr),
	}
	if clearErr != nil {
		entry.Stderr = clearErr.Error()
	}
	if _, err := journal.Record(entry); err != nil {
		warnColor.Fprintf(cmd.ErrOrStderr(), "warning: journal entry not written: %v\n", err)
	}
}

func historyCmd(env *cliEnv, opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clear operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, env, opts, false)
			if err != nil {
				return err
			}
			journal, err := s.openJournal(env, opts)
			if err != nil {
				return err
			}
			if journal == nil {
				warnColor.Fprintln(cmd.ErrOrStderr(), "the clear journal is disabled in settings")
				return nil
			}
			defer journal.Finalize()

			entries, err := journal.List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				status := successColor.Sprint("ok")
				if !e.Succeeded {
					status = failColor.Sprintf("failed (exit %d)", e.ExitCode)
				}
				fmt.Fprintf(out, "%s  %s  %s\n", e.ClearedAt.Format("2006-01-02 15:04:05"), status, e.FilePath)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No clear operations recorded.")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries, 0 for all")
	return cmd
}

// confirm asks question on w and reads the answer from r. Only "y" and "yes" confirm.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprint(w, question)
	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
