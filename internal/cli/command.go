// Package cli implements the traductor command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"traductor/backend/internal/config"
	"traductor/backend/internal/model"
	"traductor/backend/internal/repository"
	"traductor/backend/internal/service"
	"traductor/backend/internal/tracking"
)

// Deps are the services commands run against.
type Deps struct {
	Translation service.TranslationService
	Runs        func() (repository.RunRepository, error)
}

// Loader builds Deps on demand. The returned func releases them.
type Loader func() (*Deps, func(), error)

// NewRootCommand creates the traductor command tree.
func NewRootCommand(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:   "traductor",
		Short: "Translate text with an LLM and record each call",
		Long: `traductor translates text through the configured LLM provider and records
every call as a tracking run, like the web form does.

Examples:
  traductor translate --to Spanish "Hello world"
  echo "Good morning" | traductor translate --to French
  traductor runs --limit 5`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTranslateCommand(load), newLanguagesCommand(), newRunsCommand(load))
	return root
}

func newTranslateCommand(load Loader) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text (read from stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			deps, release, err := load()
			if err != nil {
				return err
			}
			defer release()

			result := deps.Translation.Translate(cmd.Context(), model.TranslationRequest{Text: text, TargetLanguage: to})
			if err := service.ResultError(result); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Output)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", model.DefaultLanguage, "Target language")
	return cmd
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, lang := range model.SupportedLanguages {
				if lang == model.DefaultLanguage {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", lang)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}
		},
	}
}

func newRunsCommand(load Loader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs of the sqlite tracking backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return errors.New("--limit must be positive")
			}

			deps, release, err := load()
			if err != nil {
				return err
			}
			defer release()

			repo, err := deps.Runs()
			if err != nil {
				return err
			}
			runs, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			return printRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func printRuns(w io.Writer, runs []model.TrackedRun) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTATUS\tSTARTED\tLANGUAGE\tLATENCY_MS\tERROR")
	for _, run := range runs {
		latency := "-"
		if v, ok := run.Metrics[tracking.MetricLatencyMS]; ok {
			latency = fmt.Sprintf("%.2f", v)
		}
		errMsg := run.Params[tracking.ParamError]
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.UUID,
			run.Status,
			run.StartedAt.Local().Format(time.DateTime),
			run.Params[tracking.ParamTargetLanguage],
			latency,
			errMsg,
		)
	}
	return tw.Flush()
}
