package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cheruab/dreamacademyScM-sub002/internal/aiken"
	"github.com/cheruab/dreamacademyScM-sub002/internal/grading"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/report"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "examctl",
		Short:         "Parse, grade and report AIKEN exams from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringP("output", "o", "-", "Output file path (- for stdout)")

	root.AddCommand(parseCmd(), scoreCmd(), reportCmd())
	return root
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse an AIKEN file; with --title also assemble it into an exam definition",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	f := cmd.Flags()
	f.String("title", "", "Exam title; when set the parsed questions are assembled")
	f.String("subject", "", "Exam subject")
	f.Int("time-limit", 0, "Time limit in seconds")
	f.Int("passing", grading.DefaultPassingPercentage, "Passing percentage")
	f.String("default-answer", "A", "Answer letter used when a question has no ANSWER line")
	return cmd
}

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score SUBMISSIONS",
		Short: "Grade a JSON array of submissions against an exam definition",
		Args:  cobra.ExactArgs(1),
		RunE:  runScore,
	}
	f := cmd.Flags()
	f.String("exam", "", "Exam definition JSON file (required)")
	f.Bool("stats", false, "Print aggregate statistics instead of results")
	f.Int("concurrency", grading.DefaultBatchConcurrency, "Submissions graded in parallel")
	_ = cmd.MarkFlagRequired("exam")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report RESULTS",
		Short: "Render a JSON array of scored results as CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	f := cmd.Flags()
	f.String("format", string(models.ExportCSV), "Report format (csv, xlsx)")
	f.String("time-layout", report.DefaultTimeLayout, "Layout for the Submitted At column")
	return cmd
}

// viperForCmd binds a command's flags and EXAMCTL_* environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.InheritedFlags())

	v.SetEnvPrefix("EXAMCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("examctl")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/examctl")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}
	return v
}

func newLogger(cmd *cobra.Command, v *viper.Viper) *slog.Logger {
	return utils.NewSlog(cmd.ErrOrStderr(), "development", v.GetString("log-level"))
}

func runParse(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	logger := newLogger(cmd, v)

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read exam file: %w", err)
	}

	parser := aiken.NewParser(
		aiken.WithDefaultAnswer(v.GetString("default-answer")),
		aiken.WithLogger(logger),
	)
	parsed, err := parser.Parse(string(raw))
	if err != nil {
		return err
	}
	for _, reason := range parsed.SkipReasons {
		fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", reason)
	}

	title := v.GetString("title")
	if title == "" {
		return writeJSON(cmd, v, parsed)
	}

	passing := v.GetInt("passing")
	assembler := grading.NewAssembler(validator.New(), grading.WithAssemblerLogger(logger))
	exam, err := assembler.Assemble(models.ExamMeta{
		Title:             title,
		Subject:           v.GetString("subject"),
		TimeLimitSeconds:  v.GetInt("time-limit"),
		PassingPercentage: &passing,
	}, parsed.Questions)
	if err != nil {
		return err
	}
	return writeJSON(cmd, v, exam)
}

func runScore(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	logger := newLogger(cmd, v)

	var exam models.ExamDefinition
	if err := readJSON(v.GetString("exam"), &exam); err != nil {
		return fmt.Errorf("read exam: %w", err)
	}
	var subs []models.Submission
	if err := readJSON(args[0], &subs); err != nil {
		return fmt.Errorf("read submissions: %w", err)
	}

	scorer := grading.NewScorer(
		grading.WithBatchConcurrency(v.GetInt("concurrency")),
		grading.WithScorerLogger(logger),
	)
	results, err := scorer.ScoreBatch(cmd.Context(), &exam, subs)
	if err != nil {
		return err
	}

	if v.GetBool("stats") {
		flat := make([]models.ScoredResult, len(results))
		for i, r := range results {
			flat[i] = *r
		}
		return writeJSON(cmd, v, grading.NewAggregator().Aggregate(flat))
	}
	return writeJSON(cmd, v, results)
}

func runReport(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)

	var results []models.ScoredResult
	if err := readJSON(args[0], &results); err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	exporter := report.NewExporter(report.WithTimeLayout(v.GetString("time-layout")))
	data, err := exporter.Export(models.ExportFormat(strings.ToLower(v.GetString("format"))), results)
	if err != nil {
		return err
	}
	return writeOutput(cmd, v, data)
}

func readJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func writeJSON(cmd *cobra.Command, v *viper.Viper, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(cmd, v, append(data, '\n'))
}

func writeOutput(cmd *cobra.Command, v *viper.Viper, data []byte) error {
	var w io.Writer = cmd.OutOrStdout()
	if path := v.GetString("output"); path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}
