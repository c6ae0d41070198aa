package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/jasmine-step/buildlog"
	"github.com/kbukum/jasmine-step/buildstep"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/jasmine"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/observability"
	"github.com/kbukum/jasmine-step/util"
)

var errStepFailed = stderrors.New("build step failed")

type stepResult struct {
	index    int
	stepType string
	status   string
	duration time.Duration
}

const (
	statusPassed  = "passed"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

// runFlags are the flags of the run command.
type runFlags struct {
	job       string
	workspace string
	logFormat string
	stripANSI bool
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.job, "job", "j", "", "Job file listing the steps (yaml, json or toml)")
	fs.StringVarP(&f.workspace, "workspace", "w", "", "Workspace directory the steps run in (default: current directory)")
	fs.StringVar(&f.logFormat, "log-format", string(buildlog.FormatConsole), "Build log entry format: console or json")
	fs.BoolVar(&f.stripANSI, "strip-ansi", false, "Remove ANSI escape sequences from process output")
}

func (f *runFlags) console(w io.Writer) (*buildlog.Console, error) {
	format := buildlog.Format(f.logFormat)
	if format != buildlog.FormatConsole && format != buildlog.FormatJSON {
		return nil, errors.InvalidInput("log-format", fmt.Sprintf("must be console or json (got: %s)", f.logFormat))
	}
	var opts []buildlog.ConsoleOption
	if f.stripANSI {
		opts = append(opts, buildlog.WithStripANSI())
	}
	return buildlog.NewConsole(w, format, opts...), nil
}

func newRunCmd(o *rootOptions) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run --job <file>",
		Short: "Perform the build steps of a job file",
		Long: `Perform every step of a job file in order inside the workspace, using the
current environment as the build environment. The run stops at the first
failing step and exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := buildstep.LoadJob(flags.job)
			if err != nil {
				return err
			}
			root, err := resolveWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			console, err := flags.console(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			app, store, err := o.newApp(cmd, true)
			if err != nil {
				return err
			}

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				metrics, err := observability.NewStepMetrics(observability.Meter())
				if err != nil {
					return err
				}
				reg := buildstep.NewRegistry()
				if err := jasmine.Register(reg, store,
					jasmine.WithMetrics(metrics),
					jasmine.WithGracePeriod(app.Cfg.Process.GracePeriod),
				); err != nil {
					return err
				}

				results, err := performJob(ctx, reg, job, root, util.EnvSnapshot(), console, app.Logger)
				renderSummary(cmd.ErrOrStderr(), results)
				return err
			})
		},
	}

	flags.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

// performJob runs the steps in order and stops at the first failure. Every
// step gets its own build with a copy of env.
func performJob(ctx context.Context, reg *buildstep.Registry, job *buildstep.Job, root string,
	env map[string]string, listener buildlog.Listener, log *logger.Logger) ([]stepResult, error) {
	builders := make([]buildstep.Builder, len(job.Steps))
	for i, step := range job.Steps {
		b, err := reg.Create(step.Type, step.Form)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		builders[i] = b
	}

	results := make([]stepResult, 0, len(builders))
	var failed bool
	for i, b := range builders {
		r := stepResult{index: i + 1, stepType: b.Type(), status: statusSkipped}
		if !failed && ctx.Err() == nil {
			build := buildstep.NewLocalBuild(root, env, listener)
			start := time.Now()
			ok := b.Perform(ctx, build)
			r.duration = time.Since(start)
			r.status = statusPassed
			if !ok {
				r.status = statusFailed
				failed = true
				log.Warn("Build step failed, skipping the rest", logger.Fields(
					logger.FieldBuildID, build.ID(),
					logger.FieldStepType, b.Type(),
					"step", i+1,
				))
			}
		}
		results = append(results, r)
	}

	if failed || ctx.Err() != nil {
		return results, errStepFailed
	}
	return results, nil
}

func renderSummary(w io.Writer, results []stepResult) {
	if len(results) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Step", "Status", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, r := range results {
		duration := "-"
		if r.status != statusSkipped {
			duration = r.duration.Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{r.index, r.stepType, r.status, duration})
	}
	t.Render()
}

func resolveWorkspace(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", abs)
	}
	return abs, nil
}
