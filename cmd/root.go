package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/clipbar/internal/formatter"
	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/internal/ui"
	"github.com/oakwood-commons/clipbar/pkg/core"
	"github.com/oakwood-commons/clipbar/pkg/loader"
	"github.com/oakwood-commons/clipbar/pkg/logger"
	"github.com/oakwood-commons/clipbar/pkg/resize"
	"github.com/oakwood-commons/clipbar/pkg/settings"
)

// outputRender draws the toolbar itself instead of describing it.
const outputRender = "render"

// errNoInput is returned when neither a file nor piped stdin is given.
var errNoInput = errors.New("no toolbar definition: pass a file or pipe one on stdin")

// runUIModel is swapped in tests so the interactive path can be exercised
// without a terminal.
var runUIModel = ui.RunModel

type rootOptions struct {
	configFile  string
	debug       bool
	noColor     bool
	width       int
	height      int
	orientation orientationValue
	output      string
	sets        []string
	interactive bool
	snapshot    bool
	theme       string
	toolbar     string
	inputFormat string
	press       []string
}

// NewRootCmd builds the clipbar command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: settings.CliBinaryName + " - lay out toolbars that clip to fit",
		Long: `clipbar lays out a toolbar definition inside a box of a given width or
height. Entries that do not fit are clipped lowest-priority first and moved
behind an overflow button.

Definitions are YAML, JSON or TOML, read from a file or from stdin.`,
		Example: `  clipbar toolbar.yaml --width 40
  clipbar toolbar.yaml -o render --set debug=true
  cat toolbar.yaml | clipbar -i`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			var level int8
			if opts.debug {
				level = -1
			}
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			run := settings.NewCliParams()
			run.MinLogLevel = level
			run.Width, run.Height = opts.width, opts.height
			run.NoColor = opts.noColor || os.Getenv("NO_COLOR") != ""

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			cmd.SetContext(settings.IntoContext(ctx, run))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config-file", "", "path to a YAML config file (themes, preview settings)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable color output")

	f := root.Flags()
	f.IntVar(&opts.width, "width", 0, "extent of a horizontal toolbar in columns")
	f.IntVar(&opts.height, "height", 0, "extent of a vertical toolbar in rows")
	f.Var(&opts.orientation, "orientation", "override the definition's orientation: horizontal|vertical")
	f.StringVarP(&opts.output, "output", "o", string(formatter.OutputTable), "output format: table|json|yaml|toml|render")
	f.StringArrayVar(&opts.sets, "set", nil, "set a condition context value (key=value, dotted keys nest)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "open the interactive preview")
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single preview frame and exit; honors --width/--height")
	f.StringVar(&opts.theme, "theme", "", "theme name (default from config; see 'clipbar themes')")
	f.StringVar(&opts.toolbar, "toolbar", "", "name of the toolbar to lay out when the input holds several")
	f.StringVar(&opts.inputFormat, "input-format", "", "input format: yaml|json|toml (default: detect)")
	f.StringArrayVar(&opts.press, "press", nil, "simulate keys on startup, e.g. --press \"<left><left>o\"")

	root.AddCommand(newVersionCmd(), newConfigCmd(&opts.configFile), newThemesCmd(&opts.configFile))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)
	run, _ := settings.FromContext(ctx)

	cfg, _, err := loadMergedConfig(opts.configFile)
	if err != nil {
		return err
	}
	theme, err := ui.LookupTheme(cfg, opts.theme)
	if err != nil {
		return err
	}

	defs, err := readDefinitions(cmd, args, opts.inputFormat)
	if err != nil {
		return err
	}
	if run != nil {
		run.Source = "-"
		if len(args) == 1 {
			run.Source = args[0]
		}
	}
	def, err := loader.Select(defs, opts.toolbar)
	if err != nil {
		return err
	}

	engine, err := core.New()
	if err != nil {
		return fmt.Errorf("create layout engine: %w", err)
	}
	sets, err := parseSets(opts.sets)
	if err != nil {
		return err
	}
	layout, err := engine.Prepare(def, sets)
	if err != nil {
		if src := run.SourceName(); src != "" {
			return fmt.Errorf("%s: %w", src, err)
		}
		return err
	}
	tb, box := layout.Toolbar, layout.Box
	if opts.orientation.set {
		box.Orientation = opts.orientation.value
	}

	extent := resolveExtent(run, def, cfg, box.Orientation)
	lgr.V(1).Info("toolbar loaded",
		logger.SourceKey, run.SourceName(),
		logger.ToolbarKey, tb.Name,
		logger.OrientationKey, box.Orientation.String(),
		logger.ExtentKey, extent,
		logger.EntriesKey, len(tb.Entries),
	)

	noColor := run != nil && run.NoColor
	uiOpts := ui.Options{
		Theme:    theme,
		NoColor:  noColor,
		Extent:   extent,
		Step:     cfg.Step(),
		ShowMenu: cfg.UI.Preview.ShowMenu != nil && *cfg.UI.Preview.ShowMenu,
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.snapshot:
		view := ui.RenderSnapshot(ctx, tb, box, ui.SnapshotConfig{
			Options:   uiOpts,
			Width:     opts.width,
			Height:    opts.height,
			StartKeys: opts.press,
		})
		_, err := fmt.Fprintln(out, view)
		return err
	case opts.interactive:
		return runInteractive(ctx, tb, box, uiOpts, opts)
	}

	arr, err := box.Arrange(ctx, tb, extent)
	if err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(opts.output), outputRender) {
		return writeRender(out, arr, theme.Styles(noColor))
	}
	format, err := formatter.ParseOutput(opts.output)
	if err != nil {
		return err
	}
	text, err := engine.Format(arr, format, formatter.Options{NoColor: noColor})
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

func runInteractive(ctx context.Context, tb *toolbar.Toolbar, box *toolbar.Box, uiOpts ui.Options, opts *rootOptions) error {
	// An explicit extent pins the preview; otherwise it follows the window.
	if box.Orientation == resize.Vertical {
		uiOpts.FollowWindow = opts.height <= 0
	} else {
		uiOpts.FollowWindow = opts.width <= 0
	}
	m := ui.NewModel(ctx, tb, box, uiOpts)
	if w, h := detectTerminalSize(); w > 0 && h > 0 {
		m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
	progOpts, cleanup := getProgramOptions(ctx)
	defer cleanup()
	return runUIModel(ctx, m, opts.press, progOpts...)
}

func writeRender(w io.Writer, arr toolbar.Arrangement, st toolbar.Styles) error {
	var b strings.Builder
	b.WriteString(toolbar.Render(arr, st))
	b.WriteByte('\n')
	if menu := toolbar.RenderOverflowMenu(arr, st); menu != "" {
		b.WriteString(menu)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// readDefinitions loads definitions from the file argument, or from stdin
// when it is piped or the argument is "-".
func readDefinitions(cmd *cobra.Command, args []string, inputFormat string) ([]loader.Definition, error) {
	format, err := loader.ParseFormat(inputFormat)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		if format == loader.FormatAuto {
			return loader.LoadFile(path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		defs, err := loader.LoadAll(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return defs, nil
	}
	if len(args) == 1 || stdinIsPiped() {
		defs, err := loader.LoadReader(cmd.InOrStdin(), format)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return defs, nil
	}
	return nil, errNoInput
}

// resolveExtent picks the extent along the layout axis: the command line,
// then the definition, then the terminal, then the configured fallback.
func resolveExtent(run *settings.Run, def *loader.Definition, cfg ui.ConfigFile, o resize.Orientation) int {
	vertical := o == resize.Vertical
	if v := run.Extent(vertical); v > 0 {
		return v
	}
	if def != nil && def.Extent > 0 {
		return def.Extent
	}
	w, h := detectTerminalSize()
	if vertical && h > 0 {
		return h
	}
	if !vertical && w > 0 {
		return w
	}
	return cfg.Fallback(vertical)
}
