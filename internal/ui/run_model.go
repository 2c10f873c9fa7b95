package ui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/clipbar/pkg/logger"
)

// RunModel starts the Bubble Tea preview. Start keys are replayed before the
// first frame. Extra ProgramOptions (e.g., custom IO) are passed to
// tea.NewProgram.
func RunModel(ctx context.Context, m *Model, startKeys []string, opts ...tea.ProgramOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ApplyStartupKeys(m, startKeys)
	if m.WinWidth > 0 && m.WinHeight > 0 {
		opts = append(opts, tea.WithWindowSize(m.WinWidth, m.WinHeight))
	}
	opts = append(opts, tea.WithContext(ctx))

	prog := tea.NewProgram(m, opts...)
	final, err := prog.Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		arr := fm.Arrangement
		logger.FromContext(ctx).V(1).Info("preview closed",
			logger.ToolbarKey, arr.Toolbar,
			logger.OrientationKey, arr.Orientation.String(),
			logger.ExtentKey, arr.Extent,
			logger.ClippedKey, len(arr.Clipped),
		)
	}
	return err
}
