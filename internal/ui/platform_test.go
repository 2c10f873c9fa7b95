package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

func TestCopyKey(t *testing.T) {
	var copied string
	restore := StubClipboard(func(s string) error {
		copied = s
		return nil
	})
	defer restore()

	m := NewModel(context.Background(), functionKeys(), toolbar.NewBox(resize.Horizontal), monoOptions(20))
	cmd := press(m, char('y'))
	require.NotNil(t, cmd)
	assert.Empty(t, copied, "copy runs in the returned command")

	m.Update(cmd())
	assert.Equal(t, toolbar.Render(m.Arrangement, toolbar.PlainStyles()), copied)
	assert.Equal(t, "copied toolbar", m.Notice)
	assert.Contains(t, m.Render(), "· copied toolbar")

	// Any key clears the notice.
	press(m, char('o'))
	assert.Empty(t, m.Notice)
}

func TestCopyKeyFailure(t *testing.T) {
	restore := StubClipboard(func(string) error { return errors.New("no clipboard") })
	defer restore()

	m := NewModel(context.Background(), functionKeys(), nil, monoOptions(20))
	m.Update(press(m, char('y'))())
	assert.Equal(t, "copy failed: no clipboard", m.Notice)
}
