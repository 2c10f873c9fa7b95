package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates key presses on m. Tokens in angle brackets name
// special keys (<left>, <right>, <tab>, <c-c>); anything else is typed rune by
// rune. A leading backslash forces literal text.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		for _, msg := range keyMsgsFromToken(token) {
			m.Update(msg)
		}
	}
}

func keyMsgsFromToken(token string) []tea.KeyPressMsg {
	if strings.HasPrefix(token, `\`) {
		return literalKeys(strings.TrimPrefix(token, `\`))
	}
	var msgs []tea.KeyPressMsg
	for token != "" {
		start := strings.Index(token, "<")
		end := strings.Index(token, ">")
		if start < 0 || end < start {
			msgs = append(msgs, literalKeys(token)...)
			break
		}
		msgs = append(msgs, literalKeys(token[:start])...)
		if msg, ok := specialKey(token[start+1 : end]); ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, literalKeys(token[start:end+1])...)
		}
		token = token[end+1:]
	}
	return msgs
}

func specialKey(name string) (tea.KeyPressMsg, bool) {
	switch strings.ToLower(name) {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "c-c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, true
	}
	return tea.KeyPressMsg{}, false
}

func literalKeys(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}
