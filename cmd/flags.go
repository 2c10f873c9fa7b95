package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// orientationValue is a pflag.Value that remembers whether it was set, so an
// unset flag leaves the definition's orientation alone.
type orientationValue struct {
	value resize.Orientation
	set   bool
}

var _ pflag.Value = (*orientationValue)(nil)

func (o *orientationValue) String() string {
	if !o.set {
		return ""
	}
	return o.value.String()
}

func (o *orientationValue) Set(s string) error {
	v, err := resize.ParseOrientation(s)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o *orientationValue) Type() string { return "orientation" }

// parseSets turns --set key=value pairs into a nested map. Dotted keys create
// nested maps; values are decoded as YAML scalars so that true, 3 and 1.5 keep
// their types.
func parseSets(sets []string) (map[string]any, error) {
	out := map[string]any{}
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", s)
		}
		var val any = v
		if strings.TrimSpace(v) != "" {
			var decoded any
			if err := yaml.Unmarshal([]byte(v), &decoded); err == nil {
				switch decoded.(type) {
				case map[string]any, []any:
				default:
					val = decoded
				}
			}
		}
		path := strings.Split(k, ".")
		m := out
		for _, p := range path[:len(path)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[p] = next
			}
			m = next
		}
		m[path[len(path)-1]] = val
	}
	return out, nil
}
