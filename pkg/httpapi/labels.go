package httpapi

import (
	"fmt"
	"strings"

	"github.com/cuemby/chainsaw/pkg/label"
)

// parseLabelParams turns repeated "label=name=value" query parameters into
// Labels, splitting each on the first "=" only (a value may itself contain
// "=").
func parseLabelParams(values []string) ([]label.Label, error) {
	out := make([]label.Label, 0, len(values))
	for _, v := range values {
		idx := strings.Index(v, "=")
		if idx < 0 {
			return nil, fmt.Errorf("malformed label parameter %q: want name=value", v)
		}
		out = append(out, label.New(v[:idx], v[idx+1:]))
	}
	return out, nil
}
