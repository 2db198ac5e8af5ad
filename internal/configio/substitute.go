package configio

import (
	"os"
	"strings"
)

// Resolver substitutes ${NAME} and ${NAME:default} in a string field,
// resolving names through this chain: box-level variables; ancestor box
// variables walking up to the layout root; application variables;
// process environment; then the literal default. There is no layout-level
// variable map: Layout carries no variables of its own. Substitution is a
// single pass — a default is never itself substituted.
type Resolver struct {
	// chain is ordered highest to lowest precedence: box, then each
	// ancestor box out to the layout root, then the application variables.
	chain []map[string]string
	getenv func(string) string
}

// NewResolver builds a Resolver for a box at the given ancestor chain
// (innermost first: the box itself, its parent, ... the layout root).
func NewResolver(appVars map[string]string, boxChainInnerFirst ...map[string]string) *Resolver {
	chain := make([]map[string]string, 0, len(boxChainInnerFirst)+1)
	chain = append(chain, boxChainInnerFirst...)
	chain = append(chain, appVars)
	return &Resolver{chain: chain, getenv: os.Getenv}
}

// Substitute replaces every ${NAME} / ${NAME:default} occurrence in s.
func (r *Resolver) Substitute(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		start += i
		out.WriteString(s[i:start])

		end := strings.IndexByte(s[start+2:], '}')
		if end < 0 {
			// Unterminated — emit the rest literally.
			out.WriteString(s[start:])
			break
		}
		end += start + 2

		expr := s[start+2 : end]
		name, def, hasDefault := expr, "", false
		if idx := strings.IndexByte(expr, ':'); idx >= 0 {
			name, def, hasDefault = expr[:idx], expr[idx+1:], true
		}

		out.WriteString(r.resolve(name, def, hasDefault))
		i = end + 1
	}
	return out.String()
}

func (r *Resolver) resolve(name, def string, hasDefault bool) string {
	for _, vars := range r.chain {
		if vars == nil {
			continue
		}
		if v, ok := vars[name]; ok {
			return v
		}
	}
	if v := r.getenv(name); v != "" {
		return v
	}
	if hasDefault {
		return def
	}
	return ""
}
