package printers

import (
	"fmt"
	"strings"
)

// parseOptions splits lpoptions output ("k=v k2='quoted value' flag") into a map.
// Values may be single or double quoted and may contain backslash escapes.
func parseOptions(line string) (map[string]string, error) {
	opts := make(map[string]string)

	var (
		key, val    strings.Builder
		inValue     bool
		quote       rune
		escaped     bool
		haveContent bool
	)

	flush := func() {
		if !haveContent {
			return
		}
		if key.Len() > 0 {
			opts[key.String()] = val.String()
		}
		key.Reset()
		val.Reset()
		inValue = false
		haveContent = false
	}

	for _, r := range line {
		switch {
		case escaped:
			escaped = false
			if inValue {
				val.WriteRune(r)
			} else {
				key.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			haveContent = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				val.WriteRune(r)
			}
		case (r == '\'' || r == '"') && inValue:
			quote = r
		case r == '=' && !inValue:
			inValue = true
			haveContent = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			haveContent = true
			if inValue {
				val.WriteRune(r)
			} else {
				key.WriteRune(r)
			}
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in options", quote)
	}
	flush()

	return opts, nil
}

// normalizeState maps IPP numeric printer-state values to keywords.
func normalizeState(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "3", AttrStateIdle:
		return AttrStateIdle
	case "4", AttrStateBusy:
		return AttrStateBusy
	case "5", AttrStateStopped:
		return AttrStateStopped
	default:
		return strings.TrimSpace(v)
	}
}

// normalizeAttributes rewrites CUPS option names into the shared attribute set.
// Unknown keys are kept verbatim.
func normalizeAttributes(opts map[string]string) map[string]string {
	attrs := make(map[string]string, len(opts)+1)
	for k, v := range opts {
		attrs[k] = v
	}

	if uri, ok := opts[AttrDeviceURI]; ok {
		if _, has := attrs[AttrURI]; !has {
			attrs[AttrURI] = uri
		}
	}
	if state, ok := opts[AttrState]; ok {
		attrs[AttrState] = normalizeState(state)
	}
	if accepting, ok := opts[AttrAcceptingJobs]; ok {
		attrs[AttrAcceptingJobs] = strings.ToLower(strings.TrimSpace(accepting))
	}

	return attrs
}
