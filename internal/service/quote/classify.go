package quote

import (
	"regexp"
	"strings"
)

type PerformerType string

const (
	PerformerFrontend PerformerType = "frontend"
	PerformerBackend  PerformerType = "backend"
	PerformerOther    PerformerType = "other"
)

var (
	frontendToken = regexp.MustCompile(`\b(fe|front)\b`)
	backendToken  = regexp.MustCompile(`\b(be|back)\b`)
)

// ClassifyPerformer maps a free-text performer label to a coarse role.
// Short tokens ("fe", "front", "be", "back") only match as whole words,
// so "Fronted Developer" or "Software Engineer" fall through to other.
func ClassifyPerformer(label string) PerformerType {
	name := strings.ToLower(label)

	if strings.Contains(name, "front-end") || strings.Contains(name, "frontend") || frontendToken.MatchString(name) {
		return PerformerFrontend
	}

	if strings.Contains(name, "back-end") || strings.Contains(name, "backend") || backendToken.MatchString(name) {
		return PerformerBackend
	}

	return PerformerOther
}
