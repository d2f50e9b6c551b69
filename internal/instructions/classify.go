package instructions

import (
	"regexp"
	"strings"

	"quantaroute-demo/internal/domain"
)

// Emphasis marks a street name inside instruction text. The renderer picks
// the markup; Strong is the default.
type Emphasis func(string) string

func Strong(s string) string { return "<strong>" + s + "</strong>" }

func Plain(s string) string { return s }

// DetectTurnType classifies free-text instructions by keyword. The order of
// the checks matters: "turn left onto" must not fall through to "continue".
func DetectTurnType(text string) domain.TurnType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "turn left") || strings.Contains(t, "left onto"):
		return domain.TurnLeft
	case strings.Contains(t, "turn right") || strings.Contains(t, "right onto"):
		return domain.TurnRight
	case strings.Contains(t, "u-turn") || strings.Contains(t, "u turn"):
		return domain.TurnUTurn
	case strings.Contains(t, "continue") || strings.Contains(t, "keep"):
		return domain.TurnContinue
	case strings.Contains(t, "arrive") || strings.Contains(t, "destination"):
		return domain.TurnArrive
	default:
		return domain.TurnStraight
	}
}

const roadSuffix = `(?:Road|Street|Avenue|Drive|Lane|Way|Boulevard|Place)`

var streetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)onto ([A-Za-z\s]+` + roadSuffix + `)`),
	regexp.MustCompile(`(?i)on ([A-Za-z\s]+` + roadSuffix + `)`),
	regexp.MustCompile(`(?i)along ([A-Za-z\s]+` + roadSuffix + `)`),
	regexp.MustCompile(`(?i)onto ([A-Za-z\s]+)`),
}

// ExtractStreetName pulls a road name out of instruction text, or nil.
func ExtractStreetName(text string) *string {
	for _, re := range streetPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if s := strings.TrimSpace(m[1]); s != "" {
			return &s
		}
	}
	return nil
}

var (
	leadingThe  = regexp.MustCompile(`(?i)^the\s+`)
	genericRoad = regexp.MustCompile(`(?i)^(route|road|way|path)$`)
)

// CleanStreetName drops a leading "the" and blanks out names too generic to
// be worth showing.
func CleanStreetName(name string) string {
	s := leadingThe.ReplaceAllString(name, "")
	if genericRoad.MatchString(strings.TrimSpace(s)) {
		return ""
	}
	return s
}

// InjectStreetName returns text mentioning street. A name already in the
// text is emphasized in place; otherwise it is worked into the phrase for
// the maneuver.
func InjectStreetName(text string, street *string, emph Emphasis) string {
	if text == "" || street == nil {
		return text
	}
	if emph == nil {
		emph = Strong
	}
	name := CleanStreetName(*street)
	if name == "" {
		return text
	}

	if strings.Contains(strings.ToLower(text), strings.ToLower(name)) {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name))
		return re.ReplaceAllStringFunc(text, emph)
	}
	return buildWithStreet(text, name, emph)
}

// phrase rewrites the first occurrence of match unless the text already
// contains guard (it already names a road).
type phrase struct {
	match  *regexp.Regexp
	guard  string
	prefix string
}

var phrases = []phrase{
	{regexp.MustCompile(`(?i)turn left`), " onto ", "Turn left onto "},
	{regexp.MustCompile(`(?i)turn right`), " onto ", "Turn right onto "},
	{regexp.MustCompile(`(?i)keep left`), " on ", "Keep left on "},
	{regexp.MustCompile(`(?i)keep right`), " on ", "Keep right on "},
	{regexp.MustCompile(`(?i)continue`), " on ", "Continue on "},
}

var headDirection = regexp.MustCompile(`(?i)head\s+(\w+)`)

func buildWithStreet(text, name string, emph Emphasis) string {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p.guard) {
			continue
		}
		if loc := p.match.FindStringIndex(text); loc != nil {
			return text[:loc[0]] + p.prefix + emph(name) + text[loc[1]:]
		}
	}
	if !strings.Contains(lower, " on ") {
		if m := headDirection.FindStringSubmatchIndex(text); m != nil {
			return text[:m[0]] + "Head " + text[m[2]:m[3]] + " on " + emph(name) + text[m[1]:]
		}
	}
	return text + " on " + emph(name)
}
