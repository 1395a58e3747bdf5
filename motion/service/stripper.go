package service

import "regexp"

// braced matches a JSX expression container such as {fadeIn}, {{ opacity: 0 }}
// or {{ hidden: { opacity: 0 } }}, nesting up to maxBraceDepth levels.
var braced = nestedBraces(maxBraceDepth)

const maxBraceDepth = 4

func nestedBraces(depth int) string {
	pattern := `\{[^{}]*\}`
	for i := 1; i < depth; i++ {
		pattern = `\{(?:[^{}]|` + pattern + `)*\}`
	}
	return pattern
}

type rule struct {
	name string
	expr *regexp.Regexp
}

func newRule(name, pattern string) *rule {
	return &rule{name: name, expr: regexp.MustCompile(pattern)}
}

// remove deletes every match of the rule and records the count in report.
func (r *rule) remove(text string, report *Report) string {
	matches := r.expr.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	report.Edits += len(matches)
	report.Removed[r.name] += len(matches)
	return r.expr.ReplaceAllLiteralString(text, "")
}

// Order matters: the className rule cleans up what the earlier ones leave behind.
var animationRules = []*rule{
	newRule("initial", `\s+initial="[^"]*"`),
	newRule("initial", `\s+initial=`+braced),
	newRule("animate", `\s+animate="[^"]*"`),
	newRule("animate", `\s+animate=`+braced),
	newRule("variants", `\s+variants=`+braced),
	newRule("whileInView", `\s+whileInView=`+braced),
	newRule("whileHover", `\s+whileHover=`+braced),
	newRule("whileTap", `\s+whileTap=`+braced),
	newRule("viewport", `\s+viewport=`+braced),
	newRule("transition", `\s+transition=`+braced),
	newRule("exit", `\s+exit=`+braced),
	newRule("heroY", `\s+style=\{\s*\{\s*y:\s*heroY.*?\}\s*\}`),
	newRule("heroOpacity", `\s+style=\{\s*\{\s*opacity:\s*heroOpacity.*?\}\s*\}`),
}

var emptyClassName = newRule("className", `\s+className=""`)

// Report summarises what a Stripper removed.
type Report struct {
	Edits   int
	Removed map[string]int
}

// Stripper removes animation props from JSX source text.
type Stripper struct {
	rules []*rule
}

// Apply runs every rule in order and returns the cleaned text with a removal report.
func (s *Stripper) Apply(text string) (string, *Report) {
	report := &Report{Removed: map[string]int{}}
	for _, r := range s.rules {
		text = r.remove(text, report)
	}
	return text, report
}

// NewStripper returns a Stripper with the fixed animation rule set.
func NewStripper() *Stripper {
	rules := make([]*rule, 0, len(animationRules)+1)
	rules = append(rules, animationRules...)
	rules = append(rules, emptyClassName)
	return &Stripper{rules: rules}
}

var defaultStripper = NewStripper()

// Strip removes animation props from text.
func Strip(text string) string {
	out, _ := defaultStripper.Apply(text)
	return out
}
