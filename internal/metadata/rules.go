package metadata

import "regexp"

// Rule is one case-insensitive rewrite applied while cleaning a title.
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// Apply runs the rule against s.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replace)
}

// Token is one denylist entry. Tokens are removed as plain substrings, so
// "TaylorSwiftVEVO" loses its "VEVO"; WholeWord tokens only match as a
// separate word because they commonly occur inside real names.
type Token struct {
	Text      string
	WholeWord bool
}

// DenylistTokens are promotional phrases stripped from titles and authors.
// Longer phrases come first so that they are removed whole.
var DenylistTokens = []Token{
	{Text: "Official Music Video"},
	{Text: "Official Lyric Video"},
	{Text: "Performance Video"},
	{Text: "Official Video"},
	{Text: "Official Audio"},
	{Text: "Lyric Video"},
	{Text: "Music Video"},
	{Text: "Extended Version"},
	{Text: "Radio Edit"},
	{Text: "Clip Officiel"},
	{Text: "(Video)"},
	{Text: "(Clean)"},
	{Text: "[HQ]"},
	{Text: "Visualizer"},
	{Text: "Instrumental"},
	{Text: "Official"},
	{Text: "Explicit"},
	{Text: "Teaser"},
	{Text: "Cover", WholeWord: true}, // Discovery
	{Text: "Audio", WholeWord: true}, // Audioslave
	{Text: "Video"},
	{Text: "Demo", WholeWord: true}, // Democracy
	{Text: "VEVO"},
	{Text: "HD", WholeWord: true}, // Withdrawal
	{Text: "HQ", WholeWord: true},
	{Text: "4K", WholeWord: true},
	{Text: "MV", WholeWord: true},
	{Text: "|"},
}

// NoiseRules is the denylist compiled into rules, in table order.
var NoiseRules = compileTokens(DenylistTokens)

// featuredPlaceholderRules drop what is left of an "ft." marker once the
// featured artist itself has been removed.
var featuredPlaceholderRules = []Rule{
	{regexp.MustCompile(`(?i)\(\s*ft\.?\s*\)`), ""},
	{regexp.MustCompile(`(?i)\bft\.?(\s+|$)`), ""},
}

// tidyRules normalise spacing and bracket artifacts left behind by removals.
var tidyRules = []Rule{
	{regexp.MustCompile(`\s{2,}`), " "},
	{regexp.MustCompile(`\(\s*\)`), ""},
	{regexp.MustCompile(`\[\s*\]`), ""},
	{regexp.MustCompile(`([(\[])\s+`), "$1"},
	{regexp.MustCompile(`\s+([)\]])`), "$1"},
	{regexp.MustCompile(`/`), " - "},
}

// versionQualifier matches a parenthesised remix/version word.
var versionQualifier = regexp.MustCompile(`(?i)\((bootleg|remix|edit|mix|rework|re-edit)\)`)

func compileTokens(tokens []Token) []Rule {
	rules := make([]Rule, 0, len(tokens))
	for _, token := range tokens {
		rules = append(rules, Rule{Pattern: tokenPattern(token), Replace: ""})
	}
	return rules
}

// tokenPattern matches token case-insensitively, bounded by word edges for
// WholeWord tokens.
func tokenPattern(token Token) *regexp.Regexp {
	expr := regexp.QuoteMeta(token.Text)
	if token.WholeWord {
		expr = `\b` + expr + `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func applyRules(s string, rules []Rule) string {
	for _, rule := range rules {
		s = rule.Apply(s)
	}
	return s
}
