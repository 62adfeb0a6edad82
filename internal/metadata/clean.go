package metadata

import "strings"

// maxCleanPasses bounds the fixed-point loop; real titles settle in two or three.
const maxCleanPasses = 16

// CleanTitle strips promotional noise, the featured artist and "ft." leftovers
// from s, then tidies spacing and brackets. The result is stable: cleaning it
// again returns the same string.
func CleanTitle(s, featured string) string {
	return untilStable(s, func(cur string) string {
		cur = applyRules(cur, NoiseRules)
		if featured != "" {
			cur = strings.ReplaceAll(cur, featured, "")
		}
		cur = applyRules(cur, featuredPlaceholderRules)
		return tidy(cur)
	})
}

// CleanRemix removes the author's name from the title and unwraps version
// qualifiers such as "(Remix)" into plain words.
func CleanRemix(title, author string) string {
	if author != "" {
		title = strings.ReplaceAll(title, author, "")
	}
	title = strings.ReplaceAll(title, "()", "")
	title = tidy(title)
	title = versionQualifier.ReplaceAllString(title, "$1")
	return tidy(title)
}

func tidy(s string) string {
	return untilStable(s, func(cur string) string {
		return strings.TrimSpace(applyRules(cur, tidyRules))
	})
}

func untilStable(s string, pass func(string) string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}
