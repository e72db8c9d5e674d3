package extract

import "regexp"

var (
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([\w-]+)`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([\w-]+)`)
)

// Links are public profile URLs mentioned in a résumé.
type Links struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// FindLinks returns the first LinkedIn and GitHub profile referenced in text,
// normalised to their canonical https form. Repository URLs collapse to the owner.
func FindLinks(text string) Links {
	var links Links

	if m := linkedinRe.FindStringSubmatch(text); m != nil {
		links.LinkedIn = "https://linkedin.com/in/" + m[1]
	}
	if m := githubRe.FindStringSubmatch(text); m != nil {
		links.GitHub = "https://github.com/" + m[1]
	}

	return links
}
