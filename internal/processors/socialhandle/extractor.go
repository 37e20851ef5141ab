package socialhandle

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"crawlkit/internal/model"
)

const sourceID = "socialhandle.Extractor"

// Source is this processor's stable identity.
var Source = model.Source{Name: "socialhandle", ID: sourceID}

// platform pairs a display name with the URL patterns that identify
// profile or content links on that platform.
type platform struct {
	name        string
	urlPatterns []*regexp.Regexp
}

var platforms = []platform{
	{"twitter", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?(?:twitter\.com|x\.com)/([A-Za-z0-9_]{1,15})(?:/|$|\?)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?(?:twitter\.com|x\.com)/([A-Za-z0-9_]{1,15})/status/\d+`),
	}},
	{"facebook", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/([A-Za-z0-9.]+)(?:/|$|\?)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?fb\.com/([A-Za-z0-9.]+)(?:/|$|\?)`),
	}},
	{"instagram", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/([A-Za-z0-9_.]+)(?:/|$|\?)`),
	}},
	{"linkedin", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/in/([A-Za-z0-9_-]+)(?:/|$|\?)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/company/([A-Za-z0-9_-]+)(?:/|$|\?)`),
	}},
	{"github", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?github\.com/([A-Za-z0-9_-]+)(?:/|$|\?)`),
		regexp.MustCompile(`(?i)https?://gist\.github\.com/([A-Za-z0-9_-]+)`),
	}},
	{"youtube", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/(?:channel|c|user)/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/@([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)https?://youtu\.be/([A-Za-z0-9_-]+)`),
	}},
	{"telegram", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?t\.me/([A-Za-z0-9_]+)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?telegram\.me/([A-Za-z0-9_]+)`),
	}},
	{"discord", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?discord\.gg/([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?discord\.com/invite/([A-Za-z0-9]+)`),
	}},
	{"reddit", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?reddit\.com/user/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?reddit\.com/r/([A-Za-z0-9_]+)`),
	}},
	{"mastodon", []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://[A-Za-z0-9.-]+/@([A-Za-z0-9_]+)`),
	}},
}

// invalidPathFragments filters common false-positive links: help pages,
// share intents, and placeholder usernames rather than real profiles.
var invalidPathFragments = []string{
	"/intent/", "/share", "/sharer", "/login", "/signup", "/register",
	"/help", "/about", "/terms", "/privacy", "/settings", "/search",
	"example.com", "placeholder", "username", "yourname",
}

// handlePattern matches bare @handle mentions in free text, independent
// of any platform-specific URL.
var handlePattern = regexp.MustCompile(`(?:^|[^\w])@([A-Za-z0-9_]{1,15})(?:[^\w]|$)`)

var commonWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "media": true,
	"email": true, "contact": true, "admin": true, "support": true,
	"info": true, "help": true, "null": true, "undefined": true,
	"anonymous": true, "example": true,
}

// Extractor is an InputProcessor that finds social platform links and
// @handle mentions in text.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor { return &Extractor{} }

// Source implements processor.InputProcessor.
func (e *Extractor) Source() model.Source { return Source }

// CanProcess implements processor.InputProcessor.
func (e *Extractor) CanProcess(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) bool {
	if handlePattern.MatchString(input.RawInput) {
		return true
	}
	for _, p := range platforms {
		for _, re := range p.urlPatterns {
			if re.MatchString(input.RawInput) {
				return true
			}
		}
	}
	return false
}

// Process implements processor.InputProcessor.
func (e *Extractor) Process(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) (model.Output, error) {
	var records []model.Record
	seen := make(map[string]bool)

	for _, p := range platforms {
		for _, re := range p.urlPatterns {
			for _, token := range strings.Fields(input.RawInput) {
				link := strings.TrimRight(re.FindString(token), "/?")
				if link == "" || !isValidSocialLink(token) || seen[link] {
					continue
				}
				seen[link] = true
				records = append(records, model.NewRecord(
					model.F("profileURL", model.Uncrawlable(link)),
					model.F("platform", model.Uncrawlable(p.name)),
				))
			}
		}
	}

	seenHandles := make(map[string]bool)
	for _, match := range handlePattern.FindAllStringSubmatch(input.RawInput, -1) {
		if len(match) < 2 {
			continue
		}
		handle := strings.ToLower(match[1])
		if commonWords[handle] || seenHandles[handle] {
			continue
		}
		seenHandles[handle] = true
		records = append(records, model.NewRecord(
			model.F("handle", model.Uncrawlable("@"+match[1])),
			model.F("platform", model.Uncrawlable(platformTitle("mention"))),
		))
	}

	return model.Output{
		Source:    Source,
		StartedBy: input.Source,
		Input:     input.RawInput,
		Data:      records,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

func isValidSocialLink(link string) bool {
	lower := strings.ToLower(link)
	for _, invalid := range invalidPathFragments {
		if strings.Contains(lower, invalid) {
			return false
		}
	}
	return true
}

// platformTitle renders a platform key in title case. Process uses it for
// the platform label of @handle mentions; URL matches keep the lowercase
// key from the platforms table.
func platformTitle(platform string) string {
	return cases.Title(language.English).String(platform)
}
