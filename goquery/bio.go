package goquery

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kickprof"
)

// Badge identifiers as they appear in the data-badges attribute.
const (
	BadgeBackerFavorite = "backer-favorite"
	BadgeSuperbacker    = "superbacker"
)

// LocationPart identifies one component of a "City, State" location string.
type LocationPart string

// Location components.
const (
	LocationCity  LocationPart = "city"
	LocationState LocationPart = "state"
)

// joinedLayouts are the accepted shapes of the time element's datetime
// attribute: ISO-8601 with a colon-separated or compact UTC offset.
var joinedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
}

var backedPattern = regexp.MustCompile(`Backed (\d+) projects`)

// ParseLocation splits a free-text "City, State" string and returns the
// requested component. Content is not validated; free text passes through
// unchanged. Empty or malformed input yields nil, never an error.
func ParseLocation(text string, part LocationPart) *string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ", ")
	switch part {
	case LocationCity:
		return &parts[0]
	case LocationState:
		if len(parts) > 1 {
			return &parts[1]
		}
	}
	return nil
}

// ExtractName returns the creator's name from the bio sub-tree, or nil if
// the heading element is missing.
func ExtractName(bio *goquery.Selection) *string {
	heading := bio.Find("h2.mb2").First()
	if heading.Length() == 0 {
		return nil
	}
	name := strings.TrimSpace(heading.Text())
	return &name
}

// ExtractLocation returns the requested component of the creator's location,
// or nil if the location element is missing.
func ExtractLocation(bio *goquery.Selection, part LocationPart) *string {
	anchor := bio.Find("span.location a").First()
	if anchor.Length() == 0 {
		return nil
	}
	return ParseLocation(strings.TrimSpace(anchor.Text()), part)
}

// ExtractJoined returns the date the creator joined, parsed from the
// machine-readable datetime attribute of the time element nested inside the
// joined marker. A missing link anywhere in that chain yields (nil, nil).
// A datetime value that is present but matches none of the accepted layouts
// is a genuine parse failure and is returned as an error.
func ExtractJoined(bio *goquery.Selection) (*time.Time, error) {
	timeEl := bio.Find("span.joined time").First()
	if timeEl.Length() == 0 {
		return nil, nil
	}
	value, exists := timeEl.Attr("datetime")
	if !exists {
		return nil, nil
	}

	for _, layout := range joinedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, kickprof.Errorf(kickprof.EINVALID, "malformed joined timestamp %q", value)
}

// HasBadge reports whether the bio sub-tree's data-badges attribute, a
// serialized JSON array of badge identifier strings, contains badge.
// A missing attribute, an empty value, or malformed JSON all yield false.
func HasBadge(bio *goquery.Selection, badge string) bool {
	attr, exists := bio.Find("div[data-badges]").First().Attr("data-badges")
	if !exists || attr == "" {
		return false
	}

	var badges []string
	if err := json.Unmarshal([]byte(attr), &badges); err != nil {
		return false
	}
	for _, b := range badges {
		if b == badge {
			return true
		}
	}
	return false
}

// ExtractBackedCount returns the number of projects the creator has backed,
// matched from the "Backed N projects" phrase in the backed marker element.
// A missing marker or a non-matching phrase yields 0.
func ExtractBackedCount(bio *goquery.Selection) int {
	backed := bio.Find("span.backed").First()
	if backed.Length() == 0 {
		return 0
	}
	match := backedPattern.FindStringSubmatch(backed.Text())
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// ExtractAbout returns the creator's description from the og:description
// meta element of the full document, or nil if the element or its content
// attribute is missing.
func ExtractAbout(doc *goquery.Document) *string {
	content, exists := doc.Find(`meta[property="og:description"]`).First().Attr("content")
	if !exists {
		return nil
	}
	return &content
}

// ExtractCreatedCount returns the number of projects the creator has
// launched, read from the count element nested inside the profile_created
// anchor of the full document. A missing link or unparsable count yields 0.
func ExtractCreatedCount(doc *goquery.Document) int {
	count := doc.Find("a#profile_created span.count").First()
	if count.Length() == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(count.Text()))
	if err != nil {
		return 0
	}
	return n
}
