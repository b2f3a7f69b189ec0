package normalize

import (
	"regexp"
	"strings"
)

// DefaultPlotPrefix is the marker written in front of plot numbers in
// owner exports.
const DefaultPlotPrefix = "АП-"

// PlotCleaner strips a case-insensitive prefix marker from plot identifiers.
type PlotCleaner struct {
	prefix *regexp.Regexp
}

// NewPlotCleaner returns a cleaner for the given marker. An empty marker
// disables prefix stripping.
func NewPlotCleaner(marker string) *PlotCleaner {
	c := &PlotCleaner{}
	if marker != "" {
		c.prefix = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(marker))
	}
	return c
}

var defaultCleaner = NewPlotCleaner(DefaultPlotPrefix)

// CleanPlot cleans a plot identifier with the default marker.
func CleanPlot(input string) string {
	return defaultCleaner.Clean(input)
}

// Clean trims the value and removes the marker from its start.
// Repeated markers are all removed so that Clean(Clean(x)) == Clean(x).
func (c *PlotCleaner) Clean(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || c.prefix == nil {
		return s
	}
	for {
		stripped := strings.TrimSpace(c.prefix.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}
