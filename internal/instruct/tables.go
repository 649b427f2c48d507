package instruct

import "regexp"

// The extractor catalogs are ordered slices, not maps: entry order encodes
// matching precedence.

var colorNames = []struct {
	re  *regexp.Regexp
	hex string
}{
	{regexp.MustCompile(`\bred\b`), "#FF0000"},
	{regexp.MustCompile(`\bblue\b`), "#1F77B4"},
	{regexp.MustCompile(`\bgreen\b`), "#2CA02C"},
	{regexp.MustCompile(`\borange\b`), "#FF7F0E"},
	{regexp.MustCompile(`\bpurple\b`), "#9467BD"},
	{regexp.MustCompile(`\byellow\b`), "#F2C200"},
	{regexp.MustCompile(`\bblack\b`), "#000000"},
	{regexp.MustCompile(`\bwhite\b`), "#FFFFFF"},
	{regexp.MustCompile(`\bgray\b`), "#808080"},
	{regexp.MustCompile(`\bgrey\b`), "#808080"},
	{regexp.MustCompile(`\bpink\b`), "#E377C2"},
	{regexp.MustCompile(`\bteal\b`), "#17BECF"},
}

var dashKeywords = []struct {
	keyword string
	style   string
}{
	{"short dash dot", "ShortDashDot"},
	{"short dash", "ShortDash"},
	{"long dash", "LongDash"},
	{"dashdot", "DashDot"},
	{"dash-dot", "DashDot"},
	{"dotted", "Dot"},
	{"dot", "Dot"},
	{"dashed", "Dash"},
	{"dash", "Dash"},
	{"solid", "Solid"},
}

var ordinalWords = map[string]int{
	"first":   0,
	"second":  1,
	"third":   2,
	"fourth":  3,
	"fifth":   4,
	"sixth":   5,
	"seventh": 6,
	"eighth":  7,
	"ninth":   8,
	"tenth":   9,
}

var positivePhrases = []string{
	"enable",
	"turn on",
	"turn it on",
	"show",
	"display",
	"activate",
	"add",
	"use",
}

var negativePhrases = []string{
	"disable",
	"turn off",
	"turn it off",
	"hide",
	"remove",
	"deactivate",
	"suppress",
}

var markerSymbols = []struct {
	keyword string
	symbol  string
}{
	{"circle", "circle"},
	{"square", "square"},
	{"diamond", "diamond"},
	{"triangle", "triangle"},
	{"triangle-down", "triangle-down"},
	{"triangle down", "triangle-down"},
}

var areaLikeKinds = map[string]struct{}{
	"area":       {},
	"areaspline": {},
}

var (
	sentenceSplitRe   = regexp.MustCompile(`[.;\n]+`)
	hexColorRe        = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})`)
	rgbColorRe        = regexp.MustCompile(`(?i)rgb\s*\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\)`)
	seriesNumberRe    = regexp.MustCompile(`(?i)series\s+(\d+)`)
	ordinalSeriesRe   = regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\s+(series|line|bar|column|area)\b`)
	lineWidthBeforeRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:px|pt)?\s*(?:line width|linewidth|thickness|stroke)`)
	lineWidthAfterRe  = regexp.MustCompile(`(?i)(?:line width|linewidth|thickness|stroke)\s*(?:of|to)?\s*(\d+(?:\.\d+)?)(?:\s*(?:px|pt))?`)
	fillOpacityRe     = regexp.MustCompile(`(?i)fill opacity.*?(\d+(?:\.\d+)?%?)`)
	innerSizeRe       = regexp.MustCompile(`(?i)inner size.*?(\d+%)`)
	donutSizeRe       = regexp.MustCompile(`(?i)(donut|doughnut).*?(\d+%)`)
	radiusBeforeRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:px)?\s*(?:radius|size)`)
	radiusAfterRe     = regexp.MustCompile(`(?i)(?:radius|size).*?(\d+(?:\.\d+)?)(?:\s*px)?`)
)
