// Package instruct translates plain-language chart instructions into ordered
// path/value updates. Extraction is rule-based: fixed keyword catalogs and
// regular expressions, no model calls.
package instruct

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// Update is one path/value pair derived from an instruction or supplied
// explicitly by a caller.
type Update struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Translate converts instruction text into ordered updates against the given
// document. It never fails: a sentence with nothing recognizable contributes
// no updates. Results are ordered by sentence, then by extractor within a
// sentence.
func Translate(text string, doc chartdoc.Document) []Update {
	if text == "" {
		return nil
	}

	chartKind := chartdoc.ChartKind(doc)
	series := chartdoc.SeriesList(doc)

	var updates []Update
	for _, sentence := range splitSentences(text) {
		lowered := strings.ToLower(sentence)
		targets := seriesTargets(lowered, series)
		color := extractColor(sentence, lowered)

		if color != "" && len(targets) > 0 {
			for _, idx := range targets {
				updates = append(updates, Update{Path: seriesPath(idx, "color"), Value: color})
			}
		}

		if dash := extractDashStyle(lowered); dash != "" && len(targets) > 0 {
			for _, idx := range targets {
				updates = append(updates, Update{Path: seriesPath(idx, "dashStyle"), Value: dash})
			}
		}

		if width := extractLineWidth(sentence); width != nil && len(targets) > 0 {
			for _, idx := range targets {
				updates = append(updates, Update{Path: seriesPath(idx, "lineWidth"), Value: width})
			}
		}

		if strings.Contains(lowered, "data label") {
			if value, ok := detectBoolean(lowered); ok {
				if len(targets) > 0 && !mentionsAllSeries(lowered) {
					for _, idx := range targets {
						updates = append(updates, Update{Path: seriesPath(idx, "dataLabels.enabled"), Value: value})
					}
				} else {
					updates = append(updates, Update{Path: "plotOptions.series.dataLabels.enabled", Value: value})
				}
			}
		}

		if strings.Contains(lowered, "legend") {
			if value, ok := detectBoolean(lowered); ok {
				updates = append(updates, Update{Path: "legend.enabled", Value: value})
			}
		}

		mentionsMarker := strings.Contains(lowered, "marker")
		if mentionsMarker {
			if value, ok := detectBoolean(lowered); ok {
				updates = append(updates, Update{Path: markerEnabledPath(chartKind), Value: value})
			}

			if radius := extractMarkerRadius(sentence); radius != nil {
				if chartKind == "scatter" {
					updates = append(updates, Update{Path: "plotOptions.scatter.marker.radius", Value: radius})
				} else {
					for _, idx := range targets {
						updates = append(updates, Update{Path: seriesPath(idx, "marker.radius"), Value: radius})
					}
				}
			}

			if symbol := extractMarkerSymbol(lowered); symbol != "" {
				if chartKind == "scatter" {
					updates = append(updates, Update{Path: "plotOptions.scatter.marker.symbol", Value: symbol})
				} else {
					for _, idx := range targets {
						updates = append(updates, Update{Path: seriesPath(idx, "marker.symbol"), Value: symbol})
					}
				}
			}
		}

		if color != "" && len(targets) == 0 && chartKind == "scatter" && mentionsMarker {
			updates = append(updates, Update{Path: "plotOptions.scatter.marker.fillColor", Value: color})
		}

		if _, areaLike := areaLikeKinds[chartKind]; areaLike {
			if opacity, ok := extractFillOpacity(sentence); ok {
				updates = append(updates, Update{Path: "plotOptions." + chartKind + ".fillOpacity", Value: opacity})
			}
		}

		if chartKind == "pie" {
			if size := extractInnerSize(sentence); size != "" {
				updates = append(updates, Update{Path: "plotOptions.pie.innerSize", Value: size})
			}
			if strings.Contains(lowered, "legend") {
				if value, ok := detectBoolean(lowered); ok {
					updates = append(updates, Update{Path: "plotOptions.pie.showInLegend", Value: value})
				}
			}
			if strings.Contains(lowered, "data label") {
				if value, ok := detectBoolean(lowered); ok {
					updates = append(updates, Update{Path: "plotOptions.pie.dataLabels.enabled", Value: value})
				}
			}
		}
	}

	return updates
}

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// seriesTargets resolves which series indices a sentence refers to. Rules are
// tried in precedence order; a rule that recognizes its phrasing but resolves
// out of range falls through to the next rule.
func seriesTargets(lowered string, series []any) []int {
	total := len(series)
	if total == 0 {
		return nil
	}

	if mentionsAllSeries(lowered) {
		targets := make([]int, total)
		for i := range targets {
			targets[i] = i
		}
		return targets
	}

	if m := seriesNumberRe.FindStringSubmatch(lowered); m != nil {
		if num, err := strconv.Atoi(m[1]); err == nil && num >= 1 && num <= total {
			return []int{num - 1}
		}
	}

	if m := ordinalSeriesRe.FindStringSubmatch(lowered); m != nil {
		if idx, ok := ordinalWords[strings.ToLower(m[1])]; ok && idx < total {
			return []int{idx}
		}
	}

	for idx, entry := range series {
		if name := seriesName(entry); name != "" && strings.Contains(lowered, strings.ToLower(name)) {
			return []int{idx}
		}
	}

	if strings.Contains(lowered, "series") && total == 1 {
		return []int{0}
	}

	return nil
}

func seriesName(entry any) string {
	m, ok := entry.(map[string]any)
	if !ok {
		return ""
	}
	name, ok := m["name"]
	if !ok || name == nil {
		return ""
	}
	if s, ok := name.(string); ok {
		return s
	}
	return fmt.Sprint(name)
}

func seriesPath(idx int, suffix string) string {
	return fmt.Sprintf("series[%d].%s", idx, suffix)
}

func mentionsAllSeries(lowered string) bool {
	return strings.Contains(lowered, "all series") || strings.Contains(lowered, "every series")
}

// extractColor finds a hex literal, an rgb() literal, or a known color name,
// in that order. Hex literals are normalized to uppercase; rgb() literals
// pass through verbatim.
func extractColor(sentence, lowered string) string {
	if m := hexColorRe.FindString(sentence); m != "" {
		return strings.ToUpper(m)
	}
	if m := rgbColorRe.FindString(sentence); m != "" {
		return m
	}
	for _, c := range colorNames {
		if c.re.MatchString(lowered) {
			return c.hex
		}
	}
	return ""
}

func extractDashStyle(lowered string) string {
	for _, d := range dashKeywords {
		if strings.Contains(lowered, d.keyword) {
			return d.style
		}
	}
	return ""
}

func extractLineWidth(sentence string) any {
	if m := lineWidthBeforeRe.FindStringSubmatch(sentence); m != nil {
		return numberValue(m[1])
	}
	if m := lineWidthAfterRe.FindStringSubmatch(sentence); m != nil {
		return numberValue(m[1])
	}
	return nil
}

// detectBoolean resolves toggle phrasing. Negative phrases are checked first
// so wording like "turn off" is not also claimed by the positive "turn on"
// list.
func detectBoolean(lowered string) (bool, bool) {
	for _, phrase := range negativePhrases {
		if strings.Contains(lowered, phrase) {
			return false, true
		}
	}
	for _, phrase := range positivePhrases {
		if strings.Contains(lowered, phrase) {
			return true, true
		}
	}
	return false, false
}

func extractFillOpacity(sentence string) (float64, bool) {
	m := fillOpacityRe.FindStringSubmatch(sentence)
	if m == nil {
		return 0, false
	}
	raw := strings.TrimSpace(m[1])
	var numeric float64
	if strings.HasSuffix(raw, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, false
		}
		numeric = f / 100
	} else {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		numeric = f
	}
	return math.Max(0, math.Min(1, numeric)), true
}

func extractInnerSize(sentence string) string {
	if m := innerSizeRe.FindStringSubmatch(sentence); m != nil {
		return m[1]
	}
	if m := donutSizeRe.FindStringSubmatch(sentence); m != nil {
		return m[2]
	}
	lowered := strings.ToLower(sentence)
	if strings.Contains(lowered, "donut") || strings.Contains(lowered, "doughnut") {
		return "60%"
	}
	return ""
}

// markerEnabledPath maps the chart kind to its plotOptions marker toggle.
// Kinds without a dedicated plot block use the shared series block.
func markerEnabledPath(chartKind string) string {
	switch chartKind {
	case "line", "area", "spline", "areaspline", "scatter":
		return "plotOptions." + chartKind + ".marker.enabled"
	default:
		return "plotOptions.series.marker.enabled"
	}
}

func extractMarkerRadius(sentence string) any {
	m := radiusBeforeRe.FindStringSubmatch(sentence)
	if m == nil {
		m = radiusAfterRe.FindStringSubmatch(sentence)
	}
	if m == nil {
		return nil
	}
	return numberValue(m[1])
}

func extractMarkerSymbol(lowered string) string {
	for _, s := range markerSymbols {
		if strings.Contains(lowered, s.keyword) {
			return s.symbol
		}
	}
	return ""
}

// numberValue parses a numeric literal, returning int for integral values and
// float64 otherwise.
func numberValue(text string) any {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	if f == math.Trunc(f) {
		return int(f)
	}
	return f
}
