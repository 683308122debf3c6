package mapping

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var dateLayouts = []struct {
	pattern *regexp.Regexp
	// indexes into the submatches for year, month, day
	year, month, day int
}{
	{regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`), 3, 2, 1},  // DD-MM-YYYY
	{regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`), 1, 2, 3},  // YYYY/MM/DD
	{regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`), 3, 1, 2},  // MM/DD/YYYY
}

// BatchProcess derives a recommendation set from the first record's fields
// and applies it to every record, normalizing values per target field. The
// first record is the schema sample; records sharing a source share a schema.
func (e *Engine) BatchProcess(records []map[string]interface{}) []BatchResult {
	if len(records) == 0 {
		return nil
	}

	sourceFields := make([]string, 0, len(records[0]))
	for field := range records[0] {
		sourceFields = append(sourceFields, field)
	}
	sort.Strings(sourceFields)

	recommendations := e.GenerateRecommendations(sourceFields, e.dict.FieldTargets(), batchThreshold)

	results := make([]BatchResult, 0, len(records))
	for _, rec := range records {
		var mappings []FieldMapping
		total := 0.0
		for _, r := range recommendations {
			value, ok := rec[r.SourceField]
			if !ok {
				continue
			}
			mappings = append(mappings, FieldMapping{
				ID:              fmt.Sprintf("map-%s-%d", r.SourceField, e.now().UnixMilli()),
				SourceField:     r.SourceField,
				CanonicalField:  r.SuggestedMapping,
				SourceValue:     stringify(value),
				NormalizedValue: normalizeValue(value, r.SuggestedMapping),
				Confidence:      r.Confidence,
				Transform:       detectTransform(r.SuggestedMapping),
			})
			total += r.Confidence
		}
		confidence := 0.0
		if len(mappings) > 0 {
			confidence = total / float64(len(mappings))
		}
		results = append(results, BatchResult{Record: rec, Mappings: mappings, Confidence: confidence})
	}
	return results
}

func normalizeValue(value interface{}, targetField string) string {
	if value == nil {
		return ""
	}
	switch targetField {
	case "date_of_birth", "encounter_date":
		return normalizeDate(stringify(value))
	case "gender":
		return normalizeGender(stringify(value))
	case "blood_pressure":
		return normalizeBloodPressure(value)
	}
	return stringify(value)
}

// normalizeDate rewrites the date notations seen across sources to
// YYYY-MM-DD. Unrecognized notations pass through.
func normalizeDate(value string) string {
	for _, l := range dateLayouts {
		if m := l.pattern.FindStringSubmatch(value); m != nil {
			return m[l.year] + "-" + m[l.month] + "-" + m[l.day]
		}
	}
	return value
}

func normalizeGender(value string) string {
	switch strings.ToLower(value) {
	case "l", "laki", "laki-laki", "male", "m", "pria":
		return "male"
	case "p", "perempuan", "female", "f", "wanita":
		return "female"
	}
	return value
}

// normalizeBloodPressure unifies the structured sistolik/diastolik object
// form to "sys/dia".
func normalizeBloodPressure(value interface{}) string {
	if obj, ok := value.(map[string]interface{}); ok {
		sys, sysOK := asNumber(obj["sistolik"])
		dia, diaOK := asNumber(obj["diastolik"])
		if sysOK && diaOK {
			return fmt.Sprintf("%v/%v", sys, dia)
		}
	}
	return stringify(value)
}

func detectTransform(targetField string) string {
	switch targetField {
	case "date_of_birth":
		return "date"
	case "encounter_date":
		return "datetime"
	case "gender":
		return "gender_map"
	case "blood_pressure":
		return "bp_normalize"
	}
	return ""
}

func asNumber(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return n, true
	case int:
		return n, true
	case int64:
		return n, true
	}
	return nil, false
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := asNumber(v); ok {
		return fmt.Sprintf("%v", n)
	}
	return fmt.Sprintf("%v", v)
}
