package source

import (
	"strconv"
	"strings"
	"time"
)

// Extraction holds the candidate raw values pulled out of one source
// payload. A source lacking a field simply contributes no candidate; absence
// is never an error.
type Extraction struct {
	BloodPressure *BloodPressure
	Diagnoses     []string
	Medications   []MedicationEntry
	Allergies     []string
	Encounters    []EncounterEntry
	Labs          []LabEntry
}

// BloodPressure is a unified "systolic/diastolic" reading. Both the flat
// string form and the nested structured forms converge here before storage.
type BloodPressure struct {
	Value      string
	Unit       string
	RawField   string
	Confidence float64
}

// MedicationEntry is one raw medication candidate.
type MedicationEntry struct {
	Name      string
	Dose      string
	Route     string
	Frequency string
}

// EncounterEntry is one raw encounter/visit candidate.
type EncounterEntry struct {
	OccurredAt time.Time
	Title      string
	Value      string
}

// LabEntry is one raw lab-result candidate.
type LabEntry struct {
	OccurredAt time.Time
	Name       string
	Value      string
	Unit       string
}

// Extract pulls candidate clinical values out of an arbitrarily shaped
// payload using a fixed set of per-field fallback accessors tried in order.
func Extract(payload map[string]interface{}) Extraction {
	return Extraction{
		BloodPressure: extractBloodPressure(payload),
		Diagnoses:     firstStringSlice(payload, "diagnosis_icd10", "diagnosa", "dx_text"),
		Medications:   extractMedications(payload),
		Allergies:     extractAllergies(payload),
		Encounters:    extractEncounters(payload),
		Labs:          extractLabs(payload),
	}
}

func extractBloodPressure(p map[string]interface{}) *BloodPressure {
	if bp, ok := p["BP"].(string); ok && bp != "" {
		return &BloodPressure{Value: bp, Unit: "mmHg", RawField: "BP", Confidence: 0.95}
	}
	if t, ok := p["Tensi"].(map[string]interface{}); ok {
		sys, sysOK := numeric(t["sistolik"])
		dia, diaOK := numeric(t["diastolik"])
		if sysOK && diaOK {
			unit, _ := t["unit"].(string)
			if unit == "" {
				unit = "mmHg"
			}
			return &BloodPressure{
				Value:      formatNumber(sys) + "/" + formatNumber(dia),
				Unit:       unit,
				RawField:   "Tensi.sistolik/Tensi.diastolik",
				Confidence: 0.92,
			}
		}
	}
	if v, ok := p["vitals"].(map[string]interface{}); ok {
		sys, sysOK := numeric(v["blood_pressure_systolic"])
		dia, diaOK := numeric(v["blood_pressure_diastolic"])
		if sysOK && diaOK {
			return &BloodPressure{
				Value:      formatNumber(sys) + "/" + formatNumber(dia),
				Unit:       "mmHg",
				RawField:   "vitals.blood_pressure_systolic/vitals.blood_pressure_diastolic",
				Confidence: 0.92,
			}
		}
	}
	return nil
}

func extractMedications(p map[string]interface{}) []MedicationEntry {
	if meds, ok := p["meds"].([]interface{}); ok {
		var out []MedicationEntry
		for _, raw := range meds {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			name := stringValue(m, "generic")
			if name == "" {
				name = stringValue(m, "brand")
			}
			out = append(out, MedicationEntry{
				Name:      name,
				Dose:      stringValue(m, "dose"),
				Route:     stringValue(m, "route"),
				Frequency: stringValue(m, "freq"),
			})
		}
		return out
	}
	if meds, ok := p["obat_aktif"].([]interface{}); ok {
		var out []MedicationEntry
		for _, raw := range meds {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			out = append(out, MedicationEntry{
				Name:      stringValue(m, "nama_obat"),
				Dose:      stringValue(m, "dosis"),
				Route:     stringValue(m, "rute"),
				Frequency: stringValue(m, "frekuensi"),
			})
		}
		return out
	}
	if lines, ok := p["medication_list"].([]interface{}); ok {
		var out []MedicationEntry
		for _, raw := range lines {
			line, ok := raw.(string)
			if !ok || strings.TrimSpace(line) == "" {
				continue
			}
			out = append(out, parseMedicationLine(line))
		}
		return out
	}
	return nil
}

// parseMedicationLine tokenizes a free-text line like "Amlodipine 5 mg daily"
// into name, "amount unit" dose, default oral route, and the trailing tokens
// as frequency ("daily" when none remain).
func parseMedicationLine(line string) MedicationEntry {
	fields := strings.Fields(line)
	entry := MedicationEntry{Name: fields[0], Route: "oral", Frequency: "daily"}
	if len(fields) >= 3 {
		entry.Dose = fields[1] + " " + fields[2]
		if rest := strings.Join(fields[3:], " "); rest != "" {
			entry.Frequency = rest
		}
	} else if len(fields) == 2 {
		entry.Dose = fields[1]
	}
	return entry
}

func extractAllergies(p map[string]interface{}) []string {
	if list := toStringSlice(p["allergies"]); list != nil {
		return list
	}
	if list := toStringSlice(p["alergi"]); list != nil {
		return list
	}
	if entries, ok := p["allergy_status"].([]interface{}); ok {
		var out []string
		for _, raw := range entries {
			if m, ok := raw.(map[string]interface{}); ok {
				if s := stringValue(m, "substance"); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

func extractEncounters(p map[string]interface{}) []EncounterEntry {
	entries := firstSlice(p, "encounters", "kunjungan", "visits")
	var out []EncounterEntry
	for _, raw := range entries {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, EncounterEntry{
			OccurredAt: parseTime(firstString(m, "date", "waktu", "at")),
			Title:      firstString(m, "type", "jenis", "setting"),
			Value:      firstString(m, "reason", "keluhan", "note"),
		})
	}
	return out
}

func extractLabs(p map[string]interface{}) []LabEntry {
	entries := firstSlice(p, "labs", "lab_result", "results")
	var out []LabEntry
	for _, raw := range entries {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, LabEntry{
			OccurredAt: parseTime(firstString(m, "ts", "waktu", "at")),
			Name:       firstString(m, "name", "pemeriksaan", "test"),
			Value:      firstString(m, "value", "hasil", "result"),
			Unit:       firstString(m, "unit", "satuan"),
		})
	}
	return out
}

// -- payload access helpers --

func stringValue(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
		if n, ok := numeric(m[k]); ok {
			return formatNumber(n)
		}
	}
	return ""
}

func firstSlice(p map[string]interface{}, keys ...string) []interface{} {
	for _, k := range keys {
		if list, ok := p[k].([]interface{}); ok {
			return list
		}
	}
	return nil
}

func firstStringSlice(p map[string]interface{}, keys ...string) []string {
	for _, k := range keys {
		if list := toStringSlice(p[k]); list != nil {
			return list
		}
	}
	return nil
}

func toStringSlice(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, raw := range list {
		if s, ok := raw.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// numeric accepts the number representations seen across payload decodings:
// JSON unmarshals to float64, seed literals may be int.
func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// parseTime parses source timestamps. Unparseable values degrade to the zero
// time, which sorts first on the timeline.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
