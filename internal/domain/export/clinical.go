package export

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

var bpPattern = regexp.MustCompile(`(\d+)/(\d+)`)

// BuildClinicalSummary derives the at-a-glance clinical view: BP trend over
// the fused observations, condition-driven insights, and risk flags.
// Insight messages are in Bahasa Indonesia for the operator consoles of the
// connected facilities.
func (s *Service) BuildClinicalSummary(rec *record.CanonicalRecord) ClinicalSummary {
	gender := rec.Patient.Demographics.Sex
	age := ageFromDOB(rec.Patient.Demographics.DOB, s.now())

	var conditions []string
	seen := make(map[string]bool)
	for _, c := range rec.Conditions {
		if !seen[c.CanonicalName] {
			seen[c.CanonicalName] = true
			conditions = append(conditions, c.CanonicalName)
		}
	}

	var bpObservations []record.Observation
	for _, o := range rec.Observations {
		if o.Type == record.ObservationBloodPressure {
			bpObservations = append(bpObservations, o)
		}
	}
	trend := analyzeBPTrend(bpObservations)

	var insights []ClinicalInsight
	var riskFlags []string

	if seen["Hypertension"] {
		basedOn := make([]string, 0, len(bpObservations))
		for _, o := range bpObservations {
			basedOn = append(basedOn, string(o.Provenance.Source))
		}
		switch trend {
		case TrendImproving:
			insights = append(insights, ClinicalInsight{
				Type:     "improvement",
				Message:  "Tekanan darah membaik dalam 2 bulan terakhir",
				Severity: SeverityInfo,
				BasedOn:  basedOn,
			})
		case TrendWorsening:
			insights = append(insights, ClinicalInsight{
				Type:     "alert",
				Message:  "Tren tekanan darah meningkat - perlu evaluasi",
				Severity: SeverityWarning,
				BasedOn:  basedOn,
			})
			riskFlags = append(riskFlags, "Hypertension uncontrolled")
		}
	}

	if seen["Type 2 Diabetes Mellitus"] && seen["Chronic Kidney Disease"] {
		insights = append(insights, ClinicalInsight{
			Type:     "alert",
			Message:  "Pasien dengan DM dan komplikasi ginjal - monitor fungsi renal",
			Severity: SeverityWarning,
			BasedOn:  []string{"Combined diagnosis analysis"},
		})
		riskFlags = append(riskFlags, "DM with renal complication")
	}

	for _, c := range rec.Conflicts {
		if c.Category == record.ConflictAllergy && !c.Resolved {
			insights = append(insights, ClinicalInsight{
				Type:     "alert",
				Message:  "Konflik alergi terdeteksi - verifikasi diperlukan",
				Severity: SeverityCritical,
				BasedOn:  []string{"Allergy reconciliation"},
			})
			riskFlags = append(riskFlags, "Unresolved allergy conflict")
			break
		}
	}

	if len(insights) == 0 {
		insights = append(insights, ClinicalInsight{
			Type:     "stable",
			Message:  "Kondisi stabil, tidak ada perubahan signifikan",
			Severity: SeverityInfo,
			BasedOn:  []string{"Latest encounter data"},
		})
	}

	display := "Perempuan"
	if gender == "Male" {
		display = "Laki-laki"
	}

	return ClinicalSummary{
		Demographics: SummaryDemographics{
			Age:         age,
			Gender:      gender,
			DisplayText: display + ", " + strconv.Itoa(age) + " tahun",
		},
		PrimaryConditions: conditions,
		BPTrend:           trend,
		KeyInsights:       insights,
		RiskFlags:         riskFlags,
		LastUpdated:       s.now().UTC(),
	}
}

// analyzeBPTrend compares the oldest and newest parseable readings. Fewer
// than two readings is unknown; a mean shift beyond 3 points either way is a
// trend, anything else stable.
func analyzeBPTrend(observations []record.Observation) BPTrend {
	type reading struct {
		avg float64
		at  time.Time
	}
	var readings []reading
	for _, o := range observations {
		m := bpPattern.FindStringSubmatch(o.Value)
		if m == nil {
			continue
		}
		systolic, _ := strconv.Atoi(m[1])
		diastolic, _ := strconv.Atoi(m[2])
		readings = append(readings, reading{
			avg: float64(systolic+diastolic) / 2,
			at:  o.Provenance.Timestamp,
		})
	}
	if len(readings) < 2 {
		return TrendUnknown
	}
	sort.SliceStable(readings, func(i, j int) bool { return readings[i].at.Before(readings[j].at) })

	diff := readings[len(readings)-1].avg - readings[0].avg
	switch {
	case diff < -3:
		return TrendImproving
	case diff > 3:
		return TrendWorsening
	}
	return TrendStable
}

func ageFromDOB(dob string, now time.Time) int {
	for _, layout := range []string{"2006-01-02", "02-01-2006", "2006/01/02"} {
		if t, err := time.Parse(layout, dob); err == nil {
			return int(now.Sub(t).Hours() / (365.25 * 24))
		}
	}
	return 0
}
