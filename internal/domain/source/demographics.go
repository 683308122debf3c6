package source

import "github.com/recordbridge/recordbridge/internal/domain/record"

// ExtractDemographics pulls the patient demographics out of a payload using
// the same fallback-accessor approach as Extract. An unnamed patient yields
// "Unknown".
func ExtractDemographics(payload map[string]interface{}) record.Demographics {
	d := record.Demographics{
		FullName: firstString(payload, "name", "nama"),
		DOB:      firstString(payload, "dob", "tanggal_lahir"),
		Sex:      firstString(payload, "sex", "jenis_kelamin"),
		Language: firstString(payload, "language", "bahasa"),
	}
	if patient, ok := payload["patient"].(map[string]interface{}); ok {
		if d.FullName == "" {
			d.FullName = firstString(patient, "fullName")
		}
		if d.DOB == "" {
			d.DOB = firstString(patient, "birthDate")
		}
		if d.Sex == "" {
			d.Sex = firstString(patient, "gender")
		}
	}
	if d.FullName == "" {
		d.FullName = "Unknown"
	}
	return d
}

// ExtractIdentifier returns the patient identifier a payload carries, falling
// back to the source-local record id.
func ExtractIdentifier(payload map[string]interface{}, recordID string) string {
	if id := firstString(payload, "patient_id", "id"); id != "" {
		return id
	}
	return recordID
}
