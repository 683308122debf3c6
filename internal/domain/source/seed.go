package source

import (
	"time"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedRecords returns the sandbox demo records: one patient known to three
// systems with three different payload shapes (flat English fields, nested
// Indonesian-vocabulary fields, and free-text lines).
func SeedRecords() []*RawSourceRecord {
	return []*RawSourceRecord{
		{
			Source:    record.SourceEHRA,
			RecordID:  "A-1001",
			UpdatedAt: mustTime("2026-01-14T08:30:00Z"),
			Payload: map[string]interface{}{
				"patient_id":      "MRN-49281",
				"name":            "Budi Santoso",
				"dob":             "1993-05-15",
				"sex":             "Male",
				"language":        "id",
				"BP":              "135/85",
				"hr":              72,
				"weight_kg":       78,
				"height_cm":       172,
				"diagnosis_icd10": []interface{}{"I10", "E78.5"},
				"allergies":       []interface{}{"No Known Allergies"},
				"meds": []interface{}{
					map[string]interface{}{"generic": "Amlodipine", "dose": "5 mg", "route": "PO", "freq": "OD"},
					map[string]interface{}{"generic": "Simvastatin", "dose": "20mg", "route": "PO", "freq": "HS"},
				},
				"encounters": []interface{}{
					map[string]interface{}{"date": "2026-01-14T08:00:00Z", "type": "Outpatient", "reason": "Hypertension follow-up"},
					map[string]interface{}{"date": "2025-11-20T09:00:00Z", "type": "Outpatient", "reason": "Annual checkup"},
				},
				"labs": []interface{}{
					map[string]interface{}{"ts": "2026-01-14T08:15:00Z", "name": "LDL Cholesterol", "value": "142", "unit": "mg/dL"},
					map[string]interface{}{"ts": "2025-11-20T09:30:00Z", "name": "LDL Cholesterol", "value": "156", "unit": "mg/dL"},
				},
			},
		},
		{
			Source:    record.SourceSIMRSB,
			RecordID:  "SIMRS-49281",
			UpdatedAt: mustTime("2026-01-15T09:10:00Z"),
			Payload: map[string]interface{}{
				"no_rm":         "49281",
				"nama":          "Budi Santoso",
				"tanggal_lahir": "15-05-1993",
				"jenis_kelamin": "L",
				"bahasa":        "Bahasa Indonesia",
				"Tensi":         map[string]interface{}{"sistolik": 128, "diastolik": 82, "unit": "mmHg"},
				"berat_badan":   77,
				"tinggi_badan":  172,
				"suhu":          36.7,
				"diagnosa":      []interface{}{"hipertensi stadium 1", "dislipidemia"},
				"alergi":        []interface{}{"tidak ada alergi"},
				"obat_aktif": []interface{}{
					map[string]interface{}{"nama_obat": "Amlodipine", "dosis": "5 mg", "frekuensi": "1x sehari", "rute": "oral"},
					map[string]interface{}{"nama_obat": "Simvastatin", "dosis": "20 mg", "frekuensi": "malam hari", "rute": "oral"},
				},
				"kunjungan": []interface{}{
					map[string]interface{}{"waktu": "2026-01-15T09:00:00Z", "jenis": "Poli Jantung", "keluhan": "Kontrol rutin hipertensi"},
					map[string]interface{}{"waktu": "2025-12-10T10:30:00Z", "jenis": "Poli Jantung", "keluhan": "Tekanan darah tinggi"},
				},
				"lab_result": []interface{}{
					map[string]interface{}{"waktu": "2026-01-15T09:30:00Z", "pemeriksaan": "Kolesterol LDL", "hasil": "138", "satuan": "mg/dL"},
					map[string]interface{}{"waktu": "2025-12-10T11:00:00Z", "pemeriksaan": "Kolesterol LDL", "hasil": "148", "satuan": "mg/dL"},
				},
			},
		},
		{
			Source:    record.SourceClinicC,
			RecordID:  "CLN-49281",
			UpdatedAt: mustTime("2026-01-16T11:45:00Z"),
			Payload: map[string]interface{}{
				"id": "EXT-49281",
				"patient": map[string]interface{}{
					"fullName":  "Budi S.",
					"birthDate": "1993/05/15",
					"gender":    "M",
				},
				"vitals": map[string]interface{}{
					"blood_pressure_systolic":  126,
					"blood_pressure_diastolic": 80,
					"pulse_bpm":                70,
					"weight_kg":                76.5,
				},
				"dx_text": []interface{}{"essential hypertension", "hyperlipidemia"},
				"allergy_status": []interface{}{
					map[string]interface{}{"substance": "none", "reaction": "N/A"},
				},
				"medication_list": []interface{}{"Amlodipine 5 mg daily", "Simvastatin 20 mg at bedtime"},
				"visits": []interface{}{
					map[string]interface{}{"at": "2026-01-16T11:00:00Z", "setting": "Telemedicine", "note": "BP improving, continue current regimen"},
					map[string]interface{}{"at": "2025-10-05T14:00:00Z", "setting": "Clinic", "note": "Newly diagnosed hypertension"},
				},
				"results": []interface{}{
					map[string]interface{}{"at": "2026-01-16T11:30:00Z", "test": "LDL", "result": "135", "unit": "mg/dL"},
					map[string]interface{}{"at": "2025-10-05T15:00:00Z", "test": "LDL", "result": "162", "unit": "mg/dL"},
				},
			},
		},
	}
}
