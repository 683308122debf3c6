package mapping

import "regexp"

type semanticPattern struct {
	pattern   *regexp.Regexp
	canonical string
	weight    float64
}

// semanticPatterns recognizes field-name families across the English and
// Indonesian schemas of the connected systems. Order matters: the first
// matching pattern for a target wins.
var semanticPatterns = []semanticPattern{
	{regexp.MustCompile(`(?i)nama.*pasien|pasien.*nama`), "patient_name", 0.95},
	{regexp.MustCompile(`(?i)no.*rm|rm.*no|nomor.*rekam`), "medical_record_number", 0.95},
	{regexp.MustCompile(`(?i)tgl.*lahir|lahir.*tgl`), "date_of_birth", 0.95},
	{regexp.MustCompile(`(?i)jenis.*kelamin|kelamin`), "gender", 0.9},
	{regexp.MustCompile(`(?i)tensi|tekanan.*darah`), "blood_pressure", 0.9},
	{regexp.MustCompile(`(?i)diagnosa|diagnosis`), "diagnosis", 0.9},
	{regexp.MustCompile(`(?i)obat|medication`), "medication", 0.9},
	{regexp.MustCompile(`(?i)alergi`), "allergy", 0.9},
	{regexp.MustCompile(`(?i)kunjungan|visit|encounter`), "encounter_date", 0.85},
	{regexp.MustCompile(`(?i)dokter|doctor|dr`), "doctor", 0.85},
	{regexp.MustCompile(`(?i)lab|laboratorium`), "lab_result", 0.85},
}
