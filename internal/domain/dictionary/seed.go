package dictionary

// Built-in dictionaries. Keys are lowercase; insertion order matters for
// substring matching, so seeds are ordered slices rather than map literals.

type seedEntry struct {
	key   string
	entry Entry
}

var seedDictionaries = map[Domain][]seedEntry{
	DomainDiagnosis: {
		{"e11.9", Entry{Canonical: "Type 2 Diabetes Mellitus", Confidence: 0.95, Code: "E11.9"}},
		{"i10", Entry{Canonical: "Hypertension", Confidence: 0.95, Code: "I10"}},
		{"e78.5", Entry{Canonical: "Hyperlipidemia", Confidence: 0.92, Code: "E78.5"}},
		{"diabetes", Entry{Canonical: "Type 2 Diabetes Mellitus", Confidence: 0.84}},
		{"kencing manis", Entry{Canonical: "Type 2 Diabetes Mellitus", Confidence: 0.87}},
		{"hipertensi stadium 1", Entry{Canonical: "Hypertension Stage 1", Confidence: 0.9}},
		{"hipertensi", Entry{Canonical: "Hypertension", Confidence: 0.87}},
		{"type 2 diabetes mellitus", Entry{Canonical: "Type 2 Diabetes Mellitus", Confidence: 0.9}},
		{"dislipidemia", Entry{Canonical: "Hyperlipidemia", Confidence: 0.88}},
		{"hyperlipidemia", Entry{Canonical: "Hyperlipidemia", Confidence: 0.95}},
		{"essential hypertension", Entry{Canonical: "Hypertension", Confidence: 0.93}},
		{"ckd", Entry{Canonical: "Chronic Kidney Disease", Confidence: 0.72}},
	},
	DomainMedication: {
		{"glucophage", Entry{Canonical: "Metformin", Confidence: 0.88}},
		{"metformin", Entry{Canonical: "Metformin", Confidence: 0.93}},
		{"norvasc", Entry{Canonical: "Amlodipine", Confidence: 0.86}},
		{"amlodipine", Entry{Canonical: "Amlodipine", Confidence: 0.93}},
		{"simvastatin", Entry{Canonical: "Simvastatin", Confidence: 0.94}},
	},
	DomainAllergy: {
		{"penicillin", Entry{Canonical: "Penicillin", Confidence: 0.94}},
		{"nka", Entry{Canonical: "No Known Allergies", Confidence: 0.82}},
		{"no known allergy", Entry{Canonical: "No Known Allergies", Confidence: 0.82}},
		{"tidak ada alergi", Entry{Canonical: "No Known Allergies", Confidence: 0.8}},
		{"none", Entry{Canonical: "No Known Allergies", Confidence: 0.78}},
	},
}

// Canonical field name -> known raw spellings, shared with the field
// similarity scorer. Mixed English/Indonesian because the demo sources are.
var seedFieldAliases = map[string][]string{
	"patient_name":          {"nama_pasien", "nama", "name", "full_name", "patient_name", "nm_pasien", "nama_lengkap"},
	"medical_record_number": {"no_rm", "nomor_rm", "mrn", "medical_record_number", "no_rekam_medis", "norm"},
	"date_of_birth":         {"tgl_lahir", "tanggal_lahir", "dob", "date_of_birth", "birth_date", "tgl_lahir_pasien"},
	"gender":                {"jenis_kelamin", "gender", "sex", "jk", "kelamin", "jns_kelamin"},
	"address":               {"alamat", "address", "alamat_pasien", "addr"},
	"phone":                 {"telepon", "telp", "phone", "no_telp", "no_hp", "mobile", "handphone"},
	"blood_pressure":        {"tensi", "blood_pressure", "bp", "tekanan_darah", "td", "tensi_darah"},
	"heart_rate":            {"heart_rate", "hr", "nadi", "denyut_jantung", "pulse"},
	"temperature":           {"suhu", "temperature", "temp", "suhu_badan", "suhu_tubuh"},
	"diagnosis":             {"diagnosa", "diagnosis", "dx", "icd10", "kode_icd", "diagnosa_utama"},
	"medication":            {"obat", "medication", "meds", "drug", "obat_aktif", "nama_obat", "medicine"},
	"allergy":               {"alergi", "allergy", "allergies", "alergi_pasien"},
	"encounter_date":        {"tgl_kunjungan", "tanggal_kunjungan", "visit_date", "encounter_date", "tgl_periksa"},
	"doctor":                {"dokter", "doctor", "dr", "nama_dokter", "physician", "dpjp"},
	"lab_result":            {"hasil_lab", "lab_result", "laboratory", "pemeriksaan_lab"},
	"visit_type":            {"jenis_kunjungan", "visit_type", "tipe_kunjungan", "jenis_perawatan"},
}
