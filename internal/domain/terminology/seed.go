package terminology

type seedEntry struct {
	key     string
	code    string
	display string
}

// seedConcepts holds the bundled reference vocabulary. Keys cover the English
// and Indonesian terms the connected source systems are known to emit; entry
// order matters because substring resolution takes the first hit.
var seedConcepts = map[System][]seedEntry{
	SystemICD10: {
		{"diabetes", "E11.9", "Type 2 diabetes mellitus without complications"},
		{"type 2 diabetes mellitus", "E11.9", "Type 2 diabetes mellitus without complications"},
		{"kencing manis", "E11.9", "Type 2 diabetes mellitus without complications"},
		{"hipertensi", "I10", "Essential (primary) hypertension"},
		{"hypertension", "I10", "Essential (primary) hypertension"},
		{"penyakit jantung", "I25.9", "Chronic ischemic heart disease, unspecified"},
		{"stroke", "I64", "Stroke, not specified as haemorrhage or infarction"},
		{"asma", "J45.9", "Asthma, unspecified"},
		{"asthma", "J45.9", "Asthma, unspecified"},
		{"tuberkulosis", "A15.0", "Tuberculosis of lung"},
		{"pneumonia", "J18.9", "Pneumonia, unspecified"},
		{"gagal ginjal", "N18.9", "Chronic kidney disease, unspecified"},
		{"ckd", "N18.9", "Chronic kidney disease, unspecified"},
		{"chronic kidney disease", "N18.9", "Chronic kidney disease, unspecified"},
		{"hepatitis", "K73.9", "Chronic hepatitis, unspecified"},
		{"malaria", "B50.9", "Plasmodium falciparum malaria, unspecified"},
		{"demam berdarah", "A91", "Dengue haemorrhagic fever"},
		{"dengue", "A90", "Dengue fever [classical dengue]"},
		{"covid-19", "U07.1", "COVID-19, virus identified"},
		{"infeksi saluran pernapasan", "J06.9", "Acute upper respiratory infection, unspecified"},
	},
	SystemLOINC: {
		{"hemoglobin", "718-7", "Hemoglobin [Mass/volume] in Blood"},
		{"hba1c", "4548-4", "Hemoglobin A1c/Hemoglobin.total in Blood"},
		{"glucose", "2339-0", "Glucose [Mass/volume] in Blood"},
		{"gdp", "2339-0", "Glucose [Mass/volume] in Blood"},
		{"cholesterol total", "2093-3", "Cholesterol [Mass/volume] in Serum or Plasma"},
		{"hdl", "2085-9", "Cholesterol in HDL [Mass/volume] in Serum or Plasma"},
		{"ldl", "2089-1", "Cholesterol in LDL [Mass/volume] in Serum or Plasma"},
		{"triglyceride", "2571-8", "Triglyceride [Mass/volume] in Serum or Plasma"},
		{"creatinine", "2160-0", "Creatinine [Mass/volume] in Serum or Plasma"},
		{"ureum", "22664-7", "Urea nitrogen [Mass/volume] in Serum or Plasma"},
		{"bun", "3094-0", "Urea nitrogen [Mass/volume] in Serum or Plasma"},
		{"uric acid", "3084-1", "Urate [Mass/volume] in Serum or Plasma"},
		{"asam urat", "3084-1", "Urate [Mass/volume] in Serum or Plasma"},
		{"tsh", "3016-3", "Thyrotropin [Units/volume] in Serum or Plasma"},
		{"white blood cell", "6690-2", "Leukocytes [#/volume] in Blood by Automated count"},
		{"red blood cell", "789-8", "Erythrocytes [#/volume] in Blood by Automated count"},
		{"platelet", "777-3", "Platelets [#/volume] in Blood by Automated count"},
	},
	SystemSNOMED: {
		{"diabetes mellitus", "73211009", "Diabetes mellitus"},
		{"type 2 diabetes", "44054006", "Diabetes mellitus type 2"},
		{"hypertension", "38341003", "Hypertensive disorder"},
		{"essential hypertension", "59621000", "Essential hypertension"},
		{"asthma", "195967001", "Asthma"},
		{"pneumonia", "233604007", "Pneumonia"},
		{"penicillin allergy", "91936005", "Allergy to penicillin"},
		{"no known allergies", "716186003", "No known allergy"},
		{"fever", "386661006", "Fever"},
		{"cough", "49727002", "Cough"},
		{"chest pain", "29857009", "Chest pain"},
		{"shortness of breath", "267036007", "Dyspnea"},
		{"sakit dada", "29857009", "Chest pain"},
		{"sesak napas", "267036007", "Dyspnea"},
		{"demam", "386661006", "Fever"},
		{"batuk", "49727002", "Cough"},
	},
	SystemRxNorm: {
		{"metformin", "6809", "Metformin"},
		{"glucophage", "6809", "Metformin"},
		{"amlodipine", "17767", "Amlodipine"},
		{"norvasc", "17767", "Amlodipine"},
		{"simvastatin", "36567", "Simvastatin"},
		{"atorvastatin", "83367", "Atorvastatin"},
		{"captopril", "1998", "Captopril"},
		{"lisinopril", "29046", "Lisinopril"},
		{"amoxicillin", "723", "Amoxicillin"},
		{"ciprofloxacin", "2551", "Ciprofloxacin"},
		{"paracetamol", "161", "Acetaminophen"},
		{"acetaminophen", "161", "Acetaminophen"},
		{"ibuprofen", "5640", "Ibuprofen"},
		{"aspirin", "1191", "Aspirin"},
		{"insulin", "5856", "Insulin"},
	},
}
