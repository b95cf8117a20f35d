package domain

// DefaultCorpusID is the document ID of the built-in sample report.
const DefaultCorpusID = "default-report"

// DefaultCorpus is the built-in sample blood test report. It is indexed
// once at startup and answers questions when no context is supplied.
const DefaultCorpus = `Patient Name: Mr. Dummy

Age/Sex: 23 YRS/M

Referred By: _Dr. Self Date: 14/05/2021 TIN
Reg. no. 1024 UHID: 1028
Collected on: 14/05/2021 Reported on: 14/05/2021 03:03 PM
HAEMATOLOGY
COMPLETE BLOOD COUNT (CBC)
TEST VALUE UNIT REFERENCE
Hemoglobin 14 g/dl 13-17
Total Leukocyte Count H 12,000 cumm 4,000 - 11,000
Differential Leucocyte Count
Neutrophils 45 % 40-80
Lymphocyte H 45 % 20-40
Eosinophils 05 % 1-6
Monocytes 05 % 2-10
Basophils 00 % <2
Platelet Count 40 lakhs/cumm 15-45
Total RBC Count 51 million/cumm 45-55
Hematocrit Value, Het H 56 % 40-50
Mean Corpuscular Volume, MCV H 109.8 fL 83-101
Mean Cell Haemoglobin, MCH 275 Pg 27-32
Mean Cell Haemoglobin CON,MCHC L 25.0 % 315-345
`

// DefaultCorpusDocument returns the built-in report as a Document.
func DefaultCorpusDocument() Document {
	return Document{
		ID:       DefaultCorpusID,
		Content:  DefaultCorpus,
		Metadata: map[string]any{"source": "builtin"},
	}
}
