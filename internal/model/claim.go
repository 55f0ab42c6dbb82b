package model

// Column names the input dataset is expected to carry. Matching is exact,
// including spacing ("ADJUSTER/ CLAIM REP" really has that space).
const (
	FieldClaimNumber    = "CLAIM #"
	FieldPolicyholder   = "INSURED/POLICYHOLDER"
	FieldAddress        = "ADDRESS"
	FieldInsurer        = "INSURER"
	FieldAdjuster       = "ADJUSTER/ CLAIM REP"
	FieldInspectionDate = "DATE OF INSPECTION"
	FieldLossDate       = "DATE OF LOSS"
	FieldReportDate     = "DATE OF REPORT"
	FieldLossType       = "TYPE OF LOSS"
	FieldLossCause      = "CAUSE OF LOSS"
	FieldScopeOfWork    = "SCOPE OF WORK"
)

// Defaults substituted for absent fields.
const (
	DefaultValue       = "Unknown"
	DefaultClaimNumber = "PR0000"
)

// ClaimRecord is one row of the input dataset: a mapping from column name to
// the cell's text. Records are built once by the dataset reader and never
// mutated afterwards.
type ClaimRecord struct {
	Fields map[string]string
}

// NewClaimRecord wraps a field map in a ClaimRecord.
func NewClaimRecord(fields map[string]string) ClaimRecord {
	if fields == nil {
		fields = map[string]string{}
	}
	return ClaimRecord{Fields: fields}
}

// Get returns the value for name, or fallback when the column is absent or
// the cell is empty.
func (r ClaimRecord) Get(name, fallback string) string {
	if v, ok := r.Fields[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Has reports whether the record carries a non-empty value for name.
func (r ClaimRecord) Has(name string) bool {
	v, ok := r.Fields[name]
	return ok && v != ""
}

// ClaimNumber returns the claim identifier, defaulting to PR0000.
func (r ClaimRecord) ClaimNumber() string {
	return r.Get(FieldClaimNumber, DefaultClaimNumber)
}
