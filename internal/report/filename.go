package report

import (
	"fmt"
	"strings"

	"github.com/trinitycontents/reportgen/internal/model"
)

// Filename derives the output document name for a claim: claim number, the
// first token of the policyholder name upper-cased, and the address with
// commas stripped and spaces replaced by underscores.
func Filename(claim model.ClaimRecord) string {
	number := claim.Get(model.FieldClaimNumber, model.DefaultClaimNumber)

	holder := claim.Get(model.FieldPolicyholder, "UNKNOWN")
	first := "UNKNOWN"
	if tokens := strings.Fields(holder); len(tokens) > 0 {
		first = strings.ToUpper(tokens[0])
	}

	address := claim.Get(model.FieldAddress, "UNKNOWN")
	address = strings.ReplaceAll(address, ",", "")
	address = strings.ReplaceAll(address, " ", "_")

	return fmt.Sprintf("FIRST INSPECTION REPORT - CLAIM# %s - %s - %s.docx", number, first, address)
}
