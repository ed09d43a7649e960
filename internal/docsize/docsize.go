// Package docsize estimates Federal Register document sizes from their type.
package docsize

import "strings"

// defaultKB is the estimate for document types outside the table.
const defaultKB = 50

// kbByType holds per-type size estimates in kilobytes, derived from typical
// Federal Register publication lengths.
var kbByType = map[string]int{
	"Rule":                  150,
	"Proposed Rule":         120,
	"Notice":                80,
	"Presidential Document": 100,
}

// EstimateKB returns the estimated size of a document in kilobytes based on
// its type. Unknown types get a conservative default rather than an error.
func EstimateKB(docType string) int {
	if kb, ok := kbByType[strings.TrimSpace(docType)]; ok {
		return kb
	}
	return defaultKB
}
