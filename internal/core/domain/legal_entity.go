package domain

// LegalEntity is a tenant of the bookkeeping engine. Every account, journal
// entry and deal is owned by exactly one legal entity.
type LegalEntity struct {
	LegalEntityID string `json:"legalEntityID"`
	BIN           string `json:"bin"` // 12-digit business identification number
	Name          string `json:"name"`
	AuditFields
}
