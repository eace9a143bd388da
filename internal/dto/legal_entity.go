package dto

// CreateLegalEntityRequest defines the data needed to onboard a legal entity.
type CreateLegalEntityRequest struct {
	BIN  string `json:"bin" validate:"required,len=12,numeric"`
	Name string `json:"name" validate:"required,max=255"`
}
