package dto

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	Code           string `json:"code" validate:"required,len=3,alpha,uppercase"`
	Name           string `json:"name" validate:"required,max=100"`
	Decimals       int32  `json:"decimals" validate:"min=0,max=8"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
}
