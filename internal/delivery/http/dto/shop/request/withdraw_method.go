package request

type WithdrawMethodRequest struct {
	Type              string `json:"type" validate:"required,max=32"`
	BankName          string `json:"bank_name" validate:"omitempty,max=128"`
	BankCountry       string `json:"bank_country" validate:"omitempty,max=64"`
	BankSwiftCode     string `json:"bank_swift_code" validate:"omitempty,bic"`
	AccountHolderName string `json:"account_holder_name" validate:"required,max=128"`
	AccountNumber     string `json:"account_number" validate:"required,max=64"`
	BankAddress       string `json:"bank_address" validate:"omitempty,max=256"`
}
