package shopdto

type UpdateWithdrawMethodInput struct {
	Type              string
	BankName          string
	BankCountry       string
	BankSwiftCode     string
	AccountHolderName string
	AccountNumber     string
	BankAddress       string
}
