package domain

type Capability string

const (
	CapabilitySeller Capability = "seller"
	CapabilityAdmin  Capability = "admin"
)

// Actor is the verified caller of a use case.
type Actor struct {
	UserID       string
	ShopID       string
	Capabilities []Capability
}

func (a Actor) Can(c Capability) bool {
	for _, have := range a.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// IsSellerOf reports whether the actor acts for the given shop.
func (a Actor) IsSellerOf(shopID string) bool {
	return a.Can(CapabilitySeller) && a.ShopID != "" && a.ShopID == shopID
}
