package shopdto

import (
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/dto"
)

type ListShopsOutput struct {
	Shops      []*domain.Shop
	Pagination dto.Pagination
}

// ShopInfo is the public view of a shop. It never carries the balance or
// payout details.
type ShopInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
