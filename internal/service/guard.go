package service

import "github.com/SergeyBogomolovv/shop-service/internal/entities"

func requireCartOwner(p entities.Principal) error {
	if p.IsSeller() {
		return entities.ErrSellerCart
	}
	return nil
}

func requireBuyer(p entities.Principal) error {
	if p.IsSeller() {
		return entities.ErrSellerOrders
	}
	return nil
}

func requireOrderOwner(p entities.Principal, order entities.Order) error {
	if order.Owner != p.ID {
		return entities.ErrNotOrderOwner
	}
	return nil
}
