package service

import (
	catalogrepo "food-delivery/internal/catalog/repository"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/orders/repository"
)

type Service struct {
	OrderService OrderServiceInterface
}

func New(repo *repository.Repository, catalog catalogrepo.CatalogRepositoryInterface, bus PublisherInterface, lg *logger.Logger) *Service {
	return &Service{
		OrderService: NewOrderService(repo.OrderRepo, catalog, bus, lg),
	}
}
