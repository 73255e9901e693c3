package services

import (
	"context"

	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
)

type DashboardStats struct {
	Products       int64                        `json:"products"`
	Categories     int64                        `json:"categories"`
	Articles       int64                        `json:"articles"`
	Users          int64                        `json:"users"`
	Orders         int64                        `json:"orders"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"ordersByStatus"`
}

type StatsService struct {
	repos *repositories.Registry
}

func NewStatsService(repos *repositories.Registry) *StatsService {
	return &StatsService{repos: repos}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Products, err = s.repos.Products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.repos.Categories.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Articles, err = s.repos.Articles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Users, err = s.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.repos.Orders.CountByStatus(ctx); err != nil {
		return nil, err
	}
	for _, n := range stats.OrdersByStatus {
		stats.Orders += n
	}
	return &stats, nil
}
