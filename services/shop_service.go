package services

import (
	"context"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
)

// ShopService reads and replaces the storefront identity.
type ShopService interface {
	Get(ctx context.Context) (*models.ShopInfo, *ServiceError)
	Update(ctx context.Context, req *models.ShopInfoRequest) (*models.ShopInfo, *ServiceError)
}

type shopServiceImpl struct {
	repo   repository.ShopRepository
	logger *zap.Logger
}

func NewShopService(repo repository.ShopRepository, logger *zap.Logger) ShopService {
	return &shopServiceImpl{repo: repo, logger: logger}
}

// Get returns the shop info, or nil with no error when none is stored yet.
func (s *shopServiceImpl) Get(ctx context.Context) (*models.ShopInfo, *ServiceError) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		s.logger.Error("Failed to fetch shop info", zap.Error(err))
		return nil, internal("Failed to fetch shop info")
	}
	return info, nil
}

// Update writes the single shop_info row, creating it on first use.
func (s *shopServiceImpl) Update(ctx context.Context, req *models.ShopInfoRequest) (*models.ShopInfo, *ServiceError) {
	info, svcErr := s.Get(ctx)
	if svcErr != nil {
		return nil, svcErr
	}
	if info == nil {
		info = &models.ShopInfo{}
	}

	info.ShopName = strings.TrimSpace(req.ShopName)
	info.OwnerName = optionalString(req.OwnerName)
	info.BusinessIdea = optionalString(req.BusinessIdea)
	info.ConceptVision = optionalString(req.ConceptVision)
	info.LogoURL = optionalString(req.LogoURL)
	info.BannerURL = optionalString(req.BannerURL)
	info.Address = optionalString(req.Address)
	info.Phone = optionalString(req.Phone)
	info.Email = optionalString(req.Email)

	if err := s.repo.Save(ctx, info); err != nil {
		s.logger.Error("Failed to save shop info", zap.Error(err))
		return nil, internal("Failed to update shop info")
	}
	return info, nil
}
