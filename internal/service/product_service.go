package service

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
	"github.com/Lixing-Zhang/multivendor-shop/internal/query"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
)

// ProductService handles business logic for products
type ProductService struct {
	repo           repository.ProductRepository
	defaultParPage int
}

// NewProductService creates a new product service. defaultParPage is the
// page size used when a query does not name one.
func NewProductService(repo repository.ProductRepository, defaultParPage int) *ProductService {
	return &ProductService{
		repo:           repo,
		defaultParPage: defaultParPage,
	}
}

// QueryProducts filters, sorts and paginates the catalog according to raw
// query-string values. totalProduct counts every match, not just the page.
func (s *ProductService) QueryProducts(ctx context.Context, values url.Values) (*models.ProductPage, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	q := query.New(query.ParseParams(values, s.defaultParPage))

	return &models.ProductPage{
		Products:     q.Page(products),
		TotalProduct: q.Count(products),
		ParPage:      q.Params().ParPage,
	}, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}
