package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
)

func TestProductService_QueryProducts(t *testing.T) {
	svc := NewProductService(repository.NewInMemoryProductRepository(), 9)
	ctx := context.Background()

	tests := []struct {
		name      string
		values    url.Values
		wantTotal int
		wantPage  int
		wantPar   int
		wantFirst string
	}{
		{
			name:      "no params returns first page of everything",
			values:    url.Values{},
			wantTotal: 12,
			wantPage:  9,
			wantPar:   9,
			wantFirst: "1",
		},
		{
			name:      "second page holds the remainder",
			values:    url.Values{"pageNumber": {"2"}},
			wantTotal: 12,
			wantPage:  3,
			wantPar:   9,
			wantFirst: "10",
		},
		{
			name:      "category and rating",
			values:    url.Values{"category": {"Electronics"}, "rating": {"4"}},
			wantTotal: 2,
			wantPage:  2,
			wantPar:   9,
			wantFirst: "5",
		},
		{
			name:      "price range sorted high to low",
			values:    url.Values{"lowPrice": {"30"}, "highPrice": {"100"}, "sortPrice": {"high-to-low"}, "parPage": {"2"}},
			wantTotal: 6,
			wantPage:  2,
			wantPar:   2,
			wantFirst: "9",
		},
		{
			name:      "unknown category",
			values:    url.Values{"category": {"Toys"}},
			wantTotal: 0,
			wantPage:  0,
			wantPar:   9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.QueryProducts(ctx, tt.values)
			if err != nil {
				t.Fatalf("QueryProducts() error = %v", err)
			}
			if page.TotalProduct != tt.wantTotal {
				t.Errorf("totalProduct = %d, want %d", page.TotalProduct, tt.wantTotal)
			}
			if len(page.Products) != tt.wantPage {
				t.Errorf("page size = %d, want %d", len(page.Products), tt.wantPage)
			}
			if page.ParPage != tt.wantPar {
				t.Errorf("parPage = %d, want %d", page.ParPage, tt.wantPar)
			}
			if tt.wantFirst != "" && len(page.Products) > 0 && page.Products[0].ID != tt.wantFirst {
				t.Errorf("first product = %s, want %s", page.Products[0].ID, tt.wantFirst)
			}
			if page.Products == nil {
				t.Error("products should be an empty slice, not nil")
			}
		})
	}
}

func TestProductService_GetProduct(t *testing.T) {
	svc := NewProductService(repository.NewInMemoryProductRepository(), 9)

	product, err := svc.GetProduct(context.Background(), "6")
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if product.Name != "Smart Watch" {
		t.Errorf("name = %s, want Smart Watch", product.Name)
	}

	if _, err := svc.GetProduct(context.Background(), "nope"); err != repository.ErrProductNotFound {
		t.Errorf("error = %v, want %v", err, repository.ErrProductNotFound)
	}
}
