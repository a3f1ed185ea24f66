package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// ProductUsecase defines catalog management and browsing use cases.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	PaginateProducts(ctx context.Context, page int64) ([]*model.Product, int64, error)
	FilterProducts(ctx context.Context, category string) ([]*model.Product, error)
	SearchProducts(ctx context.Context, query, category string) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params repository.UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductsPerPage is the page size of the paginated catalog listing.
const ProductsPerPage = 9

var ErrProductNotFound = errors.New("product not found")

type productUsecase struct {
	productRepo repository.ProductRepository
}

func NewProductUsecase(productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.productRepo.CreateProduct(ctx, product)
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return u.productRepo.ListProducts(ctx, repository.FilterProductsParams{})
}

func (u *productUsecase) PaginateProducts(ctx context.Context, page int64) ([]*model.Product, int64, error) {
	if page < 1 {
		page = 1
	}

	params := repository.FilterProductsParams{
		Limit:  ProductsPerPage,
		Offset: (page - 1) * ProductsPerPage,
	}

	products, err := u.productRepo.ListProducts(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := u.productRepo.CountProducts(ctx, repository.FilterProductsParams{})
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (u *productUsecase) FilterProducts(ctx context.Context, category string) ([]*model.Product, error) {
	params := repository.FilterProductsParams{}
	if category != "" {
		params.Category = &category
	}

	return u.productRepo.ListProducts(ctx, params)
}

func (u *productUsecase) SearchProducts(ctx context.Context, query, category string) ([]*model.Product, error) {
	params := repository.FilterProductsParams{}
	if query != "" {
		params.Name = &query
	}
	if category != "" {
		params.Category = &category
	}

	return u.productRepo.ListProducts(ctx, params)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	product, err := u.productRepo.UpdateProduct(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}

		return err
	}

	return nil
}
