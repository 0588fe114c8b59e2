package service

import (
	"context"
	"strings"
	"time"

	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/repository"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductServiceImpl struct {
	repo     repository.Repository
	producer EventProducer
}

func CreateProductService(repo repository.Repository, producer EventProducer) ProductService {
	return &ProductServiceImpl{repo: repo, producer: producer}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, owner string, data dto.ProductRequest) (resp dto.ProductResponse, err error) {
	if strings.TrimSpace(data.Name) == "" || data.Price < 0 || data.Stock < 0 || !domain.IsValidCategory(data.Category) {
		return resp, errs.ErrClient
	}

	now := time.Now().Unix()
	product := domain.Product{
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
		Price:       data.Price,
		Stock:       data.Stock,
		ImageURL:    data.ImageURL,
		Owner:       owner,
		Reviews:     []domain.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	productID, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	product.ID = productID
	resp = toProductResponse(product)

	if err = s.producer.Publish("product_created", productID.Hex(), resp); err != nil {
		return resp, err
	}

	return resp, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (resp []dto.ProductResponse, err error) {
	products, err := s.repo.GetProducts(ctx, param)
	if err != nil {
		return
	}

	resp = make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, toProductResponse(product))
	}

	return resp, nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return resp, errs.ErrNotFound
	}

	product, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return
	}

	return toProductResponse(product), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, caller string, data dto.ProductRequest) (err error) {
	pid, err := primitive.ObjectIDFromHex(data.ID)
	if err != nil {
		return errs.ErrNotFound
	}

	if strings.TrimSpace(data.Name) == "" || data.Price < 0 {
		return errs.ErrClient
	}

	product, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return
	}

	if product.Owner != caller {
		return errs.ErrUnauthorized
	}

	product.Name = data.Name
	product.Description = data.Description
	product.Price = data.Price
	product.ImageURL = data.ImageURL

	return s.repo.UpdateProduct(ctx, product)
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, caller string, id string) (err error) {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	product, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return
	}

	if product.Owner != caller {
		return errs.ErrUnauthorized
	}

	if err = s.repo.DeleteProduct(ctx, pid); err != nil {
		return
	}

	return s.producer.Publish("product_deleted", pid.Hex(), dto.ProductResponse{ID: pid.Hex()})
}

func (s *ProductServiceImpl) AddReview(ctx context.Context, caller string, productID string, data dto.ReviewRequest) (resp dto.ProductResponse, err error) {
	if strings.TrimSpace(data.Note) == "" {
		return resp, errs.ErrClient
	}

	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return resp, errs.ErrNotFound
	}

	review := domain.Review{
		Note:      data.Note,
		Owner:     caller,
		CreatedAt: time.Now().Unix(),
	}

	if err = s.repo.AddProductReview(ctx, pid, review); err != nil {
		return
	}

	product, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return
	}

	return toProductResponse(product), nil
}

func toProductResponse(product domain.Product) dto.ProductResponse {
	reviews := make([]dto.ReviewResponse, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, dto.ReviewResponse{
			Note:      review.Note,
			Owner:     review.Owner,
			CreatedAt: review.CreatedAt,
		})
	}

	return dto.ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		Owner:       product.Owner,
		Reviews:     reviews,
	}
}
