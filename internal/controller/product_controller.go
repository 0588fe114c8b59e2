package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/service"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/response"
	"github.com/yazeedhani/Gytshop-API/pkg/utils"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}

	e.POST("/products", c.AddProduct, isLoggedIn)
	e.GET("/products", c.GetProducts)
	e.GET("/products/:id", c.GetProduct)
	e.PATCH("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
	e.POST("/reviews/:id", c.AddReview, isLoggedIn)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	_, _, owner := utils.ExtractTokenUser(e)

	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
	}

	resp, err := c.service.AddProduct(e.Request().Context(), owner, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", resp)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
	}

	resp, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

// GetProduct serves both /products/{id} and /products/{category}: a path
// segment naming a known category lists that category, anything else is
// treated as a product id.
func (c *ProductController) GetProduct(e echo.Context) error {
	id := e.Param("id")

	if domain.IsValidCategory(id) {
		resp, err := c.service.GetProducts(e.Request().Context(), pkgdto.Filter{Category: id})
		if err != nil {
			return response.WriteErrorResponse(e, err, nil)
		}

		return response.WriteSuccessResponse(e, "", resp)
	}

	resp, err := c.service.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
	}

	payload.ID = e.Param("id")
	err = c.service.UpdateProduct(e.Request().Context(), caller, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	err := c.service.DeleteProduct(e.Request().Context(), caller, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) AddReview(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	payload := dto.ReviewRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddReview").Msg("")
	}

	resp, err := c.service.AddReview(e.Request().Context(), caller, e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", resp)
}
