package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/service"
	"github.com/yazeedhani/Gytshop-API/pkg/response"
	"github.com/yazeedhani/Gytshop-API/pkg/utils"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	e.GET("/orders/:id", c.GetOrder, isLoggedIn)
	e.POST("/orders/:id", c.AddProductToCart, isLoggedIn)
	e.DELETE("/orders/:id/:productId", c.RemoveProductFromCart, isLoggedIn)
	e.DELETE("/orders/:id", c.ClearCart, isLoggedIn)
	e.PATCH("/orders/:id/totalPrice", c.SetTotalPrice, isLoggedIn)
}

// GetOrder fetches the owner's open cart with product references resolved.
// The path parameter is the owner id.
func (c *OrderController) GetOrder(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	resp, err := c.service.GetOpenOrder(e.Request().Context(), caller, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

// AddProductToCart pushes one unit of the product into the caller's open
// cart, creating the cart on first use. The path parameter is the product id.
func (c *OrderController) AddProductToCart(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	resp, err := c.service.AddProductToCart(e.Request().Context(), caller, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", resp)
}

func (c *OrderController) RemoveProductFromCart(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	resp, err := c.service.RemoveProductFromCart(e.Request().Context(), caller, e.Param("id"), e.Param("productId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) ClearCart(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	resp, err := c.service.ClearCart(e.Request().Context(), caller, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) SetTotalPrice(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	payload := dto.TotalPriceRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SetTotalPrice").Msg("")
	}

	err = c.service.SetTotalPrice(e.Request().Context(), caller, e.Param("id"), payload.TotalPrice)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
