package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/service"
	"github.com/yazeedhani/Gytshop-API/pkg/response"
	"github.com/yazeedhani/Gytshop-API/pkg/utils"
)

type PaymentController struct {
	service service.PaymentService
}

func CreatePaymentController(e *echo.Group, service service.PaymentService, isLoggedIn echo.MiddlewareFunc) {
	c := PaymentController{
		service: service,
	}

	e.POST("/payment", c.CreatePayment, isLoggedIn)
	e.POST("/payments/notifications", c.PaymentWebhook)
}

func (c *PaymentController) CreatePayment(e echo.Context) error {
	_, _, caller := utils.ExtractTokenUser(e)

	payload := dto.PaymentRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreatePayment").Msg("")
	}

	resp, err := c.service.CreatePayment(e.Request().Context(), caller, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *PaymentController) PaymentWebhook(e echo.Context) error {
	payload := dto.PaymentNotification{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "PaymentWebhook").Msg("")
	}

	err = c.service.HandlePaymentNotification(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
