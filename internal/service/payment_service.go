package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/config"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/repository"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"github.com/yazeedhani/Gytshop-API/pkg/utils"
	"gopkg.in/gomail.v2"
)

type PaymentServiceImpl struct {
	repo         repository.Repository
	orderService OrderService
	gateway      PaymentGateway
	config       config.Config
}

func CreatePaymentService(repo repository.Repository, orderService OrderService, gateway PaymentGateway, config config.Config) PaymentService {
	return &PaymentServiceImpl{
		repo:         repo,
		orderService: orderService,
		gateway:      gateway,
		config:       config,
	}
}

func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, owner string, req dto.PaymentRequest) (resp dto.PaymentResponse, err error) {
	if req.Amount <= 0 {
		return resp, errs.ErrClient
	}

	order, trustedTotal, err := s.orderService.CartTotal(ctx, owner)
	if err != nil {
		return
	}
	if order.Quantity == 0 {
		return resp, errs.ErrEmptyOrder
	}

	// the client-supplied amount is display-only; billing uses the total
	// recomputed from current catalog prices
	if math.Abs(req.Amount-trustedTotal) > 0.009 {
		return resp, errs.ErrAmountMismatch
	}

	transactionNumber, err := uuid.NewV7()
	if err != nil {
		return resp, fmt.Errorf("error generating transaction number: %v", err)
	}

	result, err := s.gateway.Charge(ctx, transactionNumber.String(), int64(trustedTotal), req.PaymentMethodID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreatePayment").Msg("")
		return resp, errs.ErrPaymentGateway
	}

	now := time.Now().Unix()
	payment := domain.Payment{
		TransactionNumber: transactionNumber.String(),
		OrderID:           order.ID,
		Owner:             owner,
		Email:             req.Email,
		Amount:            trustedTotal,
		Status:            domain.PaymentStatusPending,
		ExpiredAt:         result.ExpiryTime,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	settled := result.TransactionStatus == "capture" || result.TransactionStatus == "settlement"
	if settled {
		payment.Status = domain.PaymentStatusSuccess
	}

	if _, err = s.repo.AddPayment(ctx, payment); err != nil {
		return
	}

	resp.TransactionNumber = payment.TransactionNumber

	if settled {
		if _, err = s.orderService.FinalizeOrder(ctx, order.ID); err != nil {
			return
		}
		s.sendReceiptEmail(ctx, payment)

		resp.Success = true
		resp.Message = "Payment successful"
		return resp, nil
	}

	resp.Success = true
	resp.Message = "Payment pending"
	return resp, nil
}

func (s *PaymentServiceImpl) HandlePaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error) {
	payment, err := s.repo.GetPaymentByTransactionNumber(ctx, req.OrderID)
	if err != nil {
		return
	}

	// webhooks are retried by the gateway, settle at most once
	if payment.Status != domain.PaymentStatusPending {
		return nil
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if payment.ExpiredAt < time.Now().Unix() {
			if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusExpired); err != nil {
				return err
			}
			return errs.ErrPaymentExpired
		}

		if err = s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusSuccess); err != nil {
			return
		}

		if _, err = s.orderService.FinalizeOrder(ctx, payment.OrderID); err != nil && !errors.Is(err, errs.ErrOrderAlreadyPlaced) {
			return
		}

		s.sendReceiptEmail(ctx, payment)
		return nil
	case "deny", "cancel":
		return s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusFailed)
	case "expire":
		return s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusExpired)
	}

	return nil
}

// ExpireStalePayments runs on the scheduler and sweeps pending payments whose
// window has closed. The cart itself stays open.
func (s *PaymentServiceImpl) ExpireStalePayments() {
	ctx := context.Background()

	payments, err := s.repo.GetExpiredPendingPayments(ctx, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "ExpireStalePayments").Msg("")
		return
	}

	for _, payment := range payments {
		if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusExpired); err != nil {
			log.Error().Err(err).Str("component", "ExpireStalePayments").Msg("")
		}
	}

	if len(payments) > 0 {
		log.Info().Int("count", len(payments)).Msg("Expired stale pending payments")
	}
}

func (s *PaymentServiceImpl) sendReceiptEmail(ctx context.Context, payment domain.Payment) {
	if s.config.SMTPConfig.Host == "" || payment.Email == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPConfig.Sender)
	m.SetHeader("To", payment.Email)
	m.SetHeader("Subject", "Your GytShop receipt")
	m.SetBody("text/plain", fmt.Sprintf("Thank you for your order! We received your payment of %.2f (transaction %s).", payment.Amount, payment.TransactionNumber))

	if err := utils.SendEmail(m, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "sendReceiptEmail").Msg("")
	}
}
