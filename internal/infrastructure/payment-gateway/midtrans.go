package paymentgateway

import (
	"context"
	"fmt"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/sony/gobreaker/v2"
	"github.com/yazeedhani/Gytshop-API/config"
	circuitbreaker "github.com/yazeedhani/Gytshop-API/internal/infrastructure/circuit-breaker"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/utils"
)

const defaultPaymentWindow = 15 * time.Minute

type MidtransGateway struct {
	client *coreapi.Client
	cb     *gobreaker.CircuitBreaker[dto.ChargeResult]
}

func CreateMidtransGateway(config *config.Config) *MidtransGateway {
	midtrans.ServerKey = config.MidtransConfig.ServerKey
	midtrans.Environment = midtrans.Sandbox // Use midtrans.Production for production

	client := &coreapi.Client{}
	client.New(midtrans.ServerKey, midtrans.Environment)

	return &MidtransGateway{
		client: client,
		cb:     circuitbreaker.CreateCircuitBreaker[dto.ChargeResult]("payment-gateway"),
	}
}

func (g *MidtransGateway) Charge(ctx context.Context, transactionNumber string, amount int64, paymentMethodID string) (dto.ChargeResult, error) {
	return g.cb.Execute(func() (result dto.ChargeResult, err error) {
		chargeReq := &coreapi.ChargeReq{
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  transactionNumber,
				GrossAmt: amount,
			},
		}

		if paymentMethodID != "" {
			chargeReq.PaymentType = coreapi.PaymentTypeCreditCard
			chargeReq.CreditCard = &coreapi.CreditCardDetails{
				TokenID: paymentMethodID,
			}
		} else {
			chargeReq.PaymentType = coreapi.PaymentTypeQris
		}

		response, chargeErr := g.client.ChargeTransaction(chargeReq)
		if chargeErr != nil {
			return result, fmt.Errorf("charging transaction: %w", chargeErr)
		}

		if response.StatusCode != "200" && response.StatusCode != "201" {
			return result, fmt.Errorf("payment gateway returned non-2xx status: %s", response.StatusCode)
		}

		expiredAt := time.Now().Add(defaultPaymentWindow).Unix()
		if response.ExpiryTime != "" {
			if parsed, parseErr := utils.ConvertDateTimeWibToUnixTimestamp(response.ExpiryTime); parseErr == nil {
				expiredAt = parsed
			}
		}

		result.TransactionStatus = response.TransactionStatus
		result.ExpiryTime = expiredAt

		return result, nil
	})
}
