package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/client"
	"github.com/payrail-go/internal/config"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/logger"
	"github.com/payrail-go/internal/resources"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()

	var (
		amountFlag = flag.String("amount", "119.00", "授权金额")
		currency   = flag.String("currency", "EUR", "币种")
		cancelFlag = flag.String("cancel", "", "撤销金额，留空则全额撤销")
	)
	flag.Parse()

	value, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		log.Fatalw("amount_invalid", "amount", *amountFlag, "error", err)
	}

	payClient, err := client.New(&gateway.Config{
		APIBase:    cfg.Gateway.APIBase,
		PrivateKey: cfg.Gateway.PrivateKey,
		TimeoutMS:  cfg.Gateway.TimeoutMS,
	}, logger.Z())
	if err != nil {
		log.Fatalw("client_init_failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 授权 -> 部分扣款 -> 撤销，演示一次完整生命周期
	card := &resources.Card{Number: "4711100000000000", ExpiryDate: "03/30", CVC: "123"}
	auth, err := payClient.Authorize(ctx, card, client.AuthorizeInput{
		Amount:    value,
		Currency:  *currency,
		ReturnURL: cfg.Gateway.ReturnURL,
	})
	if err != nil {
		log.Fatalw("authorize_failed", "error", err)
	}
	payment := auth.Payment()
	log.Infow("payment_authorized", "payment_id", payment.ID, "status", payment.Status())

	half := value.Div(decimal.NewFromInt(2)).Round(2)
	if _, err := payClient.ChargePayment(ctx, payment, &half); err != nil {
		log.Fatalw("charge_failed", "payment_id", payment.ID, "error", err)
	}
	log.Infow("payment_charged", "payment_id", payment.ID, "status", payment.Status())

	var cancelValue *decimal.Decimal
	if *cancelFlag != "" {
		parsed, err := decimal.NewFromString(*cancelFlag)
		if err != nil {
			log.Fatalw("cancel_amount_invalid", "cancel", *cancelFlag, "error", err)
		}
		cancelValue = &parsed
	}
	created, err := payClient.CancelPayment(ctx, payment, cancelValue)
	if err != nil {
		log.Fatalw("cancel_failed", "payment_id", payment.ID, "created", len(created), "error", err)
	}
	log.Infow("payment_cancel_allocated", "payment_id", payment.ID, "cancellations", len(created))

	am := payment.ComputeAmounts()
	fmt.Printf("payment %s  status=%s\n", payment.ID, payment.Status())
	fmt.Printf("  total=%s charged=%s canceled=%s remaining=%s\n",
		am.Total.StringFixed(2), am.Charged.StringFixed(2), am.Canceled.StringFixed(2), am.Remaining.StringFixed(2))
}
