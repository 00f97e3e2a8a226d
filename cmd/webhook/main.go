package main

import (
	"flag"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payrail-go/internal/client"
	"github.com/payrail-go/internal/config"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/logger"
	"github.com/payrail-go/internal/webhook"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()

	addr := flag.String("addr", ":8089", "监听地址")
	flag.Parse()

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	payClient, err := client.New(&gateway.Config{
		APIBase:    cfg.Gateway.APIBase,
		PrivateKey: cfg.Gateway.PrivateKey,
		TimeoutMS:  cfg.Gateway.TimeoutMS,
	}, logger.Z())
	if err != nil {
		log.Fatalw("client_init_failed", "error", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/payrail/webhook", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Warnw("webhook_body_read_failed", "client_ip", c.ClientIP(), "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"accepted": false})
			return
		}
		if err := webhook.VerifySignature(cfg.Gateway.WebhookSecret, c.Request.Header, body); err != nil {
			log.Warnw("webhook_verify_failed", "client_ip", c.ClientIP(), "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"accepted": false})
			return
		}
		event, err := webhook.ParseEvent(body)
		if err != nil {
			log.Warnw("webhook_event_invalid", "client_ip", c.ClientIP(), "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"accepted": false})
			return
		}
		log.Infow("webhook_received",
			"event_id", event.ID,
			"event", event.EventType,
			"payment_id", event.PaymentID(),
			"client_ip", c.ClientIP(),
		)

		status, known := webhook.ToPaymentStatus(event.EventType)
		if !known {
			c.JSON(http.StatusOK, gin.H{"accepted": true, "updated": false})
			return
		}

		// 回调只是提示，支付状态以服务端拉取结果为准
		if id := event.PaymentID(); id != "" {
			payment, err := payClient.FetchPayment(c.Request.Context(), id)
			if err != nil {
				log.Warnw("payment_refresh_failed", "payment_id", id, "error", err)
			} else if payment.Status() != status {
				log.Warnw("webhook_status_mismatch",
					"payment_id", id,
					"event_status", status,
					"fetched_status", payment.Status(),
				)
			}
		}
		c.JSON(http.StatusOK, gin.H{"accepted": true, "event": event.EventType, "status": status})
	})

	log.Infow("webhook_listening", "addr", *addr)
	if err := engine.Run(*addr); err != nil {
		log.Fatalw("webhook_server_failed", "error", err)
	}
}
