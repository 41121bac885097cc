package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"carpet-erp/models"
)

// Notifier delivers stock alerts to whoever handles restocking
type Notifier interface {
	Notify(ctx context.Context, alerts []models.StockAlert) error
}

// LogNotifier only logs alerts. Used when no webhook is configured.
type LogNotifier struct{}

// Notify logs each alert
func (LogNotifier) Notify(_ context.Context, alerts []models.StockAlert) error {
	for _, a := range alerts {
		log.WithFields(log.Fields{
			"order":     a.OrderReference,
			"product":   a.ProductID,
			"requested": a.Requested,
			"available": a.Available,
			"shortfall": a.Shortfall,
		}).Warn("⚠️  Stock shortfall")
	}
	return nil
}

// WebhookNotifier posts alerts as JSON to a webhook behind a circuit breaker
type WebhookNotifier struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	url     string
}

// stockAlertPayload is the webhook request body
type stockAlertPayload struct {
	Alerts []models.StockAlert `json:"alerts"`
}

// NewWebhookNotifier creates a WebhookNotifier for url
func NewWebhookNotifier(url string) *WebhookNotifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stock-alert-webhook",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})

	return &WebhookNotifier{
		client:  resty.New().SetTimeout(5 * time.Second).SetRetryCount(0),
		breaker: breaker,
		url:     url,
	}
}

// Notify posts alerts to the webhook. An open circuit fails fast.
func (n *WebhookNotifier) Notify(ctx context.Context, alerts []models.StockAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	_, err := n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(stockAlertPayload{Alerts: alerts}).
			Post(n.url)
		if err != nil {
			return nil, fmt.Errorf("HTTP error: %w", err)
		}
		if resp.StatusCode() >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to deliver %d stock alerts: %w", len(alerts), err)
	}

	log.Printf("📣 Delivered %d stock alerts to webhook", len(alerts))
	return nil
}
