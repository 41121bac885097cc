package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-erp/models"
)

func TestWebhookNotifierPostsAlerts(t *testing.T) {
	var got stockAlertPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL)
	alerts := []models.StockAlert{{OrderReference: "ref", ProductID: "RM-010", Requested: 7, Available: 3, Shortfall: 4}}

	require.NoError(t, n.Notify(context.Background(), alerts))
	assert.Equal(t, alerts, got.Alerts)
}

func TestWebhookNotifierSkipsEmptyBatch(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	require.NoError(t, NewWebhookNotifier(server.URL).Notify(context.Background(), nil))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestWebhookNotifierOpensCircuit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL)
	alerts := []models.StockAlert{{ProductID: "RM-010", Shortfall: 1}}

	for i := 0; i < 3; i++ {
		err := n.Notify(context.Background(), alerts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	}

	err := n.Notify(context.Background(), alerts)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
