package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYooKassa_CreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, testPaymentID, r.Header.Get("Idempotence-Key"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shop", user)
		assert.Equal(t, "secret", pass)

		var body ykCreatePayment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "300.00", body.Amount.Value)
		assert.Equal(t, "RUB", body.Amount.Currency)
		assert.True(t, body.Capture)
		assert.Equal(t, "redirect", body.Confirmation.Type)
		assert.Equal(t, "https://example.com/return", body.Confirmation.ReturnURL)
		assert.Equal(t, "premium", body.Metadata["plan_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "2d9c2b8c-000f-5000-8000-1b2c3d4e5f60",
			"status": "pending",
			"paid": false,
			"amount": {"value": "300.00", "currency": "RUB"},
			"confirmation": {"type": "redirect", "confirmation_url": "https://yoomoney.ru/checkout/payments/v2/contract?orderId=2d9c"}
		}`))
	}))
	defer srv.Close()

	g := NewYooKassaGateway(srv.URL, "shop", "secret")

	checkout, err := g.CreatePayment(context.Background(), CheckoutRequest{
		PaymentID:   testPaymentID,
		Amount:      30000,
		Currency:    "RUB",
		Description: "МИШУРА - Премиум",
		ReturnURL:   "https://example.com/return",
		Metadata:    map[string]string{"plan_id": "premium"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2d9c2b8c-000f-5000-8000-1b2c3d4e5f60", checkout.GatewayPaymentID)
	assert.Contains(t, checkout.ConfirmationURL, "yoomoney.ru")
	assert.Equal(t, StatusPending, checkout.Status)
}

func TestYooKassa_CreatePaymentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","code":"invalid_credentials","description":"Authentication by given credentials failed"}`))
	}))
	defer srv.Close()

	g := NewYooKassaGateway(srv.URL, "shop", "wrong")

	_, err := g.CreatePayment(context.Background(), CheckoutRequest{PaymentID: testPaymentID, Amount: 100, Currency: "RUB"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Authentication by given credentials failed")
}

func TestYooKassa_GetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payments/yk_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"yk_1","status":"succeeded","paid":true,"metadata":{"payment_id":"p1"}}`))
	}))
	defer srv.Close()

	gp, err := NewYooKassaGateway(srv.URL, "shop", "secret").GetPayment(context.Background(), "yk_1")
	require.NoError(t, err)
	assert.Equal(t, "yk_1", gp.ID)
	assert.Equal(t, StatusSucceeded, gp.Status)
	assert.Equal(t, "p1", gp.Metadata["payment_id"])
}

func TestYooKassa_ParseWebhook(t *testing.T) {
	g := NewYooKassaGateway("http://unused", "shop", "secret")

	tests := []struct {
		name       string
		body       string
		wantStatus string
		wantErr    bool
	}{
		{
			name:       "succeeded",
			body:       `{"type":"notification","event":"payment.succeeded","object":{"id":"yk_1","status":"succeeded"}}`,
			wantStatus: StatusSucceeded,
		},
		{
			name:       "canceled",
			body:       `{"type":"notification","event":"payment.canceled","object":{"id":"yk_1","status":"canceled"}}`,
			wantStatus: StatusCanceled,
		},
		{
			name: "waiting for capture",
			body: `{"type":"notification","event":"payment.waiting_for_capture","object":{"id":"yk_1"}}`,
		},
		{
			name:    "missing id",
			body:    `{"type":"notification","event":"payment.succeeded","object":{}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `event=payment.succeeded`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := g.ParseWebhook([]byte(tt.body), http.Header{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWebhook)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "yk_1", ev.GatewayPaymentID)
			assert.Equal(t, tt.wantStatus, ev.Status)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", formatAmount(15000))
	assert.Equal(t, "0.05", formatAmount(5))
	assert.Equal(t, "499.90", formatAmount(49990))
}
