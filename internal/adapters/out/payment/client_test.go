package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/payment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_VerifyPayment_Success(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "test-key")
	err := client.VerifyPayment(t.Context(), "pay_123")

	require.NoError(t, err)
	assert.Equal(t, "/v1/payments/pay_123/verify", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClient_VerifyPayment_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "test-key")
	err := client.VerifyPayment(t.Context(), "pay_unsettled")

	assert.ErrorIs(t, err, errs.ErrExternalFailure)
}

func TestClient_Refund_SendsAmount(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "test-key")
	err := client.Refund(t.Context(), "pay_123", kernel.MustMoneyFromFloat(499.5))

	require.NoError(t, err)
	assert.Equal(t, "499.50", gotBody["amount"])
}

func TestClient_Execute_SendsPayout(t *testing.T) {
	customerID := kernel.NewUUID()

	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "test-key")
	err := client.Execute(t.Context(), customerID, rma.RefundToWallet, kernel.MustMoneyFromFloat(1200))

	require.NoError(t, err)
	assert.Equal(t, "/v1/payouts", gotPath)
	assert.Equal(t, customerID.String(), gotBody["customer_id"])
	assert.Equal(t, "wallet", gotBody["method"])
	assert.Equal(t, "1200.00", gotBody["amount"])
}

func TestClient_Execute_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := payment.NewClient(srv.URL, "test-key")
	err := client.Execute(t.Context(), kernel.NewUUID(), rma.RefundToStoreCredit, kernel.MustMoneyFromFloat(100))

	assert.ErrorIs(t, err, errs.ErrExternalFailure)
}
