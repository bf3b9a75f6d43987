package placeorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
)

type serviceStub struct {
	placed *order.Order
	err    error
	got    *order.Order
}

func (s *serviceStub) PlaceOrder(_ context.Context, o order.Order) (*order.Order, error) {
	s.got = &o

	return s.placed, s.err
}

const validBody = `{
	"customer": {"name": "Alex Green", "email": "alex@example.com", "phone": "+1 555 0101"},
	"items": [{"juiceId": 1, "quantity": 2}],
	"deliveryAddress": "12 Orchard Lane",
	"paymentMethod": "card"
}`

func doRequest(t *testing.T, svc service, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	PlaceOrder(rec, req, svc)

	return rec
}

func TestPlaceOrderHandler(t *testing.T) {
	stub := &serviceStub{placed: &order.Order{
		ID:         1,
		Status:     order.StatusPending,
		TotalCents: 200,
	}}

	rec := doRequest(t, stub, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp order.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, order.StatusPending, resp.Status)

	require.NotNil(t, stub.got)
	assert.Equal(t, "alex@example.com", stub.got.Customer.Email)
	require.Len(t, stub.got.Items, 1)
	assert.Equal(t, 2, stub.got.Items[0].Quantity)
}

func TestPlaceOrderHandlerValidation(t *testing.T) {
	cases := map[string]string{
		"malformed json":  `{`,
		"missing items":   `{"customer": {"name": "A", "email": "a@b.c", "phone": "1"}, "deliveryAddress": "x", "paymentMethod": "card"}`,
		"empty items":     `{"customer": {"name": "A", "email": "a@b.c", "phone": "1"}, "items": [], "deliveryAddress": "x", "paymentMethod": "card"}`,
		"zero quantity":   `{"customer": {"name": "A", "email": "a@b.c", "phone": "1"}, "items": [{"juiceId": 1, "quantity": 0}], "deliveryAddress": "x", "paymentMethod": "card"}`,
		"bad email":       `{"customer": {"name": "A", "email": "not-an-email", "phone": "1"}, "items": [{"juiceId": 1, "quantity": 1}], "deliveryAddress": "x", "paymentMethod": "card"}`,
		"missing address": `{"customer": {"name": "A", "email": "a@b.c", "phone": "1"}, "items": [{"juiceId": 1, "quantity": 1}], "paymentMethod": "card"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &serviceStub{}
			rec := doRequest(t, stub, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, stub.got, "service must not be called on invalid input")
		})
	}
}

func TestPlaceOrderHandlerStockErrors(t *testing.T) {
	t.Run("insufficient stock", func(t *testing.T) {
		stub := &serviceStub{err: &juice.InsufficientStockError{
			JuiceID:   1,
			Available: 1,
			Requested: 2,
		}}
		rec := doRequest(t, stub, validBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown juice", func(t *testing.T) {
		stub := &serviceStub{err: juice.ErrJuiceNotFound}
		rec := doRequest(t, stub, validBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
