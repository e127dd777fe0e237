package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/auth"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/orders/service"
	"food-delivery/internal/pubsub"
)

type mockService struct {
	createID  int64
	orders    []domain.Order
	order     domain.Order
	err       error
	gotStatus *domain.OrderStatus
}

func (m *mockService) CreateOrder(_ context.Context, _ domain.User, _ domain.CreateOrderRequest) (int64, error) {
	return m.createID, m.err
}

func (m *mockService) GetOrders(_ context.Context, _ domain.User, status *domain.OrderStatus) ([]domain.Order, error) {
	m.gotStatus = status
	return m.orders, m.err
}

func (m *mockService) GetOrder(_ context.Context, _ domain.User, _ int64) (domain.Order, error) {
	return m.order, m.err
}

func (m *mockService) EditOrder(_ context.Context, _ domain.User, _ int64, _ domain.OrderStatus) error {
	return m.err
}

func (m *mockService) TakeOrder(_ context.Context, _ domain.User, _ int64) error {
	return m.err
}

// testMW injects a fixed user the way the auth middleware would.
func testMW(user domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func newGateway(svc service.OrderServiceInterface, user domain.User) http.Handler {
	h := New(svc, pubsub.New(), logger.New("test"))
	return h.Routes(testMW(user))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderHappyPath(t *testing.T) {
	svc := &mockService{createID: 7}
	h := newGateway(svc, domain.User{ID: 1, Role: domain.RoleClient})

	rec := do(t, h, http.MethodPost, "/orders",
		`{"restaurant_id":10,"items":[{"dish_id":100}]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":true,"order_id":7}`, rec.Body.String())
}

func TestCreateOrderRoleGate(t *testing.T) {
	svc := &mockService{createID: 7}
	for _, role := range []domain.UserRole{domain.RoleOwner, domain.RoleDelivery} {
		h := newGateway(svc, domain.User{ID: 1, Role: role})
		rec := do(t, h, http.MethodPost, "/orders",
			`{"restaurant_id":10,"items":[{"dish_id":100}]}`)
		assert.Equalf(t, http.StatusForbidden, rec.Code, "role %s", role)
	}
}

func TestCreateOrderBadBody(t *testing.T) {
	h := newGateway(&mockService{}, domain.User{ID: 1, Role: domain.RoleClient})

	rec := do(t, h, http.MethodPost, "/orders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/orders", `{"restaurant_id":10,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderNotFoundEnvelope(t *testing.T) {
	svc := &mockService{err: service.ErrRestaurantNotFound}
	h := newGateway(svc, domain.User{ID: 1, Role: domain.RoleClient})

	rec := do(t, h, http.MethodPost, "/orders",
		`{"restaurant_id":999,"items":[{"dish_id":100}]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Restaurant Not Found"}`, rec.Body.String())
}

func TestGetOrdersStatusFilter(t *testing.T) {
	svc := &mockService{}
	h := newGateway(svc, domain.User{ID: 1, Role: domain.RoleClient})

	rec := do(t, h, http.MethodGet, "/orders?status=cooking", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotStatus)
	assert.Equal(t, domain.StatusCooking, *svc.gotStatus)

	rec = do(t, h, http.MethodGet, "/orders?status=sizzling", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTakeOrderRoleGateAndConflict(t *testing.T) {
	svc := &mockService{err: service.ErrAlreadyTaken}

	client := newGateway(svc, domain.User{ID: 1, Role: domain.RoleClient})
	rec := do(t, client, http.MethodPost, "/orders/5/take", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	deliverer := newGateway(svc, domain.User{ID: 3, Role: domain.RoleDelivery})
	rec = do(t, deliverer, http.MethodPost, "/orders/5/take", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"This Order Is Already Taken by Another Driver"}`, rec.Body.String())
}

func TestEditOrderStatusNotAllowed(t *testing.T) {
	svc := &mockService{err: service.ErrStatusNotAllowed}
	h := newGateway(svc, domain.User{ID: 2, Role: domain.RoleOwner})

	rec := do(t, h, http.MethodPatch, "/orders/5/status", `{"status":"picked_up"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"You Cannot Set That Status"}`, rec.Body.String())
}

func TestGetOrderForbiddenEnvelope(t *testing.T) {
	svc := &mockService{err: service.ErrForbidden}
	h := newGateway(svc, domain.User{ID: 9, Role: domain.RoleClient})

	rec := do(t, h, http.MethodGet, "/orders/5", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"You Cannot Access Someone Else's Order"}`, rec.Body.String())
}

func TestStreamRoleGates(t *testing.T) {
	svc := &mockService{}

	client := newGateway(svc, domain.User{ID: 1, Role: domain.RoleClient})
	rec := do(t, client, http.MethodGet, "/streams/orders/pending", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	owner := newGateway(svc, domain.User{ID: 2, Role: domain.RoleOwner})
	rec = do(t, owner, http.MethodGet, "/streams/orders/cooked", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
