package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/usecase"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/memory"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/notify"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/dairybook-api/internal/interfaces/http"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var kolkata = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return loc
}()

func june(day int) time.Time { return time.Date(2024, time.June, day, 7, 0, 0, 0, kolkata) }

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

// newTestAPI monta el router completo sobre el almacén en memoria con el reloj fijado al 15 de junio.
func newTestAPI(t *testing.T, secret string, pinger apphttp.Pinger) *testAPI {
	t.Helper()
	store := memory.New()
	log := logger.Nop()

	generate := billing.NewGenerateBillUseCase(
		memory.NewTxRunner(store), store.Customers(), billing.NewSettler(log), kolkata, log,
	).WithClock(func() time.Time { return time.Date(2024, time.June, 15, 10, 30, 0, 0, kolkata) })

	if pinger == nil {
		pinger = store
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:     billing.NewCustomerUseCase(store.Customers()),
		TransactionUC:  usecase.NewTransactionUseCase(store.Transactions(), store.Customers()),
		DashboardUC:    usecase.NewDashboardUseCase(store.Customers(), store.Transactions(), store.Bills()),
		GenerateBillUC: generate,
		BillUC:         billing.NewBillUseCase(store.Bills(), store.Customers()),
		NotificationUC: billing.NewNotificationUseCase(store.Bills(), store.Notifications(), notify.NewWhatsAppMockSender(log), "₹", log),
		BillPDFUC:      billing.NewPDFUseCase(store.Bills(), store.Transactions(), pdf.NewMarotoPDFGenerator("Dairy Book"), "₹"),
		Health:         apphttp.NewHealthHandler("dairybook-api", "memory", pinger),
		JWTSecret:      secret,
	})
	return &testAPI{app: app, store: store}
}

func (a *testAPI) seedCustomer(t *testing.T, vendorID, id, name, phone string) {
	t.Helper()
	require.NoError(t, a.store.Customers().Create(context.Background(), &entity.Customer{
		ID: id, VendorID: vendorID, Name: name, Phone: phone, CreatedAt: june(1),
	}))
}

func (a *testAPI) seedTxn(t *testing.T, vendorID, id, customerID string, amount int64, date time.Time) {
	t.Helper()
	require.NoError(t, a.store.Transactions().Create(context.Background(), &entity.Transaction{
		ID: id, VendorID: vendorID, CustomerID: customerID, ItemName: "Milk 1L",
		Amount: decimal.NewFromInt(amount), Date: date, CreatedAt: date,
	}))
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, authHeader string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeMap(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Funciones invocables
// ──────────────────────────────────────────────────────────────────────────────

func TestCallableGenerateBill_Exito(t *testing.T) {
	api := newTestAPI(t, "", nil)
	api.seedCustomer(t, testVendorID, "c1", "Rajesh Kumar", "+919876543210")
	api.seedTxn(t, testVendorID, "t1", "c1", 100, june(1))
	api.seedTxn(t, testVendorID, "t2", "c1", 80, june(10))
	api.seedTxn(t, testVendorID, "t3", "c1", 40, june(15))

	resp, data := api.do(t, http.MethodPost, "/api/functions/generateBill",
		map[string]string{"vendorId": testVendorID, "customerId": "c1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	body := decodeMap(t, data)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["billId"])
	assert.Equal(t, float64(220), body["totalAmount"], "totalAmount es numérico")
	assert.Contains(t, string(data), `"totalAmount":220`)
	assert.EqualValues(t, 3, body["transactionCount"])
	assert.Equal(t, "Rajesh Kumar", body["customerName"])

	// Segunda llamada en el mismo mes: ya no hay nada que facturar.
	resp, data = api.do(t, http.MethodPost, "/api/functions/generateBill",
		map[string]string{"vendorId": testVendorID, "customerId": "c1"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeMap(t, data)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not-found", body["code"])
	assert.Equal(t, "No unpaid transactions found for this customer this month", body["message"])
}

func TestCallableGenerateBill_Errores(t *testing.T) {
	api := newTestAPI(t, "", nil)

	resp, data := api.do(t, http.MethodPost, "/api/functions/generateBill",
		map[string]string{"vendorId": testVendorID}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, data)
	assert.Equal(t, "invalid-argument", body["code"])
	assert.Equal(t, "Missing vendorId or customerId", body["message"])

	resp, data = api.do(t, http.MethodPost, "/api/functions/generateBill",
		map[string]string{"vendorId": testVendorID, "customerId": "ghost"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeMap(t, data)
	assert.Equal(t, "not-found", body["code"])
	assert.Equal(t, "Customer not found", body["message"])
}

func TestCallable_ConJWT(t *testing.T) {
	api := newTestAPI(t, testJWTSecret, nil)
	api.seedCustomer(t, testVendorID, "c1", "Rajesh Kumar", "+919876543210")
	api.seedTxn(t, testVendorID, "t1", "c1", 60, june(2))
	in := map[string]string{"vendorId": testVendorID, "customerId": "c1"}

	resp, data := api.do(t, http.MethodPost, "/api/functions/generateBill", in, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthenticated", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodPost, "/api/functions/generateBill", in, bearer(t, "vendor-2"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "permission-denied", decodeMap(t, data)["code"])

	resp, _ = api.do(t, http.MethodPost, "/api/functions/generateBill", in, bearer(t, testVendorID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCallableSendWhatsApp(t *testing.T) {
	api := newTestAPI(t, "", nil)
	api.seedCustomer(t, testVendorID, "c1", "Rajesh Kumar", "+919876543210")
	api.seedTxn(t, testVendorID, "t1", "c1", 220, june(5))

	_, data := api.do(t, http.MethodPost, "/api/functions/generateBill",
		map[string]string{"vendorId": testVendorID, "customerId": "c1"}, "")
	billID, _ := decodeMap(t, data)["billId"].(string)
	require.NotEmpty(t, billID)

	resp, data := api.do(t, http.MethodPost, "/api/functions/sendWhatsApp",
		map[string]string{"vendorId": testVendorID, "billId": billID}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	body := decodeMap(t, data)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Mock WhatsApp sent successfully", body["message"])
	assert.NotEmpty(t, body["notificationId"])
	assert.Equal(t, "+919876543210", body["phoneNumber"])
	assert.Contains(t, body["fullMessage"], "Total Amount: ₹220")

	resp, data = api.do(t, http.MethodPost, "/api/functions/sendWhatsApp",
		map[string]string{"vendorId": testVendorID, "billId": "missing"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Bill not found", decodeMap(t, data)["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// REST por vendedor
// ──────────────────────────────────────────────────────────────────────────────

func TestREST_FlujoCompleto(t *testing.T) {
	api := newTestAPI(t, "", nil)
	base := "/api/vendors/" + testVendorID

	// Alta de cliente
	resp, data := api.do(t, http.MethodPost, base+"/customers",
		map[string]string{"name": "Rajesh Kumar", "phone": "+919876543210"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	customerID, _ := decodeMap(t, data)["id"].(string)
	require.NotEmpty(t, customerID)

	// Ventas del mes y una de mayo que no entra en la factura
	for _, in := range []map[string]interface{}{
		{"customer_id": customerID, "item_name": "Milk 1L", "amount": "100", "date": june(1)},
		{"customer_id": customerID, "item_name": "Curd", "amount": "80", "date": june(10)},
		{"customer_id": customerID, "item_name": "Milk 1L", "amount": "40", "date": june(15)},
		{"customer_id": customerID, "item_name": "Ghee", "amount": "500", "date": time.Date(2024, time.May, 31, 20, 0, 0, 0, kolkata)},
	} {
		resp, data = api.do(t, http.MethodPost, base+"/transactions", in, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}

	resp, data = api.do(t, http.MethodGet, base+"/customers/"+customerID+"/transactions", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ledger := decodeMap(t, data)
	assert.Equal(t, "720", ledger["unpaid_total"])
	assert.Len(t, ledger["transactions"], 4)

	// Factura del mes
	resp, data = api.do(t, http.MethodPost, base+"/customers/"+customerID+"/bills", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	bill := decodeMap(t, data)
	billID, _ := bill["id"].(string)
	assert.Equal(t, "220", bill["total_amount"])
	assert.EqualValues(t, 3, bill["transaction_count"])
	assert.Equal(t, "2024-06", bill["billing_month"])

	resp, data = api.do(t, http.MethodGet, base+"/customers/"+customerID+"/transactions", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "500", decodeMap(t, data)["unpaid_total"], "solo queda pendiente la venta de mayo")

	resp, data = api.do(t, http.MethodGet, base+"/bills/"+billID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, billID, decodeMap(t, data)["id"])

	resp, data = api.do(t, http.MethodGet, base+"/customers/"+customerID+"/bills", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bills []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &bills))
	assert.Len(t, bills, 1)

	resp, data = api.do(t, http.MethodGet, base+"/customers/"+customerID+"/bills?month=2024-05", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &bills))
	assert.Empty(t, bills)

	resp, data = api.do(t, http.MethodGet, base+"/customers/"+customerID+"/bills?month=mayo", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, data)["code"])

	// PDF
	resp, data = api.do(t, http.MethodGet, base+"/bills/"+billID+"/pdf", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bill_2024-06_"+billID+".pdf")
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	// Notificación
	resp, data = api.do(t, http.MethodPost, base+"/bills/"+billID+"/notifications", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.Equal(t, "mock_sent", decodeMap(t, data)["status"])

	resp, data = api.do(t, http.MethodGet, base+"/bills/"+billID+"/notifications", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notifications []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &notifications))
	assert.Len(t, notifications, 1)

	// Dashboard
	resp, data = api.do(t, http.MethodGet, base+"/dashboard", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeMap(t, data)
	assert.Equal(t, "720", summary["total_sales"])
	assert.Equal(t, "500", summary["unpaid_total"])
	assert.EqualValues(t, 1, summary["bill_count"])
}

func TestREST_Errores(t *testing.T) {
	api := newTestAPI(t, "", nil)
	api.seedCustomer(t, testVendorID, "c1", "Rajesh Kumar", "")
	base := "/api/vendors/" + testVendorID

	resp, data := api.do(t, http.MethodPost, base+"/customers/c1/bills", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NO_UNPAID_TRANSACTIONS", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodGet, base+"/bills/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodPost, base+"/transactions",
		map[string]interface{}{"customer_id": "c1", "item_name": "Milk", "amount": "-5"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodPost, base+"/transactions",
		map[string]interface{}{"customer_id": "c1", "item_name": "Milk", "amount": "10.125"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodPost, base+"/transactions",
		map[string]interface{}{"customer_id": "c1", "item_name": "Milk", "amount": "1000000000000"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, data)["code"])

	resp, data = api.do(t, http.MethodPost, base+"/customers", map[string]string{"name": " "}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, data)["code"])

	// Un cliente de otro vendedor no es visible.
	resp, _ = api.do(t, http.MethodGet, "/api/vendors/vendor-2/customers/c1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	api := newTestAPI(t, "", nil)
	resp, data := api.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, data)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["store"])

	degraded := newTestAPI(t, "", failingPinger{})
	resp, data = degraded.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", decodeMap(t, data)["status"])
}
