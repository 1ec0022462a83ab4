package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"servicehub/internal/events"
	"servicehub/internal/session"
	"servicehub/pkg/client"
	"servicehub/pkg/logger"
	"servicehub/pkg/middleware"
	"servicehub/pkg/model"
)

const (
	customerToken = "customer-token"
	providerToken = "provider-token"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// fakeBackend is an in-memory REST backend speaking the marketplace API.
type fakeBackend struct {
	mu            sync.Mutex
	users         map[string]model.User
	providers     []model.ServiceProvider
	bookings      map[int64]*model.Booking
	nextBookingID int64
	providersDown bool
	registerCalls int
	createCalls   int
	statusCalls   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[string]model.User{
			customerToken: {ID: 10, Email: "ana@example.com", Name: "Ana", Role: model.RoleCustomer},
			providerToken: {ID: 1, Email: "joe@example.com", Name: "Joe", Role: model.RoleServiceProvider},
		},
		providers: []model.ServiceProvider{
			{
				User:          model.User{ID: 1, Email: "joe@example.com", Name: "Joe", Role: model.RoleServiceProvider, Location: "Brooklyn"},
				Services:      []string{"plumber"},
				Fare:          50,
				Description:   "Pipes",
				Rating:        4.8,
				CompletedJobs: 31,
			},
			{
				User:     model.User{ID: 2, Email: "pia@example.com", Name: "Pia", Role: model.RoleServiceProvider, Location: "Queens"},
				Services: []string{"painter"},
				Fare:     80,
			},
		},
		bookings:      map[int64]*model.Booking{},
		nextBookingID: 1,
	}
}

func (b *fakeBackend) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) caller(r *http.Request) (model.User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	u, ok := b.users[token]
	return u, ok
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "ana@example.com" || creds.Password != "secret1" {
			b.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		b.writeJSON(w, http.StatusOK, model.AuthResponse{Token: customerToken, User: b.users[customerToken]})
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.registerCalls++
		b.mu.Unlock()
		var data model.RegisterData
		_ = json.NewDecoder(r.Body).Decode(&data)
		user := model.User{ID: 99, Email: data.Email, Name: data.Name, Role: data.Role}
		b.mu.Lock()
		b.users["new-token"] = user
		b.mu.Unlock()
		b.writeJSON(w, http.StatusCreated, model.AuthResponse{Token: "new-token", User: user})
	})

	mux.HandleFunc("GET /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		b.writeJSON(w, http.StatusOK, u)
	})

	mux.HandleFunc("GET /api/providers", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.providersDown {
			b.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "providers unavailable"})
			return
		}
		b.writeJSON(w, http.StatusOK, b.providers)
	})

	mux.HandleFunc("GET /api/providers/featured", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.writeJSON(w, http.StatusOK, b.providers[:1])
	})

	mux.HandleFunc("GET /api/providers/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if p := b.provider(r.PathValue("id")); p != nil {
			b.writeJSON(w, http.StatusOK, p)
			return
		}
		b.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Provider not found"})
	})

	mux.HandleFunc("PUT /api/providers/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		p := b.provider(r.PathValue("id"))
		if p == nil {
			b.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Provider not found"})
			return
		}
		var patch model.ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&patch)
		patch.Apply(p)
		b.writeJSON(w, http.StatusOK, p)
	})

	mux.HandleFunc("GET /api/bookings/customer/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.listBookings(w, r, func(bk *model.Booking, id int64) bool { return bk.CustomerID == id })
	})

	mux.HandleFunc("GET /api/bookings/provider/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.listBookings(w, r, func(bk *model.Booking, id int64) bool { return bk.ServiceProviderID == id })
	})

	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.createCalls++
		var req model.BookingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		bk := &model.Booking{
			ID:                b.nextBookingID,
			CustomerID:        req.CustomerID,
			ServiceProviderID: req.ServiceProviderID,
			ServiceType:       req.ServiceType,
			Description:       req.Description,
			ScheduledDate:     req.ScheduledDate,
			Status:            model.Pending,
			Fare:              req.Fare,
		}
		b.bookings[bk.ID] = bk
		b.nextBookingID++
		b.writeJSON(w, http.StatusCreated, bk)
	})

	mux.HandleFunc("PUT /api/bookings/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.statusCalls++
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		bk, ok := b.bookings[id]
		if !ok {
			b.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
			return
		}
		var update model.StatusUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		if !bk.Status.CanTransitionTo(update.Status) {
			b.writeJSON(w, http.StatusConflict, map[string]string{"message": "Booking is not pending"})
			return
		}
		bk.Status = update.Status
		b.writeJSON(w, http.StatusOK, bk)
	})

	return mux
}

func (b *fakeBackend) calls(counter *int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *counter
}

func (b *fakeBackend) provider(rawID string) *model.ServiceProvider {
	id, _ := strconv.ParseInt(rawID, 10, 64)
	for i := range b.providers {
		if b.providers[i].ID == id {
			return &b.providers[i]
		}
	}
	return nil
}

func (b *fakeBackend) listBookings(w http.ResponseWriter, r *http.Request, match func(*model.Booking, int64) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	out := []model.Booking{}
	for i := int64(1); i < b.nextBookingID; i++ {
		if bk, ok := b.bookings[i]; ok && match(bk, id) {
			out = append(out, *bk)
		}
	}
	b.writeJSON(w, http.StatusOK, out)
}

type testGateway struct {
	backend   *fakeBackend
	router    http.Handler
	published *events.Recorder
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	idempotency := middleware.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(idempotency.Stop)

	recorder := &events.Recorder{}
	h := NewHandler(client.NewHttpClient(srv.URL, 2*time.Second), nil, logger.Nop(),
		WithClock(func() time.Time { return testNow }),
		WithIdempotencyStore(idempotency),
		WithPublisher(recorder),
	)
	router := httprouter.New()
	h.RegisterRoutes(router)

	return &testGateway{backend: backend, router: router, published: recorder}
}

func (g *testGateway) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.TokenKey, Value: token})
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, rec.Body.String())
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string, violations []string) {
	t.Helper()
	var body struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		Violations []string `json:"violations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body %s)", err, rec.Body.String())
	}
	return body.Code, body.Message, body.Violations
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.TokenKey {
			return c
		}
	}
	return nil
}

func TestViewPolicy(t *testing.T) {
	g := newTestGateway(t)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"home is public", "/", "", http.StatusOK, ""},
		{"login form is public", "/login", "", http.StatusOK, ""},
		{"customer view requires login", "/customer", "", http.StatusSeeOther, "/login"},
		{"customer view rejects providers", "/customer", providerToken, http.StatusSeeOther, "/unauthorized"},
		{"provider view rejects customers", "/provider", customerToken, http.StatusSeeOther, "/unauthorized"},
		{"dashboard sends customers home", "/dashboard", customerToken, http.StatusSeeOther, "/customer"},
		{"dashboard sends providers home", "/dashboard", providerToken, http.StatusSeeOther, "/provider"},
		{"dashboard requires login", "/dashboard", "", http.StatusSeeOther, "/login"},
		{"unknown path", "/admin", customerToken, http.StatusSeeOther, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := g.do(http.MethodGet, tt.path, tt.token, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestJoinProviderPreselectsRole(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodGet, "/join-provider", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var form FormView
	decodeData(t, rec, &form)
	if form.Role != model.RoleServiceProvider || len(form.Services) == 0 {
		t.Errorf("unexpected form %+v", form)
	}
}

func TestLogin(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPost, "/login", "", model.Credentials{Email: " Ana@Example.com ", Password: "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != customerToken || !cookie.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", cookie)
	}
	var view SessionView
	decodeData(t, rec, &view)
	if view.User == nil || view.User.ID != 10 || view.Redirect != "/dashboard" {
		t.Errorf("unexpected session view %+v", view)
	}

	rec = g.do(http.MethodPost, "/login", "", model.Credentials{Email: "ana@example.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if _, msg, _ := decodeError(t, rec); msg != "Invalid credentials" {
		t.Errorf("message = %q, want backend message verbatim", msg)
	}
}

func TestRegister_ProviderWithoutServicesNeverReachesBackend(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPost, "/register", "", map[string]any{
		"name":            "Joe",
		"email":           "joe@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"role":            "SERVICE_PROVIDER",
		"fare":            40,
		"description":     "Pipes",
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
	_, _, violations := decodeError(t, rec)
	if len(violations) != 1 || violations[0] != "services must include at least one service" {
		t.Errorf("violations = %q", violations)
	}
	if g.backend.calls(&g.backend.registerCalls) != 0 {
		t.Errorf("backend called %d times", g.backend.calls(&g.backend.registerCalls))
	}
}

func TestRegister_SetsCookieAndPublishes(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPost, "/register", "", map[string]any{
		"name":            "Kim",
		"email":           "kim@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"role":            "CUSTOMER",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if c := sessionCookie(rec); c == nil || c.Value != "new-token" {
		t.Errorf("expected session cookie, got %+v", c)
	}
	if types := g.published.Types(); len(types) != 1 || types[0] != events.SessionRegistered {
		t.Errorf("events = %v", types)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPost, "/logout", customerToken, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	if c := sessionCookie(rec); c == nil || c.MaxAge >= 0 {
		t.Errorf("expected expired cookie, got %+v", c)
	}
}

func TestStaleCookieIsDropped(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodGet, "/customer", "revoked-token", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	if c := sessionCookie(rec); c == nil || c.MaxAge >= 0 {
		t.Errorf("expected expired cookie, got %+v", c)
	}
}

func TestCustomerDashboard(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodGet, "/customer?service=Plumber&max_fare=60", customerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var view CustomerView
	decodeData(t, rec, &view)
	if len(view.Providers) != 1 || view.Providers[0].ID != 1 {
		t.Errorf("providers = %+v", view.Providers)
	}
	if view.Error != "" {
		t.Errorf("unexpected error %q", view.Error)
	}

	g.backend.mu.Lock()
	g.backend.providersDown = true
	g.backend.mu.Unlock()

	rec = g.do(http.MethodGet, "/customer", customerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	view = CustomerView{}
	decodeData(t, rec, &view)
	if len(view.Providers) != 2 {
		t.Errorf("expected last snapshot of 2 providers, got %d", len(view.Providers))
	}
	if view.Error != "providers unavailable" {
		t.Errorf("error = %q, want upstream message", view.Error)
	}
}

func TestCustomerDashboard_InvalidFilter(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodGet, "/customer?max_fare=cheap", customerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func bookPlumber(g *testGateway, headers ...string) *httptest.ResponseRecorder {
	return g.do(http.MethodPost, "/customer/bookings", customerToken, map[string]any{
		"serviceProviderId": 1,
		"serviceType":       "plumber",
		"description":       "Leaking sink",
		"scheduledDate":     model.DateOf(testNow).AddDays(5).String(),
	}, headers...)
}

func TestCreateBooking(t *testing.T) {
	g := newTestGateway(t)

	rec := bookPlumber(g)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var booking model.Booking
	decodeData(t, rec, &booking)
	if booking.Status != model.Pending || booking.Fare != 50 || booking.CustomerID != 10 {
		t.Errorf("unexpected booking %+v", booking)
	}
	if types := g.published.Types(); len(types) != 1 || types[0] != events.BookingRequested {
		t.Errorf("events = %v", types)
	}
}

func TestCreateBooking_Rejections(t *testing.T) {
	g := newTestGateway(t)

	tests := []struct {
		name       string
		token      string
		body       map[string]any
		wantStatus int
	}{
		{
			name:  "service not offered",
			token: customerToken,
			body: map[string]any{
				"serviceProviderId": 1,
				"serviceType":       "painter",
				"scheduledDate":     model.DateOf(testNow).AddDays(1).String(),
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "date in the past",
			token: customerToken,
			body: map[string]any{
				"serviceProviderId": 1,
				"serviceType":       "plumber",
				"scheduledDate":     model.DateOf(testNow).AddDays(-1).String(),
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "anonymous",
			body:       map[string]any{"serviceProviderId": 1},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "provider account",
			token:      providerToken,
			body:       map[string]any{"serviceProviderId": 1},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := g.do(http.MethodPost, "/customer/bookings", tt.token, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
	if g.backend.calls(&g.backend.createCalls) != 0 {
		t.Errorf("backend create called %d times", g.backend.calls(&g.backend.createCalls))
	}
}

func TestCreateBooking_IdempotentReplay(t *testing.T) {
	g := newTestGateway(t)

	first := bookPlumber(g, "Idempotency-Key", "book-1")
	second := bookPlumber(g, "Idempotency-Key", "book-1")

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("second response should be a replay")
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replayed body differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if g.backend.calls(&g.backend.createCalls) != 1 {
		t.Errorf("backend create called %d times, want 1", g.backend.calls(&g.backend.createCalls))
	}
}

func TestAcceptThenReject(t *testing.T) {
	g := newTestGateway(t)
	if rec := bookPlumber(g); rec.Code != http.StatusCreated {
		t.Fatalf("booking failed: %d", rec.Code)
	}

	rec := g.do(http.MethodPost, "/provider/bookings/1/accept", providerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var booking model.Booking
	decodeData(t, rec, &booking)
	if booking.Status != model.Accepted {
		t.Errorf("status = %s, want ACCEPTED", booking.Status)
	}

	rec = g.do(http.MethodPost, "/provider/bookings/1/reject", providerToken, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reject status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
	if g.backend.calls(&g.backend.statusCalls) != 1 {
		t.Errorf("status endpoint called %d times, want 1", g.backend.calls(&g.backend.statusCalls))
	}
}

func TestSetStatus_InvalidID(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPost, "/provider/bookings/abc/accept", providerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProviderDashboardAndProfileUpdate(t *testing.T) {
	g := newTestGateway(t)
	bookPlumber(g)

	rec := g.do(http.MethodPut, "/provider/profile", providerToken, map[string]any{
		"fare":     65,
		"services": []string{"Plumber", "handyman"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = g.do(http.MethodGet, "/provider", providerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var view ProviderView
	decodeData(t, rec, &view)
	if view.Profile == nil || view.Profile.Fare != 65 || len(view.Profile.Services) != 2 {
		t.Fatalf("profile not updated: %+v", view.Profile)
	}
	if view.Profile.Rating != 4.8 || view.Profile.CompletedJobs != 31 {
		t.Errorf("server-owned fields changed: %+v", view.Profile)
	}
	want := model.ProviderStats{TotalBookings: 1, PendingBookings: 1, Rating: 4.8}
	if view.Stats != want {
		t.Errorf("stats = %+v, want %+v", view.Stats, want)
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(http.MethodPut, "/provider/profile", providerToken, map[string]any{"fare": 0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
	}{
		{"no database", nil, http.StatusOK},
		{"database up", stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: errors.New("no reachable servers")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(tt.pinger, logger.Nop()).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
