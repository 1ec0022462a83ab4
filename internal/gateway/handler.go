// Package gateway serves the marketplace views and form posts as JSON over
// HTTP. Every request gets its own session built from the credential cookie.
package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	bookingservice "servicehub/internal/bookings/service"
	"servicehub/internal/directory"
	"servicehub/internal/events"
	profileservice "servicehub/internal/profile/service"
	"servicehub/internal/routes"
	"servicehub/internal/session"
	"servicehub/pkg/client"
	"servicehub/pkg/logger"
	"servicehub/pkg/middleware"
)

const IdempotencyHeader = "Idempotency-Key"

type Handler struct {
	httpClient  *client.HttpClient
	snapshots   directory.SnapshotStore
	publisher   events.Publisher
	cookies     session.CookieOptions
	limiter     *middleware.KeyedRateLimiter
	idempotency middleware.IdempotencyStore
	log         *logger.Logger
	now         func() time.Time
}

type Option func(*Handler)

func WithCookieOptions(opts session.CookieOptions) Option {
	return func(h *Handler) { h.cookies = opts }
}

// WithRateLimiter throttles POST /login and POST /register.
func WithRateLimiter(limiter *middleware.KeyedRateLimiter) Option {
	return func(h *Handler) { h.limiter = limiter }
}

// WithIdempotencyStore enables Idempotency-Key replay on booking submission.
func WithIdempotencyStore(store middleware.IdempotencyStore) Option {
	return func(h *Handler) { h.idempotency = store }
}

func WithPublisher(p events.Publisher) Option {
	return func(h *Handler) { h.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(httpClient *client.HttpClient, snapshots directory.SnapshotStore, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		httpClient: httpClient,
		snapshots:  snapshots,
		publisher:  events.Noop{},
		cookies:    session.CookieOptions{TTL: 24 * time.Hour},
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.snapshots == nil {
		h.snapshots = directory.NewMemorySnapshotStore()
	}
	return h
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET(routes.Home, h.Home)
	router.GET(routes.Login, h.LoginForm)
	router.GET(routes.Register, h.RegisterForm)
	router.GET(routes.JoinProvider, h.JoinProviderForm)
	router.GET(routes.Unauthorized, h.Unauthorized)
	router.GET(routes.Dashboard, h.Dashboard)
	router.GET(routes.Customer, h.CustomerDashboard)
	router.GET(routes.Provider, h.ProviderDashboard)

	router.Handler(http.MethodPost, routes.Login, h.throttled(h.Login))
	router.Handler(http.MethodPost, routes.Register, h.throttled(h.Register))
	router.POST("/logout", h.Logout)

	router.Handler(http.MethodPost, "/customer/bookings", h.idempotent(h.CreateBooking))
	router.POST("/provider/bookings/:id/accept", h.AcceptBooking)
	router.POST("/provider/bookings/:id/reject", h.RejectBooking)
	router.PUT("/provider/profile", h.UpdateProfile)

	router.NotFound = http.HandlerFunc(h.redirectHome)
}

// adapt turns an httprouter.Handle into an http.Handler that reads its
// params from the request context.
func adapt(handle httprouter.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, httprouter.ParamsFromContext(r.Context()))
	})
}

func (h *Handler) throttled(handle httprouter.Handle) http.Handler {
	if h.limiter == nil {
		return adapt(handle)
	}
	return middleware.RateLimit(h.limiter)(adapt(handle))
}

func (h *Handler) idempotent(handle httprouter.Handle) http.Handler {
	if h.idempotency == nil {
		return adapt(handle)
	}
	return middleware.Idempotency(h.idempotency, IdempotencyHeader, credentialScope)(adapt(handle))
}

// credentialScope keys idempotent replays by a digest of the session cookie
// so two accounts never share a cached response.
func credentialScope(r *http.Request) string {
	c, err := r.Cookie(session.TokenKey)
	if err != nil || c.Value == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(c.Value))
	return hex.EncodeToString(sum[:8])
}

// scope is the per-request object graph: one session and the services acting
// on its behalf.
type scope struct {
	session   *session.Store
	directory *directory.Service
	bookings  *bookingservice.BookingController
	profiles  *profileservice.ProfileService
}

func (h *Handler) newScope(w http.ResponseWriter, r *http.Request) *scope {
	tokens := session.NewCookieTokenStore(w, r, h.cookies)
	store := session.New(r.Context(), client.NewAuthClient(h.httpClient), tokens, h.log,
		session.WithPublisher(h.publisher),
		session.WithClock(h.now),
	)

	api := client.New(h.httpClient, store.Credential)
	dir := directory.NewService(api.Providers, h.snapshots, h.log)

	return &scope{
		session:   store,
		directory: dir,
		bookings: bookingservice.NewBookingController(api.Bookings, dir, store, h.log,
			bookingservice.WithPublisher(h.publisher),
			bookingservice.WithClock(h.now),
		),
		profiles: profileservice.NewProfileService(api.Providers, store, h.publisher, h.log),
	}
}
