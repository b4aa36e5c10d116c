package handler

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/farahelsenaryyy/Autofixer/internal/config"
	"github.com/farahelsenaryyy/Autofixer/internal/flash"
	"github.com/farahelsenaryyy/Autofixer/internal/middleware"
	"github.com/farahelsenaryyy/Autofixer/internal/model"
	"github.com/farahelsenaryyy/Autofixer/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics the
// handlers rely on: sentinel errors, insertion-ordered car listings and
// date-descending booking listings.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore { return &fakeUserStore{users: map[uint64]model.User{}} }

func (s *fakeUserStore) Create(_ context.Context, u model.User) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type fakeCarStore struct {
	mu     sync.Mutex
	nextID uint64
	cars   []model.Car
}

func newFakeCarStore() *fakeCarStore { return &fakeCarStore{} }

func (s *fakeCarStore) Create(_ context.Context, car model.Car) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	car.ID = s.nextID
	s.cars = append(s.cars, car)
	return car.ID, nil
}

func (s *fakeCarStore) ListByOwner(_ context.Context, owner uint64) ([]model.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Car{}
	for _, car := range s.cars {
		if car.UserID == owner {
			out = append(out, car)
		}
	}
	return out, nil
}

func (s *fakeCarStore) GetByID(_ context.Context, id uint64) (model.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, car := range s.cars {
		if car.ID == id {
			return car, nil
		}
	}
	return model.Car{}, repository.ErrCarNotFound
}

type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings []model.ServiceBooking
}

func newFakeBookingStore() *fakeBookingStore { return &fakeBookingStore{} }

func (s *fakeBookingStore) Create(_ context.Context, b *model.ServiceBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now().UTC()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeBookingStore) ListByCar(_ context.Context, carID uint64) ([]model.ServiceBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ServiceBooking{}
	for _, b := range s.bookings {
		if b.CarID == carID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BookingDate.After(out[j].BookingDate) })
	return out, nil
}

func (s *fakeBookingStore) countForUser(userID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n
}

// failingCarStore delegates to the embedded fake but refuses inserts,
// simulating a commit failure in the car repository.
type failingCarStore struct{ *fakeCarStore }

func (s *failingCarStore) Create(context.Context, model.Car) (uint64, error) {
	return 0, errArtificial
}

// failingBookingStore refuses inserts, simulating a commit failure in
// the booking repository.
type failingBookingStore struct{ *fakeBookingStore }

func (s *failingBookingStore) Create(context.Context, *model.ServiceBooking) error {
	return errArtificial
}

var errArtificial = errors.New("storage unavailable")

// fakeSessionRevoker records revoked token ids in memory. It stands in
// for the Redis session store on both sides: the logout handler writes
// through Revoke and the session middleware reads through IsRevoked.
type fakeSessionRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (s *fakeSessionRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[jti] = true
	return nil
}

func (s *fakeSessionRevoker) IsRevoked(_ context.Context, jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti]
}

// testApp wires the handlers and session middleware onto a real Echo
// instance with the same route table as the router package, backed by
// the fakes.
type testApp struct {
	e        *echo.Echo
	users    *fakeUserStore
	cars     *fakeCarStore
	bookings *fakeBookingStore
	sessions *fakeSessionRevoker
}

// testAppOpts lets a test swap a store for a failing variant; nil
// fields keep the default fakes.
type testAppOpts struct {
	cars     CarStore
	bookings BookingStore
}

func newTestApp() *testApp { return newTestAppOpt(testAppOpts{}) }

func newTestAppOpt(opts testAppOpts) *testApp {
	cfg := config.Config{
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		RememberTTLDays: 30,
		BcryptCost:      bcrypt.MinCost,
	}
	users := newFakeUserStore()
	cars := newFakeCarStore()
	bookings := newFakeBookingStore()
	sessions := &fakeSessionRevoker{}

	carStore := CarStore(cars)
	if opts.cars != nil {
		carStore = opts.cars
	}
	bookingStore := BookingStore(bookings)
	if opts.bookings != nil {
		bookingStore = opts.bookings
	}

	authH := NewAuthHandler(cfg, users, sessions)
	carH := NewCarHandler(carStore)
	bookingH := NewBookingHandler(carStore, bookingStore)
	bookingH.PublishEvents = false

	session := middleware.RequireSession(cfg.SessionSecret, sessions)

	e := echo.New()
	e.GET("/sign_up", authH.SignUpForm)
	e.POST("/sign_up", authH.SignUp)
	e.GET("/login", authH.LoginForm)
	e.POST("/login", authH.Login)
	e.GET("/logout", authH.Logout, session)
	e.GET("/add_car", carH.AddCarForm, session)
	e.POST("/add_car", carH.AddCar, session)
	e.GET("/ev_service_booking", bookingH.BookingForm, session)
	e.POST("/ev_service_booking", bookingH.CreateBooking, session)
	e.GET("/car_service_history", bookingH.ServiceHistory, session)

	return &testApp{e: e, users: users, cars: cars, bookings: bookings, sessions: sessions}
}

func (a *testApp) request(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user through the HTTP surface and returns the
// session cookie issued with the account.
func (a *testApp) signUp(name, email, password string) *http.Cookie {
	rec := a.request(http.MethodPost, "/sign_up", url.Values{
		"name": {name}, "email": {email}, "phone": {"0123456"},
		"address": {"1 Main St"}, "gender": {"Other"},
		"password": {password}, "confirm": {password},
	}, nil)
	return sessionCookie(rec)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// flashNotices decodes the flash cookie staged on a response.
func flashNotices(rec *httptest.ResponseRecorder) []flash.Notice {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != "af_flash" || ck.Value == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
		if err != nil {
			return nil
		}
		var notices []flash.Notice
		if err := json.Unmarshal(raw, &notices); err != nil {
			return nil
		}
		return notices
	}
	return nil
}
