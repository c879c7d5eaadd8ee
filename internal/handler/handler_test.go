package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventtix/eventtix/internal/auth"
	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/repository/memory"
	"github.com/eventtix/eventtix/internal/service"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := auth.NewTokenManager("handler-test-secret", time.Hour)
	require.NoError(t, err)

	users := memory.NewUserRepository()
	events := memory.NewEventRepository()
	tickets := memory.NewTicketRepository()

	userSvc := service.NewUserService(users)
	eventSvc := service.NewEventService(events, nil)
	ticketSvc := service.NewTicketService(tickets, events, users, nil)

	return NewRouter(
		NewAuthHandler(userSvc, tokens),
		NewEventHandler(eventSvc),
		NewTicketHandler(ticketSvc),
		tokens,
	)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func register(t *testing.T, router http.Handler, name, email, password string) model.User {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/register", model.RegisterRequest{
		Name: name, Email: email, Password: password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[model.User](t, rec)
}

func login(t *testing.T, router http.Handler, email, password string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/login", model.LoginRequest{
		Email: email, Password: password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func createEvent(t *testing.T, router http.Handler, cookie *http.Cookie, maxParticipants int) model.Event {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/createEvent", model.CreateEventRequest{
		Title:           "Launch Party",
		Description:     "Annual launch",
		OrganizedBy:     "Acme",
		EventDate:       "2027-06-01",
		EventTime:       "18:00",
		Location:        "Main Hall",
		MaxParticipants: maxParticipants,
		TicketPrice:     25.99,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[model.Event](t, rec)
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	user := register(t, router, "A", "a@x.com", "p1")
	require.Equal(t, "a@x.com", user.Email)
	require.NotEmpty(t, user.ID)

	// Duplicate email conflicts.
	rec := doJSON(t, router, http.MethodPost, "/register", model.RegisterRequest{
		Name: "A2", Email: "a@x.com", Password: "p2",
	}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Missing fields are a validation error.
	rec = doJSON(t, router, http.MethodPost, "/register", model.RegisterRequest{Name: "Incomplete"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password is unauthorized with an opaque message.
	rec = doJSON(t, router, http.MethodPost, "/login", model.LoginRequest{Email: "a@x.com", Password: "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody[model.ErrorResponse](t, rec).Error)

	// Correct credentials set the HTTP-only session cookie.
	rec = doJSON(t, router, http.MethodPost, "/login", model.LoginRequest{Email: "a@x.com", Password: "p1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.True(t, cookie.HttpOnly)
	require.NotEmpty(t, cookie.Value)
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "A", "a@x.com", "p1")
	cookie := login(t, router, "a@x.com", "p1")

	rec := doJSON(t, router, http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	require.Empty(t, cleared.Value)
	require.True(t, cleared.Expires.Before(time.Now()))
}

func TestProfileRequiresSession(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "A", "a@x.com", "p1")

	rec := doJSON(t, router, http.MethodGet, "/profile", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/profile", nil,
		&http.Cookie{Name: auth.CookieName, Value: "forged.token.value"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := login(t, router, "a@x.com", "p1")
	rec = doJSON(t, router, http.MethodGet, "/profile", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@x.com", decodeBody[model.User](t, rec).Email)
}

func TestTicketPurchaseScenario(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "A", "a@x.com", "p1")
	cookie := login(t, router, "a@x.com", "p1")
	event := createEvent(t, router, cookie, 100)
	require.Equal(t, 100, event.AvailableTickets)

	// No session: 401.
	rec := doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: event.ID, Quantity: 1}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown event: 404.
	rec = doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: "00000000-0000-0000-0000-000000000000", Quantity: 1}, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// More than the remaining availability: 400, counts untouched.
	rec = doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: event.ID, Quantity: 101}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[model.Event](t, rec)
	require.Equal(t, 100, snap.AvailableTickets)
	require.Equal(t, 0, snap.CurrentParticipants)

	// Valid purchase.
	rec = doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: event.ID, Quantity: 2}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	ticket := decodeBody[model.Ticket](t, rec)
	require.Equal(t, 2, ticket.Quantity)
	require.Equal(t, "Launch Party", ticket.Details.EventName)

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID, nil, nil)
	snap = decodeBody[model.Event](t, rec)
	require.Equal(t, 98, snap.AvailableTickets)
	require.Equal(t, 2, snap.CurrentParticipants)

	// Cancel restores the counts exactly.
	rec = doJSON(t, router, http.MethodDelete, "/tickets/"+ticket.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID, nil, nil)
	snap = decodeBody[model.Event](t, rec)
	require.Equal(t, 100, snap.AvailableTickets)
	require.Equal(t, 0, snap.CurrentParticipants)

	// Re-cancelling is 404.
	rec = doJSON(t, router, http.MethodDelete, "/tickets/"+ticket.ID, nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTicketAccessControl(t *testing.T) {
	router := newTestRouter(t)
	owner := register(t, router, "Owner", "owner@x.com", "p1")
	register(t, router, "Other", "other@x.com", "p2")
	ownerCookie := login(t, router, "owner@x.com", "p1")
	otherCookie := login(t, router, "other@x.com", "p2")

	event := createEvent(t, router, ownerCookie, 10)
	rec := doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: event.ID, Quantity: 1}, ownerCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	ticket := decodeBody[model.Ticket](t, rec)

	// Listing another user's tickets is forbidden.
	rec = doJSON(t, router, http.MethodGet, "/tickets/user/"+owner.ID, nil, otherCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Cancelling another user's ticket is forbidden, not 404.
	rec = doJSON(t, router, http.MethodDelete, "/tickets/"+ticket.ID, nil, otherCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The owner still sees the ticket.
	rec = doJSON(t, router, http.MethodGet, "/tickets/user/"+owner.ID, nil, ownerCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	tickets := decodeBody[[]model.Ticket](t, rec)
	require.Len(t, tickets, 1)
}

func TestCreateEventValidation(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "A", "a@x.com", "p1")
	cookie := login(t, router, "a@x.com", "p1")

	// Without a session, 401.
	rec := doJSON(t, router, http.MethodPost, "/createEvent", model.CreateEventRequest{
		Title: "X", EventDate: "2027-06-01", MaxParticipants: 10,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	for name, req := range map[string]model.CreateEventRequest{
		"missing title":     {EventDate: "2027-06-01", MaxParticipants: 10},
		"zero capacity":     {Title: "X", EventDate: "2027-06-01"},
		"bad date":          {Title: "X", EventDate: "June 1st", MaxParticipants: 10},
		"oversized tickets": {Title: "X", EventDate: "2027-06-01", MaxParticipants: 10, AvailableTickets: 11},
	} {
		rec := doJSON(t, router, http.MethodPost, "/createEvent", req, cookie)
		require.Equalf(t, http.StatusBadRequest, rec.Code, "case %q", name)
	}

	// An explicit zero means "sell every seat", same as omitting the field.
	rec = doJSON(t, router, http.MethodPost, "/createEvent", model.CreateEventRequest{
		Title: "X", EventDate: "2027-06-01", MaxParticipants: 10, AvailableTickets: 0,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	event := decodeBody[model.Event](t, rec)
	require.Equal(t, 10, event.AvailableTickets)
	require.Equal(t, 0, event.CurrentParticipants)
}

func TestCORSEchoesOriginForCredentialedRequests(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/tickets", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))

	// Same-origin requests carry no Origin header and get no CORS grants.
	req = httptest.NewRequest(http.MethodGet, "/events", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	require.Equal(t, "healthy", body["status"])
	require.NotEmpty(t, body["timestamp"])
}

func TestEventListingPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/events", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String())

	register(t, router, "A", "a@x.com", "p1")
	cookie := login(t, router, "a@x.com", "p1")
	created := createEvent(t, router, cookie, 50)

	rec = doJSON(t, router, http.MethodGet, "/events", nil, nil)
	events := decodeBody[[]model.Event](t, rec)
	require.Len(t, events, 1)
	require.Equal(t, created.ID, events[0].ID)
}

// An event published with fewer tickets for sale than seats starts with the
// difference already counted as participants; a purchase exceeding the
// sale pool fails even though the room itself could hold it.
func TestPurchaseLimitedByTicketsForSaleNotRoomSize(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "A", "a@x.com", "p1")
	cookie := login(t, router, "a@x.com", "p1")

	rec := doJSON(t, router, http.MethodPost, "/createEvent", model.CreateEventRequest{
		Title:            "Limited Sale",
		EventDate:        "2027-06-01",
		MaxParticipants:  100,
		AvailableTickets: 50,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	event := decodeBody[model.Event](t, rec)
	require.Equal(t, 50, event.AvailableTickets)
	require.Equal(t, 50, event.CurrentParticipants)

	rec = doJSON(t, router, http.MethodPost, "/tickets",
		model.PurchaseRequest{EventID: event.ID, Quantity: 51}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID, nil, nil)
	snap := decodeBody[model.Event](t, rec)
	require.Equal(t, 50, snap.AvailableTickets)
	require.Equal(t, 50, snap.CurrentParticipants)
}
