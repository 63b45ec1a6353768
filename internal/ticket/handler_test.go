// AngelaMos | 2026
// handler_test.go

package ticket_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/middleware"
	"github.com/angelamos/repairdesk/internal/ticket"
)

// authAs stands in for the JWT authenticator and plants the user id the
// way the real middleware does.
func authAs(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(
				r.Context(),
				middleware.UserIDKey,
				userID,
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTicketRouter(db *fakeDB, userID string) http.Handler {
	router := chi.NewRouter()
	ticket.NewHandler(newService(db)).RegisterRoutes(router, authAs(userID))
	return router
}

func TestHandlerList_OwnTenant(t *testing.T) {
	router := newTicketRouter(provisioned(), "owner")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tickets", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestHandlerList_CrossTenantReturns403Body(t *testing.T) {
	router := newTicketRouter(provisioned(), "outsider")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet,
		"/tickets?user_id=owner",
		nil,
	))

	// A denial is an explicit 403, never an empty 200 list.
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestHandlerCreate_RequiresCustomerName(t *testing.T) {
	router := newTicketRouter(provisioned(), "owner")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost,
		"/tickets",
		strings.NewReader(`{"brand":"Samsung"}`),
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCreate_InvalidJSON(t *testing.T) {
	router := newTicketRouter(provisioned(), "owner")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost,
		"/tickets",
		strings.NewReader(`{not json`),
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdateStatus_UnknownStatus(t *testing.T) {
	router := newTicketRouter(provisioned(), "owner")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPut,
		"/tickets/t-1/status",
		strings.NewReader(`{"status":"exploded"}`),
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
