package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mark3labs/onboard/internal/account"
	"github.com/mark3labs/onboard/internal/signup"
)

func newTestRouter() (http.Handler, *Store) {
	store := NewStore(bcrypt.MinCost)
	return NewRouter(store, ""), store
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"email":"ada@example.com","password":"password123","company_name":"Acme","first_name":"Ada","team_size":51}`

func TestRegister_Created(t *testing.T) {
	h, store := newTestRouter()

	rec := post(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	user := resp["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "Ada", user["first_name"])
	assert.NotContains(t, user, "PasswordHash")
	assert.True(t, strings.HasPrefix(resp["token"].(string), "onb_"))
	assert.Equal(t, "Acme", resp["company"].(map[string]any)["name"])

	assert.Equal(t, 1, store.Len())
	u, ok := store.Authenticate("ADA@example.com", "password123")
	require.True(t, ok)
	c, ok := store.Company(u.CompanyID)
	require.True(t, ok)
	require.NotNil(t, c.Profile.TeamSize)
	assert.Equal(t, 51, *c.Profile.TeamSize)

	_, ok = store.Authenticate("ada@example.com", "wrong")
	assert.False(t, ok)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestRouter()

	require.Equal(t, http.StatusCreated, post(t, h, validBody).Code)

	rec := post(t, h, strings.Replace(validBody, "ada@", "ADA@", 1))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"conflict","message":"Email already exists"}`, rec.Body.String())
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{`, "Request body must be valid JSON"},
		{"missing email", `{"password":"x","company_name":"Acme"}`, "Email is required"},
		{"bad email", `{"email":"nope","password":"x","company_name":"Acme"}`, "Please enter a valid email address"},
		{"missing password", `{"email":"a@b.co","company_name":"Acme"}`, "Password is required"},
		{"missing company", `{"email":"a@b.co","password":"x"}`, "Company name is required"},
		{
			"password too long for bcrypt",
			`{"email":"a@b.co","password":"` + strings.Repeat("a", 73) + `","company_name":"Acme"}`,
			"Password must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter()
			rec := post(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Message)
		})
	}
}

func TestRegister_MaxLengthPasswordAccepted(t *testing.T) {
	h, store := newTestRouter()
	body := `{"email":"a@b.co","password":"` + strings.Repeat("a", 72) + `","company_name":"Acme"}`

	rec := post(t, h, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, store.Len())
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRecovery(t *testing.T) {
	h := RequestID(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestCustomRegisterPath(t *testing.T) {
	h := NewRouter(NewStore(bcrypt.MinCost), "/v2/signup")
	req := httptest.NewRequest(http.MethodPost, "/v2/signup", bytes.NewBufferString(validBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

// The wizard's HTTP client and this server agree on the wire format.
func TestServer_WithAccountClient(t *testing.T) {
	srv := NewServer(NewStore(bcrypt.MinCost), "")
	require.NoError(t, srv.Start("127.0.0.1:0"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	client := account.NewClient(srv.URL() + "/api/auth/register")
	p := signup.BuildPayload(&signup.Aggregate{
		Email:       "grace@example.com",
		Password:    "password123",
		CompanyName: "Navy",
	})

	acct, err := client.Register(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", acct.Email)
	assert.NotEmpty(t, acct.UserID)
	assert.NotEmpty(t, acct.CompanyID)

	_, err = client.Register(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, "Email already exists", signup.ErrorMessage(err))
}
