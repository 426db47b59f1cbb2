package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"choosecare-bff/internal/config"
	"choosecare-bff/internal/imagecache"
	"choosecare-bff/internal/kvstore"
	"choosecare-bff/internal/middleware"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/repository"
	"choosecare-bff/internal/service"
	"choosecare-bff/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	router   *gin.Engine
	store    *kvstore.Memory
	requests *atomic.Int32
	status   *atomic.Int32
	image    *atomic.Value
	deleted  *atomic.Int32
	bearer   string
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1", "role": role}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{requests: &atomic.Int32{}, status: &atomic.Int32{}, image: &atomic.Value{}, deleted: &atomic.Int32{}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": token(t, models.RoleSuperAdmin)})
	})
	mux.HandleFunc("GET /hospitals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"h1","name":"City General Hospital","city":"Pune","picture":"https://cdn/h1.png"},{"id":"h2","name":"Lotus Clinic","city":"Goa"}]}`)
	})
	mux.HandleFunc("GET /hospitals/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "h1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Hospital not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"id":1,"name":"City General Hospital","city":"Pune"}}`)
	})
	mux.HandleFunc("DELETE /hospitals/{id}", func(w http.ResponseWriter, r *http.Request) {
		app.deleted.Add(1)
		_, _ = io.WriteString(w, `{"message":"deleted"}`)
	})
	mux.HandleFunc("POST /hospitals", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if f, fh, err := r.FormFile("image"); err == nil {
			b, _ := io.ReadAll(f)
			app.image.Store(fh.Filename + ":" + string(b))
		}
		var h models.Hospital
		_ = json.Unmarshal([]byte(r.FormValue("data")), &h)
		h.ID = "h9"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(h)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.requests.Add(1)
		if s := app.status.Load(); s != 0 {
			w.WriteHeader(int(s))
			_, _ = io.WriteString(w, `{"message":"nope"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := upstream.NewWithHTTPClient(srv.URL, srv.Client(), zerolog.Nop())
	app.store = kvstore.NewMemory()
	cache := imagecache.New(app.store, zerolog.Nop())
	auth := service.NewAuthService(client, repository.NewTokenRepo(app.store), "", zerolog.Nop())
	directory := service.NewDirectoryService(client, cache, zerolog.Nop())

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:8081"}}}
	app.router = NewRouter(cfg, Services{
		Auth:         auth,
		Directory:    directory,
		Admin:        service.NewAdminService(client, cache, auth, zerolog.Nop()),
		Appointments: service.NewAppointmentService(client, directory, auth, zerolog.Nop()),
	}, zerolog.Nop())
	return app
}

func (a *testApp) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	if req.Header.Get(middleware.DeviceHeader) == "" {
		req.Header.Set(middleware.DeviceHeader, "tab-1")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

// login signs tab-1 in and keeps the returned token for authed.
func (a *testApp) login(t *testing.T) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"root@x.in","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	code, env := a.do(t, req)
	if code != http.StatusOK {
		t.Fatalf("login failed: %d %s", code, env.Error)
	}
	var s models.Session
	_ = json.Unmarshal(env.Data, &s)
	if s.Home != service.HomeSuperAdmin || s.Token == "" {
		t.Fatalf("expected super admin home, got %+v", s)
	}
	a.bearer = s.Token
}

func (a *testApp) authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+a.bearer)
	return req
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	code, env := app.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	if code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected health response %d %+v", code, env)
	}
}

func TestPublicHospitalsSearch(t *testing.T) {
	app := newTestApp(t)
	code, env := app.do(t, httptest.NewRequest(http.MethodGet, "/hospitals?search=goa", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var hospitals []models.Hospital
	_ = json.Unmarshal(env.Data, &hospitals)
	if len(hospitals) != 1 || hospitals[0].ID != "h2" {
		t.Fatalf("unexpected hospitals %+v", hospitals)
	}
}

func TestFetchFailureReturnsEmptyList(t *testing.T) {
	app := newTestApp(t)
	app.status.Store(http.StatusInternalServerError)

	code, env := app.do(t, httptest.NewRequest(http.MethodGet, "/hospitals", nil))
	if code != http.StatusBadGateway || env.Success {
		t.Fatalf("expected 502, got %d", code)
	}
	if string(env.Data) != "[]" {
		t.Fatalf("expected empty list, got %s", env.Data)
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	code, _ := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/hospitals", nil))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAdminListWithBearer(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	code, env := app.do(t, app.authed(httptest.NewRequest(http.MethodGet, "/admin/hospitals", nil)))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", code, env.Error)
	}
	var st struct {
		Mode  string            `json:"mode"`
		Items []models.Hospital `json:"items"`
	}
	_ = json.Unmarshal(env.Data, &st)
	if st.Mode != "viewing" || len(st.Items) != 2 {
		t.Fatalf("unexpected screen state %s", env.Data)
	}
	v, err := app.store.Get(context.Background(), imagecache.Key(models.EntityHospital, "h1"))
	if err != nil || v != "https://cdn/h1.png" {
		t.Fatalf("expected h1 picture cached, got %q %v", v, err)
	}
}

func TestCreateHospitalValidation(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	before := app.requests.Load()

	req := httptest.NewRequest(http.MethodPost, "/admin/hospitals", strings.NewReader(`{"name":"Lotus","numberOfBeds":12}`))
	req.Header.Set("Content-Type", "application/json")
	code, env := app.do(t, app.authed(req))

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(env.Error, "address") || !strings.Contains(env.Error, "contactNumber") {
		t.Fatalf("error should name the missing fields: %q", env.Error)
	}
	if app.requests.Load() != before {
		t.Fatal("validation failure must not reach upstream")
	}
}

func TestCreateHospitalMultipart(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("data", `{"name":"Lotus Clinic","address":"1 Beach Rd","city":"Goa","contactNumber":"0832","rating":"4.5"}`)
	part, _ := mw.CreateFormFile("image", "front.jpg")
	_, _ = part.Write([]byte("jpegbytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/hospitals", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	code, env := app.do(t, app.authed(req))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", code, env.Error)
	}
	if got, _ := app.image.Load().(string); got != "front.jpg:jpegbytes" {
		t.Fatalf("image not forwarded, got %q", got)
	}
	var st struct {
		Items []models.Hospital `json:"items"`
	}
	_ = json.Unmarshal(env.Data, &st)
	if len(st.Items) != 1 || st.Items[0].ID != "h9" || st.Items[0].Rating != 4.5 {
		t.Fatalf("unexpected items %+v", st.Items)
	}
}

func TestUnauthorizedUpstreamLogsOut(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.status.Store(http.StatusUnauthorized)

	code, _ := app.do(t, app.authed(httptest.NewRequest(http.MethodGet, "/admin/hospitals", nil)))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if _, err := app.store.Get(context.Background(), "device:tab-1:accessToken"); err == nil {
		t.Fatal("stored token should be removed")
	}
}

func TestUnknownDoctorAction(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/doctors/doc1/actions", strings.NewReader(`{"action":"call"}`))
	req.Header.Set("Content-Type", "application/json")
	code, env := app.do(t, req)
	if code != http.StatusBadRequest || !strings.Contains(env.Error, "call") {
		t.Fatalf("expected 400 naming the action, got %d %q", code, env.Error)
	}
}

func TestUnknownScreen(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	code, _ := app.do(t, app.authed(httptest.NewRequest(http.MethodGet, "/admin/screens/wards", nil)))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestSavedLoginDoesNotAuthorizeOtherCallers(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	// Same device id, no credentials.
	code, _ := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/hospitals", nil))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a caller naming a logged-in device, got %d", code)
	}

	// Blank device id, no credentials.
	for _, device := range []string{" ", "anonymous"} {
		req := httptest.NewRequest(http.MethodDelete, "/admin/hospitals/h1", nil)
		req.Header.Set(middleware.DeviceHeader, device)
		code, _ = app.do(t, req)
		if code != http.StatusUnauthorized {
			t.Fatalf("device %q: expected 401, got %d", device, code)
		}
	}
	if app.deleted.Load() != 0 {
		t.Fatal("unauthenticated delete reached upstream")
	}
}

func TestLoginWithoutDeviceIsNotStored(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"root@x.in","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DeviceHeader, " ")
	if code, env := app.do(t, req); code != http.StatusOK {
		t.Fatalf("login failed: %d %s", code, env.Error)
	}
	for _, device := range []string{"", " ", "anonymous"} {
		if _, err := app.store.Get(context.Background(), "device:"+device+":accessToken"); err == nil {
			t.Fatalf("token stored for device %q", device)
		}
	}
}

func TestAdminScreensNeedDevice(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	req := app.authed(httptest.NewRequest(http.MethodPost, "/admin/screens/hospitals/open", nil))
	req.Header.Set(middleware.DeviceHeader, " ")
	code, _ := app.do(t, req)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a device id, got %d", code)
	}
}

func TestLogoutKeepsOtherSessions(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	ctx := context.Background()

	code, _ := app.do(t, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for logout without a token, got %d", code)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RolePatient))
	if code, _ := app.do(t, req); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, err := app.store.Get(ctx, "device:tab-1:accessToken"); err != nil {
		t.Fatal("logout with another token must keep tab-1 signed in")
	}

	if code, _ := app.do(t, app.authed(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, err := app.store.Get(ctx, "device:tab-1:accessToken"); err == nil {
		t.Fatal("own logout should remove the stored token")
	}
}

func TestHospitalDetails(t *testing.T) {
	app := newTestApp(t)
	app.store.Set(context.Background(), imagecache.Key(models.EntityHospital, "1"), "https://cdn/h1.png")

	code, env := app.do(t, httptest.NewRequest(http.MethodGet, "/hospitals/h1", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", code, env.Error)
	}
	var h models.Hospital
	_ = json.Unmarshal(env.Data, &h)
	if h.ID != "1" || h.Picture == nil || *h.Picture != "https://cdn/h1.png" {
		t.Fatalf("unexpected hospital %s", env.Data)
	}

	if code, _ := app.do(t, httptest.NewRequest(http.MethodGet, "/hospitals/nope", nil)); code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a failed fetch, got %d", code)
	}
}
