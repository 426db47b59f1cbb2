package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"choosecare-bff/internal/imagecache"
	"choosecare-bff/internal/kvstore"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/repository"
	"choosecare-bff/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// fakeUpstream is an in-memory stand-in for the ChooseCare REST API.
type fakeUpstream struct {
	t        *testing.T
	mu       sync.Mutex
	requests atomic.Int32

	hospitals    []models.Hospital
	doctors      []models.Doctor
	appointments []models.Appointment
	lastHospital models.Hospital
	nextID       int

	status int // forced status for every request when non-zero
	block  chan struct{}
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *upstream.Client) {
	f := &fakeUpstream{t: t}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", f.login)
	mux.HandleFunc("GET /hospitals", f.listHospitals)
	mux.HandleFunc("POST /hospitals", f.createHospital)
	mux.HandleFunc("GET /hospitals/{id}", f.getHospital)
	mux.HandleFunc("PUT /hospitals/{id}", f.updateHospital)
	mux.HandleFunc("DELETE /hospitals/{id}", f.deleteHospital)
	mux.HandleFunc("GET /departments/{id}/doctors", f.listDoctors)
	mux.HandleFunc("GET /doctors/{id}", f.getDoctor)
	mux.HandleFunc("DELETE /doctors/{id}", f.deleteDoctor)
	mux.HandleFunc("GET /appointments", f.listAppointments)
	mux.HandleFunc("POST /appointments", f.bookAppointment)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if f.block != nil {
			<-f.block
		}
		f.mu.Lock()
		status := f.status
		f.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message":"forced failure"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, upstream.NewWithHTTPClient(srv.URL, &http.Client{Timeout: 5 * time.Second}, zerolog.Nop())
}

func (f *fakeUpstream) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeUpstream) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	role := map[string]string{
		"reception@x.in": models.RoleReceptionist,
		"admin@x.in":     models.RoleHospitalAdmin,
		"root@x.in":      models.RoleSuperAdmin,
		"odd@x.in":       "janitor",
	}[body.Email]
	f.writeJSON(w, http.StatusOK, map[string]string{"token": testToken(f.t, role)})
}

func (f *fakeUpstream) listHospitals(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeJSON(w, http.StatusOK, f.hospitals)
}

func (f *fakeUpstream) createHospital(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var h models.Hospital
	_ = json.Unmarshal([]byte(r.FormValue("data")), &h)
	f.mu.Lock()
	f.lastHospital = h
	f.nextID++
	h.ID = models.ID(fmt.Sprintf("h-new-%d", f.nextID))
	f.mu.Unlock()
	f.writeJSON(w, http.StatusCreated, h)
}

func (f *fakeUpstream) getHospital(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hospitals {
		if string(h.ID) == r.PathValue("id") {
			f.writeJSON(w, http.StatusOK, h)
			return
		}
	}
	f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Hospital not found"})
}

func (f *fakeUpstream) updateHospital(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var h models.Hospital
	_ = json.Unmarshal([]byte(r.FormValue("data")), &h)
	f.writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (f *fakeUpstream) deleteHospital(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeUpstream) listDoctors(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeJSON(w, http.StatusOK, f.doctors)
}

func (f *fakeUpstream) getDoctor(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.doctors {
		if string(d.ID) == r.PathValue("id") {
			f.writeJSON(w, http.StatusOK, d)
			return
		}
	}
	f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Doctor not found"})
}

func (f *fakeUpstream) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	f.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (f *fakeUpstream) listAppointments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.appointments {
		if id := r.URL.Query().Get("doctorId"); id != "" && string(a.DoctorID) != id {
			continue
		}
		out = append(out, a)
	}
	f.writeJSON(w, http.StatusOK, out)
}

func (f *fakeUpstream) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var a models.Appointment
	_ = json.NewDecoder(r.Body).Decode(&a)
	a.ID = "apt-1"
	f.writeJSON(w, http.StatusCreated, a)
}

func (f *fakeUpstream) setStatus(status int) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func testToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1", "role": role}).SignedString([]byte("upstream"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type fixture struct {
	api         *fakeUpstream
	store       *kvstore.Memory
	cache       *imagecache.Cache
	auth        *AuthService
	directory   *DirectoryService
	admin       *AdminService
	appointment *AppointmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api, client := newFakeUpstream(t)
	store := kvstore.NewMemory()
	cache := imagecache.New(store, zerolog.Nop())
	auth := NewAuthService(client, repository.NewTokenRepo(store), "", zerolog.Nop())
	directory := NewDirectoryService(client, cache, zerolog.Nop())
	return &fixture{
		api:         api,
		store:       store,
		cache:       cache,
		auth:        auth,
		directory:   directory,
		admin:       NewAdminService(client, cache, auth, zerolog.Nop()),
		appointment: NewAppointmentService(client, directory, auth, zerolog.Nop()),
	}
}

func strp(s string) *string { return &s }
