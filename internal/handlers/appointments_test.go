package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"clinic-appointment-server/internal/config"
	"clinic-appointment-server/internal/handlers"
	"clinic-appointment-server/internal/middleware"
	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
	"clinic-appointment-server/internal/store"
	"clinic-appointment-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	mem     *store.MemoryStore
	cfg     *config.Config
	doctor  models.User
	patient models.User
}

// newTestEnv wires the booking routes exactly as the server does, over the
// in-memory store, with the real cookie middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:         "test_secret",
		JWTExpirationDays: 1,
		Environment:       "development",
	}

	mem := store.NewMemoryStore()
	svc := scheduling.NewService(mem, mem, mem)
	shiftHandler := handlers.NewShiftHandler(svc)
	appointmentHandler := handlers.NewAppointmentHandler(svc)

	patientAuth := middleware.RequireRole(cfg, models.RolePatient)
	doctorAuth := middleware.RequireRole(cfg, models.RoleDoctor)

	router := gin.New()
	appointments := router.Group("/api/v1/appointments")
	{
		appointments.GET("/departments", shiftHandler.GetDepartments)
		appointments.GET("/shifts/available", shiftHandler.GetAvailableShifts)
		appointments.POST("/shifts", doctorAuth, shiftHandler.CreateShift)
		appointments.GET("/shifts/doctor", doctorAuth, shiftHandler.GetDoctorShifts)
		appointments.PUT("/shifts/:id", doctorAuth, shiftHandler.UpdateShift)
		appointments.DELETE("/shifts/:id", doctorAuth, shiftHandler.DeleteShift)
		appointments.POST("/book", patientAuth, appointmentHandler.BookAppointment)
		appointments.GET("/patient", patientAuth, appointmentHandler.GetPatientAppointments)
		appointments.PUT("/cancel/:id", patientAuth, appointmentHandler.CancelAppointment)
		appointments.PUT("/reschedule/:id", patientAuth, appointmentHandler.RescheduleAppointment)
		appointments.GET("/all", doctorAuth, appointmentHandler.GetDoctorAppointments)
		appointments.PUT("/status/:id", doctorAuth, appointmentHandler.UpdateAppointmentStatus)
		appointments.DELETE("/:id", doctorAuth, appointmentHandler.DeleteAppointment)
	}

	doctor := mem.AddUser(models.User{
		FirstName:  "Asha",
		LastName:   "Perera",
		Email:      "asha@clinic.test",
		Role:       models.RoleDoctor,
		Gender:     models.GenderFemale,
		Department: "Cardiology",
	})
	patient := mem.AddUser(models.User{
		FirstName: "Nimal",
		LastName:  "Silva",
		Email:     "nimal@clinic.test",
		Role:      models.RolePatient,
		Gender:    models.GenderMale,
	})

	return &testEnv{router: router, mem: mem, cfg: cfg, doctor: doctor, patient: patient}
}

func (e *testEnv) cookieFor(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateToken(&user, e.cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return &http.Cookie{Name: utils.CookieNameForRole(user.Role), Value: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

type apiResponse struct {
	Success      bool                     `json:"success"`
	Message      string                   `json:"message"`
	Shift        *models.Shift            `json:"shift"`
	Shifts       []models.ShiftWithDoctor `json:"shifts"`
	Appointment  *models.Appointment      `json:"appointment"`
	Appointments []models.Appointment     `json:"appointments"`
	Departments  []string                 `json:"departments"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

func (e *testEnv) createShift(t *testing.T, date, start, end string) *models.Shift {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/v1/appointments/shifts", gin.H{
		"date":      date,
		"startTime": start,
		"endTime":   end,
	}, e.cookieFor(t, e.doctor))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create shift: status %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode(t, rr)
	if resp.Shift == nil {
		t.Fatal("create shift: no shift in response")
	}
	return resp.Shift
}

func bookBody(shiftID string) gin.H {
	return gin.H{
		"shiftId":       shiftID,
		"firstName":     "Nimal",
		"lastName":      "Silva",
		"email":         "nimal@clinic.test",
		"phone":         "0771234567",
		"nic":           "200012345678",
		"dob":           "2000-01-15",
		"patientGender": "Male",
		"address":       "12 Galle Road, Colombo",
		"reason":        "Chest pain follow-up",
	}
}

func TestGetAvailableShiftsMissingParams(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/appointments/shifts/available",
		"/api/v1/appointments/shifts/available?department=Cardiology",
		"/api/v1/appointments/shifts/available?date=2030-06-01",
	} {
		rr := e.do(t, http.MethodGet, path, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("GET %s: status %d, want 400", path, rr.Code)
		}
		if resp := decode(t, rr); resp.Success {
			t.Errorf("GET %s: success = true on error", path)
		}
	}
}

// The full lifecycle from the booking surface: create shift, book it,
// watch it disappear from availability, cancel, watch it come back.
func TestBookingLifecycle(t *testing.T) {
	e := newTestEnv(t)
	shift := e.createShift(t, "2030-06-01", "09:00", "09:30")

	available := "/api/v1/appointments/shifts/available?department=Cardiology&date=2030-06-01"

	rr := e.do(t, http.MethodGet, available, nil)
	if resp := decode(t, rr); len(resp.Shifts) != 1 {
		t.Fatalf("expected 1 available shift, got %d", len(resp.Shifts))
	}

	rr = e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID), e.cookieFor(t, e.patient))
	if rr.Code != http.StatusCreated {
		t.Fatalf("book: status %d, body %s", rr.Code, rr.Body.String())
	}
	booked := decode(t, rr)
	if booked.Appointment == nil || booked.Appointment.Status != models.StatusBooked {
		t.Fatalf("book: appointment = %+v", booked.Appointment)
	}
	if booked.Appointment.Doctor.FirstName != "Asha" {
		t.Errorf("doctor snapshot = %+v", booked.Appointment.Doctor)
	}

	if resp := decode(t, e.do(t, http.MethodGet, available, nil)); len(resp.Shifts) != 0 {
		t.Fatal("booked shift still listed as available")
	}

	// A second booking of the same shift is rejected.
	rr = e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID), e.cookieFor(t, e.patient))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("double book: status %d, want 400", rr.Code)
	}

	rr = e.do(t, http.MethodPut, "/api/v1/appointments/cancel/"+booked.Appointment.ID, nil, e.cookieFor(t, e.patient))
	if rr.Code != http.StatusOK {
		t.Fatalf("cancel: status %d, body %s", rr.Code, rr.Body.String())
	}

	if resp := decode(t, e.do(t, http.MethodGet, available, nil)); len(resp.Shifts) != 1 {
		t.Fatal("cancelled shift did not reappear in availability")
	}
}

func TestBookValidationRejectedBeforePersistence(t *testing.T) {
	e := newTestEnv(t)
	shift := e.createShift(t, "2030-06-01", "09:00", "09:30")

	invalid := []struct {
		name  string
		patch func(gin.H)
	}{
		{"bad phone", func(b gin.H) { b["phone"] = "12345" }},
		{"bad email", func(b gin.H) { b["email"] = "not-an-email" }},
		{"bad nic", func(b gin.H) { b["nic"] = "1234" }},
		{"missing reason", func(b gin.H) { delete(b, "reason") }},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			body := bookBody(shift.ID)
			tt.patch(body)
			rr := e.do(t, http.MethodPost, "/api/v1/appointments/book", body, e.cookieFor(t, e.patient))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400 (body %s)", rr.Code, rr.Body.String())
			}
		})
	}

	// Nothing was persisted and the shift is untouched.
	rr := e.do(t, http.MethodGet, "/api/v1/appointments/patient", nil, e.cookieFor(t, e.patient))
	if resp := decode(t, rr); len(resp.Appointments) != 0 {
		t.Errorf("appointments persisted by rejected bookings: %d", len(resp.Appointments))
	}
	rr = e.do(t, http.MethodGet, "/api/v1/appointments/shifts/available?department=Cardiology&date=2030-06-01", nil)
	if resp := decode(t, rr); len(resp.Shifts) != 1 {
		t.Error("shift availability mutated by rejected bookings")
	}
}

func TestBookRequiresPatientCookie(t *testing.T) {
	e := newTestEnv(t)
	shift := e.createShift(t, "2030-06-01", "09:00", "09:30")

	// No cookie at all.
	if rr := e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID)); rr.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: status %d, want 401", rr.Code)
	}

	// A doctor cookie does not open the patient surface.
	if rr := e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID), e.cookieFor(t, e.doctor)); rr.Code != http.StatusUnauthorized {
		t.Errorf("doctor cookie: status %d, want 401", rr.Code)
	}
}

func TestBookMissingShift(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody("no-such-shift"), e.cookieFor(t, e.patient))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
}

func TestRescheduleEndpoint(t *testing.T) {
	e := newTestEnv(t)
	oldShift := e.createShift(t, "2030-06-01", "09:00", "09:30")
	newShift := e.createShift(t, "2030-06-02", "14:00", "14:30")

	booked := decode(t, e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(oldShift.ID), e.cookieFor(t, e.patient)))

	rr := e.do(t, http.MethodPut, "/api/v1/appointments/reschedule/"+booked.Appointment.ID,
		gin.H{"newShiftId": newShift.ID}, e.cookieFor(t, e.patient))
	if rr.Code != http.StatusOK {
		t.Fatalf("reschedule: status %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode(t, rr)
	if resp.Appointment.Status != models.StatusRescheduled {
		t.Errorf("status = %s, want Rescheduled", resp.Appointment.Status)
	}
	if resp.Appointment.AppointmentDate != "2030-06-02" || resp.Appointment.AppointmentTime != "14:00" {
		t.Errorf("appointment at %s %s, want 2030-06-02 14:00",
			resp.Appointment.AppointmentDate, resp.Appointment.AppointmentTime)
	}

	// Old slot reopens, new one is taken.
	old := decode(t, e.do(t, http.MethodGet, "/api/v1/appointments/shifts/available?department=Cardiology&date=2030-06-01", nil))
	if len(old.Shifts) != 1 {
		t.Error("old shift not released")
	}
	moved := decode(t, e.do(t, http.MethodGet, "/api/v1/appointments/shifts/available?department=Cardiology&date=2030-06-02", nil))
	if len(moved.Shifts) != 0 {
		t.Error("new shift still available")
	}
}

func TestDoctorStatusUpdateReleasesShift(t *testing.T) {
	e := newTestEnv(t)
	shift := e.createShift(t, "2030-06-01", "09:00", "09:30")

	booked := decode(t, e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID), e.cookieFor(t, e.patient)))

	rr := e.do(t, http.MethodPut, "/api/v1/appointments/status/"+booked.Appointment.ID,
		gin.H{"status": "Cancelled"}, e.cookieFor(t, e.doctor))
	if rr.Code != http.StatusOK {
		t.Fatalf("status update: status %d, body %s", rr.Code, rr.Body.String())
	}

	resp := decode(t, e.do(t, http.MethodGet, "/api/v1/appointments/shifts/available?department=Cardiology&date=2030-06-01", nil))
	if len(resp.Shifts) != 1 {
		t.Error("doctor-cancelled shift not released")
	}
}

func TestDeleteBookedShiftConflict(t *testing.T) {
	e := newTestEnv(t)
	shift := e.createShift(t, "2030-06-01", "09:00", "09:30")

	e.do(t, http.MethodPost, "/api/v1/appointments/book", bookBody(shift.ID), e.cookieFor(t, e.patient))

	rr := e.do(t, http.MethodDelete, "/api/v1/appointments/shifts/"+shift.ID, nil, e.cookieFor(t, e.doctor))
	if rr.Code != http.StatusConflict {
		t.Fatalf("delete booked shift: status %d, want 409 (body %s)", rr.Code, rr.Body.String())
	}
}

func TestDepartmentsListing(t *testing.T) {
	e := newTestEnv(t)

	resp := decode(t, e.do(t, http.MethodGet, "/api/v1/appointments/departments", nil))
	if len(resp.Departments) != 0 {
		t.Fatalf("departments before any shift = %v", resp.Departments)
	}

	e.createShift(t, "2030-06-01", "09:00", "09:30")

	resp = decode(t, e.do(t, http.MethodGet, "/api/v1/appointments/departments", nil))
	if len(resp.Departments) != 1 || resp.Departments[0] != "Cardiology" {
		t.Fatalf("departments = %v, want [Cardiology]", resp.Departments)
	}
}
