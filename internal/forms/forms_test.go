package forms

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestIntAndFloatCoercion(t *testing.T) {
	cases := []struct {
		in    string
		wantI int
		wantF float64
	}{
		{"12", 12, 12},
		{" 7 ", 7, 7},
		{"4.5", 4, 4.5},
		{"abc", 0, 0},
		{"", 0, 0},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
		{"-3", -3, -3},
		{"2.5e3", 2500, 2500},
		{"99999999999999999999", 0, 1e20},
		{"1e19", 0, 1e19},
		{"-1e19", 0, -1e19},
	}
	for _, tc := range cases {
		if got := Int(tc.in); got != tc.wantI {
			t.Errorf("Int(%q) = %d, want %d", tc.in, got, tc.wantI)
		}
		if got := Float(tc.in); got != tc.wantF {
			t.Errorf("Float(%q) = %v, want %v", tc.in, got, tc.wantF)
		}
	}
}

func TestRatingAbcBecomesZero(t *testing.T) {
	f := HospitalForm{Name: "A", Address: "B", City: "C", ContactNumber: "1", Rating: "abc"}
	h := f.Hospital("")
	if h.Rating != 0 || math.IsNaN(h.Rating) {
		t.Fatalf("expected rating 0, got %v", h.Rating)
	}
}

func TestTextAcceptsNumbersAndStrings(t *testing.T) {
	var f HospitalForm
	body := `{"name":"City General","numberOfBeds":120,"rating":"4.2","ageOfHospital":null}`
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	h := f.Hospital("")
	if h.NumberOfBeds != 120 || h.Rating != 4.2 || h.AgeOfHospital != 0 {
		t.Fatalf("unexpected coercion: %+v", h)
	}
}

func TestValidateNamesMissingFields(t *testing.T) {
	err := HospitalForm{Name: "City General", City: "  "}.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"address": true, "city": true, "contactNumber": true}
	if len(verr.Fields) != len(want) {
		t.Fatalf("unexpected fields %v", verr.Fields)
	}
	for _, f := range verr.Fields {
		if !want[f] {
			t.Fatalf("unexpected field %q in %v", f, verr.Fields)
		}
	}
}

func TestValidatePasses(t *testing.T) {
	forms := []interface{ Validate() error }{
		HospitalForm{Name: "A", Address: "B", City: "C", ContactNumber: "D"},
		DepartmentForm{Name: "Cardiology", HospitalID: "h1"},
		DoctorForm{Name: "Dr. Rao", Phone: "1", Mail: "r@x.in", Specialization: "Cardio", DepartmentID: "d1"},
		StaffSignupForm{Name: "N", Email: "e@x", Password: "p", Role: "receptionist", HospitalID: "h1"},
		BookingForm{PatientName: "P", Date: "2026-10-20", TimeSlot: "10:00-10:30"},
	}
	for _, f := range forms {
		if err := f.Validate(); err != nil {
			t.Errorf("%T: unexpected error %v", f, err)
		}
	}
}

func TestDoctorPayload(t *testing.T) {
	d := DoctorForm{
		Name: " Dr. Rao ", Phone: "1", Mail: "r@x.in", Specialization: "Cardio",
		Experience: "ten", Fee: "500.50", DepartmentID: "d1", Picture: " ",
	}.Doctor("doc-1")
	if d.ID != "doc-1" || d.Name != "Dr. Rao" || d.Experience != 0 || d.Fee != 500.5 || d.Picture != nil {
		t.Fatalf("unexpected doctor payload %+v", d)
	}
}
