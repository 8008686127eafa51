package utils

import (
	"testing"

	"clinic-appointment-server/internal/config"
	"clinic-appointment-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test_secret", JWTExpirationDays: 1}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "doctor-1"

	token, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "doctor-1" || claims.Role != models.RoleDoctor {
		t.Errorf("claims = %+v, want doctor-1/doctor", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RolePatient}
	user.ID = "patient-1"

	token, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "other_secret"); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestCookieNameForRole(t *testing.T) {
	if got := CookieNameForRole(models.RoleAdmin); got != "adminToken" {
		t.Errorf("admin cookie = %s", got)
	}
	if got := CookieNameForRole(models.RoleDoctor); got != "doctorToken" {
		t.Errorf("doctor cookie = %s", got)
	}
	if got := CookieNameForRole(models.RolePatient); got != "patientToken" {
		t.Errorf("patient cookie = %s", got)
	}
}
