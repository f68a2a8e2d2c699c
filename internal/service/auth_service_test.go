package service

import (
	"strings"
	"testing"
)

func TestLoginAndValidate(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("inspector", "field123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if !strings.HasPrefix(resp.InspectorID, "insp_") {
		t.Errorf("inspectorId = %q, want insp_ prefix", resp.InspectorID)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.InspectorID != resp.InspectorID {
		t.Errorf("claims id = %q, want %q", claims.InspectorID, resp.InspectorID)
	}
	if claims.Name == "" {
		t.Error("claims name must carry the inspector display name")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService()

	if _, err := svc.Login("inspector", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody", "field123"); err != ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewAuthService()

	if _, err := svc.ValidateToken("not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
