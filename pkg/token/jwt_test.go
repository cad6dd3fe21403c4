package token

import (
	"errors"
	"testing"

	"cine-taquilla/pkg/utils"
)

func testManager() *Manager {
	return NewManager(utils.JWTConfig{
		Secret:              "test-secret",
		AccessExpiryHours:   1,
		RefreshExpiryDays:   30,
		ResetExpiryHours:    1,
		ExchangeExpiryHours: 1,
	})
}

func TestCreateAndVerify(t *testing.T) {
	m := testManager()

	for _, typ := range []Type{TypeAccess, TypeRefresh, TypeReset, TypeExchange} {
		signed, exp, err := m.Create(typ, 42, "user@example.com", "customer")
		if err != nil {
			t.Fatalf("Create(%s): %v", typ, err)
		}
		if exp.IsZero() {
			t.Fatalf("Create(%s): zero expiry", typ)
		}

		claims, err := m.Verify(signed, typ)
		if err != nil {
			t.Fatalf("Verify(%s): %v", typ, err)
		}
		if claims.UserID != 42 || claims.Email != "user@example.com" || claims.Role != "customer" {
			t.Errorf("Verify(%s): wrong claims %+v", typ, claims)
		}
	}
}

func TestVerifyRejectsWrongType(t *testing.T) {
	m := testManager()

	signed, _, err := m.Create(TypeRefresh, 7, "user@example.com", "customer")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := m.Verify(signed, TypeAccess); !errors.Is(err, ErrWrongType) {
		t.Errorf("refresh token accepted as access token, err = %v", err)
	}
	if _, err := m.Verify(signed, TypeReset); !errors.Is(err, ErrWrongType) {
		t.Errorf("refresh token accepted as reset token, err = %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := testManager()

	signed, _, err := m.Create(TypeAccess, 7, "user@example.com", "customer")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := m.Verify(tampered, TypeAccess); !errors.Is(err, ErrInvalid) {
		t.Errorf("tampered token accepted, err = %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other := NewManager(utils.JWTConfig{Secret: "other-secret", AccessExpiryHours: 1})

	signed, _, err := other.Create(TypeAccess, 7, "user@example.com", "customer")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	m := testManager()
	if _, err := m.Verify(signed, TypeAccess); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}
