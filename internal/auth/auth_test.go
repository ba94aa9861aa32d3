package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestSaveLoadClear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if creds, err := Load(); err != nil || creds.AccessToken != "" {
		t.Fatalf("Load before save: creds=%+v err=%v", creds, err)
	}

	if err := Save(Credentials{AccessToken: "  "}); err == nil {
		t.Fatalf("expected error for empty access token")
	}

	want := Credentials{AccessToken: "acc-token", RefreshToken: "ref-token"}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Fatalf("Load = %+v, want tokens from %+v", got, want)
	}
	if got.Updated.IsZero() {
		t.Fatalf("expected Updated to be stamped")
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if creds, err := Load(); err != nil || creds.AccessToken != "" {
		t.Fatalf("Load after clear: creds=%+v err=%v", creds, err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
}

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	soon := now.Add(10 * time.Second)
	future := now.Add(time.Hour)

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: true},
		{name: "not a jwt", token: "opaque-token", want: false},
		{name: "no exp claim", token: signedToken(t, nil), want: false},
		{name: "expired", token: signedToken(t, &past), want: true},
		{name: "inside skew", token: signedToken(t, &soon), want: true},
		{name: "valid", token: signedToken(t, &future), want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Expired(tc.token, now); got != tc.want {
				t.Fatalf("Expired(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}
