package auth

import (
	"strings"
	"testing"
	"time"

	"taskmanager/config"
	"taskmanager/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test_secret_key_very_long_for_testing"
	testIssuer   = "TaskManagerAPI"
	testAudience = "TaskManagerAPI"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestJWTService(t *testing.T, clock *fakeClock) *jwtService {
	t.Helper()

	svc, err := newJWTService(testSecret, testIssuer, testAudience, clock.Now)
	require.NoError(t, err)

	return svc
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return signed
}

func validClaims(now time.Time, subject string) tokenClaims {
	return tokenClaims{
		Email:  "ada@example.com",
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestJWTService(t, clock)

	userID := uuid.New()
	token, expiresAt, err := svc.Issue(userID, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IssuedAt.Equal(clock.now))
	assert.True(t, claims.ExpiresAt.Equal(clock.now.Add(24*time.Hour)))
	assert.True(t, expiresAt.Equal(claims.ExpiresAt))
}

func TestJWTService_IssueReturnsEmbeddedExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 900_000_000, time.UTC)}
	svc := newTestJWTService(t, clock)

	token, expiresAt, err := svc.Issue(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	// exp has whole-second precision, so the reported expiry must not be later than the claim.
	assert.True(t, expiresAt.Equal(claims.ExpiresAt))
	assert.Equal(t, time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC), expiresAt.UTC())
}

func TestJWTService_TokenCarriesUserIDClaim(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestJWTService(t, clock)
	userID := uuid.New()

	token, _, err := svc.Issue(userID, "ada@example.com")
	require.NoError(t, err)

	parsed := &tokenClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), parsed.UserID)
	assert.Equal(t, userID.String(), parsed.Subject)
	assert.Equal(t, testIssuer, parsed.Issuer)
	assert.Equal(t, jwt.ClaimStrings{testAudience}, parsed.Audience)
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestJWTService(t, clock)

	token, _, err := svc.Issue(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	clock.now = issuedAt.Add(24*time.Hour - time.Second)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.now = issuedAt.Add(24 * time.Hour)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	clock.now = issuedAt.Add(25 * time.Hour)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	now := time.Now()
	clock := &fakeClock{now: now}
	svc := newTestJWTService(t, clock)
	subject := uuid.NewString()

	valid, _, err := svc.Issue(uuid.MustParse(subject), "ada@example.com")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tamperedPayload := validClaims(now, uuid.NewString())
	tampered := strings.Split(signRaw(t, jwt.SigningMethodHS256, tamperedPayload, []byte("other")), ".")

	wrongIssuer := validClaims(now, subject)
	wrongIssuer.Issuer = "SomeoneElse"

	wrongAudience := validClaims(now, subject)
	wrongAudience.Audience = jwt.ClaimStrings{"SomeoneElse"}

	noExpiry := validClaims(now, subject)
	noExpiry.ExpiresAt = nil

	badSubject := validClaims(now, "not-a-uuid")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "clearly-not-a-jwt-token-format"},
		{name: "wrong secret", token: signRaw(t, jwt.SigningMethodHS256, validClaims(now, subject), []byte("wrong-secret"))},
		{name: "tampered payload", token: parts[0] + "." + tampered[1] + "." + parts[2]},
		{name: "wrong algorithm", token: signRaw(t, jwt.SigningMethodHS384, validClaims(now, subject), []byte(testSecret))},
		{name: "none algorithm", token: signRaw(t, jwt.SigningMethodNone, validClaims(now, subject), jwt.UnsafeAllowNoneSignatureType)},
		{name: "wrong issuer", token: signRaw(t, jwt.SigningMethodHS256, wrongIssuer, []byte(testSecret))},
		{name: "wrong audience", token: signRaw(t, jwt.SigningMethodHS256, wrongAudience, []byte(testSecret))},
		{name: "missing expiry", token: signRaw(t, jwt.SigningMethodHS256, noExpiry, []byte(testSecret))},
		{name: "invalid subject", token: signRaw(t, jwt.SigningMethodHS256, badSubject, []byte(testSecret))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			assert.Equal(t, service.ErrInvalidToken, err)
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		cfg := &config.Config{JWT: config.JWTConfig{SecretKey: secret, Issuer: testIssuer, Audience: testAudience}}

		svc, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, svc)
	}
}

func TestNewJWTService_FromConfig(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: testSecret, Issuer: testIssuer, Audience: testAudience}}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, _, err := svc.Issue(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.NoError(t, err)
}
