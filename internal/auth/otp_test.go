// AngelaMos | 2026
// otp_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/config"
	"github.com/carterperez-dev/mialtar/internal/core"
)

func TestMemoryCodeStore_RoundTrip(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a@example.com", "123456", time.Minute))

	code, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	require.NoError(t, store.Delete(ctx, "a@example.com"))

	_, err = store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestMemoryCodeStore_Expiry(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(
		t,
		store.Set(ctx, "a@example.com", "123456", -time.Second),
	)

	_, err := store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestMemoryCodeStore_MissingEmail(t *testing.T) {
	store := NewMemoryCodeStore()

	_, err := store.Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

type fakeTokenRepo struct {
	tokens map[string]*RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, t *RefreshToken) error {
	r.tokens[t.ID] = t
	return nil
}

func (r *fakeTokenRepo) FindByHash(
	_ context.Context,
	hash string,
) (*RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeTokenRepo) FindByID(
	_ context.Context,
	id string,
) (*RefreshToken, error) {
	t, ok := r.tokens[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	if t, ok := r.tokens[id]; ok {
		t.MarkAsUsed(replacedByID)
	}
	return nil
}

func (r *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	if t, ok := r.tokens[id]; ok {
		t.Revoke()
	}
	return nil
}

func (r *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	for _, t := range r.tokens {
		if t.FamilyID == familyID {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) GetActiveSessionsForUser(
	_ context.Context,
	userID string,
) ([]RefreshToken, error) {
	var out []RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeUserProvider struct {
	byEmail       map[string]*UserInfo
	tokenVersions map[string]int
	passwords     map[string]string
}

func newFakeUserProvider(users ...*UserInfo) *fakeUserProvider {
	p := &fakeUserProvider{
		byEmail:       make(map[string]*UserInfo),
		tokenVersions: make(map[string]int),
		passwords:     make(map[string]string),
	}
	for _, u := range users {
		p.byEmail[u.Email] = u
	}
	return p
}

func (p *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	u, ok := p.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (p *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	for _, u := range p.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*UserInfo, error) {
	if _, exists := p.byEmail[email]; exists {
		return nil, core.ErrDuplicateKey
	}
	u := &UserInfo{ID: "id-" + email, Email: email, Name: name, Role: "user"}
	p.byEmail[email] = u
	return u, nil
}

func (p *fakeUserProvider) IncrementTokenVersion(
	_ context.Context,
	userID string,
) error {
	p.tokenVersions[userID]++
	return nil
}

func (p *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	p.passwords[userID] = passwordHash
	return nil
}

type captureNotifier struct {
	otpEmail   string
	otpCode    string
	resetEmail string
	resetToken string
}

func (n *captureNotifier) SendOTP(
	_ context.Context,
	email, code string,
) error {
	n.otpEmail = email
	n.otpCode = code
	return nil
}

func (n *captureNotifier) SendPasswordReset(
	_ context.Context,
	email, token string,
) error {
	n.resetEmail = email
	n.resetToken = token
	return nil
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	jwtManager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privPath,
		PublicKeyPath:      pubPath,
		AccessTokenExpire:  2 * time.Hour,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		ResetTokenExpire:   time.Hour,
		Issuer:             "mialtar-test",
		Audience:           "mialtar",
	})
	require.NoError(t, err)
	return jwtManager
}

func newOTPTestService(
	t *testing.T,
	users *fakeUserProvider,
	notifier *captureNotifier,
) *Service {
	t.Helper()

	return NewService(ServiceConfig{
		Repo:         newFakeTokenRepo(),
		JWT:          newTestJWTManager(t),
		UserProvider: users,
		Codes:        NewMemoryCodeStore(),
		Notifier:     notifier,
		OTP:          config.OTPConfig{TTL: 3 * time.Minute, Length: 6},
	})
}

func TestRequestOTP_UnknownEmailSilent(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(), notifier)

	err := svc.RequestOTP(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifier.otpCode)
}

func TestVerifyOTP_FullFlow(t *testing.T) {
	user := &UserInfo{
		ID:    "u1",
		Email: "a@example.com",
		Name:  "Ana",
		Role:  "user",
	}
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(user), notifier)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, "a@example.com"))
	require.Len(t, notifier.otpCode, 6)

	resp, err := svc.VerifyOTP(
		ctx,
		"a@example.com",
		notifier.otpCode,
		"ua",
		"1.2.3.4",
	)
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	// The code is consumed on success; replay fails.
	_, err = svc.VerifyOTP(
		ctx,
		"a@example.com",
		notifier.otpCode,
		"ua",
		"1.2.3.4",
	)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	user := &UserInfo{ID: "u1", Email: "a@example.com", Role: "user"}
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(user), notifier)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, "a@example.com"))

	_, err := svc.VerifyOTP(ctx, "a@example.com", "000000", "ua", "ip")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_NeverIssued(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(), notifier)

	_, err := svc.VerifyOTP(
		context.Background(),
		"a@example.com",
		"123456",
		"ua",
		"ip",
	)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestForgotPassword_Flow(t *testing.T) {
	user := &UserInfo{ID: "u1", Email: "a@example.com", Role: "user"}
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(user), notifier)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "a@example.com"))
	require.NotEmpty(t, notifier.resetToken)

	require.NoError(
		t,
		svc.ResetPassword(ctx, notifier.resetToken, "brand-new-password"),
	)

	users := svc.userProvider.(*fakeUserProvider)
	assert.NotEmpty(t, users.passwords["u1"])
	assert.Equal(t, 1, users.tokenVersions["u1"])
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(), notifier)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifier.resetToken)
}

func TestResetPassword_RejectsAccessToken(t *testing.T) {
	user := &UserInfo{ID: "u1", Email: "a@example.com", Role: "user"}
	notifier := &captureNotifier{}
	svc := newOTPTestService(t, newFakeUserProvider(user), notifier)

	accessToken, err := svc.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: "u1",
		Email:  "a@example.com",
		Role:   "user",
	})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), accessToken, "newpassword1")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
