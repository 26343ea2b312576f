package auth_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/taskhub-auth/auth"
	"github.com/jrsteele09/taskhub-auth/auth/sessions"
	"github.com/jrsteele09/taskhub-auth/token"
	"github.com/jrsteele09/taskhub-auth/users"
	"github.com/jrsteele09/taskhub-auth/users/principalrepo"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "0123456789abcdef0123456789abcdef"
	testRefreshSecret = "fedcba9876543210fedcba9876543210"
	testUserEmail     = "a@x.com"
	testUserPassword  = "right"
	testUserName      = "Alice Example"
)

// testFixture holds all test dependencies
type testFixture struct {
	principalRepo *principalrepo.InMemoryRepo
	store         *sessions.Store
	codec         *token.Codec
	service       *auth.Service
}

// setupTestFixture creates a new test fixture with all dependencies.
// Stores are instantiated per test so tests can run in parallel without
// cross-test interference.
func setupTestFixture(t *testing.T, codecOptions ...token.CodecOption) *testFixture {
	t.Helper()

	codec, err := token.New([]byte(testAccessSecret), []byte(testRefreshSecret), codecOptions...)
	require.NoError(t, err)

	pr := principalrepo.NewInMemoryRepo()
	store := sessions.New()

	service, err := auth.NewService(auth.Repos{Users: pr}, store, codec)
	require.NoError(t, err)

	return &testFixture{
		principalRepo: pr,
		store:         store,
		codec:         codec,
		service:       service,
	}
}

// createTestPrincipal creates and stores a test principal
func (f *testFixture) createTestPrincipal(t *testing.T, email, password string, role users.RoleType) {
	t.Helper()

	passwordHash, err := users.HashPassword(password)
	require.NoError(t, err)

	err = f.principalRepo.Upsert(&users.Principal{
		Email:        email,
		FullName:     testUserName,
		Role:         role,
		PasswordHash: passwordHash,
	})
	require.NoError(t, err)
}

func (f *testFixture) login(t *testing.T) *auth.TokenPair {
	t.Helper()

	pair, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)
	return pair
}

func TestLoginReturnsTokenPair(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)

	pair := f.login(t)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, f.service.IsLoggedIn(testUserEmail))

	claims, err := f.codec.DecodeAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, claims.Subject)
	require.Equal(t, users.RoleUser, claims.Role)
}

func TestLoginUnknownPrincipal(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login("nobody@x.com", "whatever")
	require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)

	_, err := f.service.Login(testUserEmail, "wrong")
	require.ErrorIs(t, err, auth.ErrWrongCredentials)

	// No session entry may be created by a failed login.
	require.False(t, f.service.IsLoggedIn(testUserEmail))
	require.False(t, f.store.Exists(testUserEmail))
}

func TestLoginTwiceIsRefused(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)

	f.login(t)
	_, err := f.service.Login(testUserEmail, testUserPassword)
	require.ErrorIs(t, err, auth.ErrAlreadyLoggedIn)
}

func TestNewAccessTokenIsSingleUse(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	issued, err := f.service.NewAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, issued.AccessToken)
	require.Empty(t, issued.RefreshToken)

	// The identical refresh token must be refused the second time.
	_, err = f.service.NewAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrStaleToken)

	// And it can no longer rotate either.
	_, err = f.service.Refresh(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrStaleToken)
}

func TestNewAccessTokenWithForeignToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	f.login(t)

	// Validly signed, but not the stored authoritative token.
	forged, err := f.codec.IssueRefresh(&users.Principal{Email: testUserEmail, Role: users.RoleUser})
	require.NoError(t, err)

	_, err = f.service.NewAccessToken(forged)
	require.ErrorIs(t, err, auth.ErrStaleToken)
}

func TestRefreshRotatesAtomically(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	rotated, err := f.service.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Old token is dead for every operation.
	_, err = f.service.Refresh(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrStaleToken)
	_, err = f.service.NewAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrStaleToken)

	// New token is authoritative.
	again, err := f.service.Refresh(rotated.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, again.RefreshToken)
}

func TestRefreshWithInvalidToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh("garbage")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)

	var decodeErr *token.DecodeError
	require.ErrorAs(t, err, &decodeErr, "decode reason must stay available for logging")
}

func TestRefreshWithExpiredToken(t *testing.T) {
	current := time.Now()
	f := setupTestFixture(t, token.WithNowFunc(func() time.Time { return current }))
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	current = current.Add(25 * time.Hour)
	_, err := f.service.Refresh(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)

	var decodeErr *token.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, token.KindExpired, decodeErr.Kind)
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	require.NoError(t, f.service.Logout(pair.RefreshToken))
	require.False(t, f.service.IsLoggedIn(testUserEmail))

	err := f.service.Logout(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrAlreadyLoggedOut)
}

func TestLogoutWithWrongToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	f.login(t)

	forged, err := f.codec.IssueRefresh(&users.Principal{Email: testUserEmail, Role: users.RoleUser})
	require.NoError(t, err)

	err = f.service.Logout(forged)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.True(t, f.service.IsLoggedIn(testUserEmail), "session must survive a bad logout")
}

func TestLoginAfterLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	require.NoError(t, f.service.Logout(pair.RefreshToken))
	f.login(t)
	require.True(t, f.service.IsLoggedIn(testUserEmail))
}

func TestLoginAfterConsumedRefreshToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	_, err := f.service.NewAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	// The consumed slot cannot be matched or rotated anymore, so a fresh
	// login is the subject's only way back in.
	f.login(t)
	require.True(t, f.service.IsLoggedIn(testUserEmail))
}

func TestConcurrentRefreshHasExactlyOneWinner(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)
	pair := f.login(t)

	const workers = 16
	var winners, stale int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Refresh(pair.RefreshToken)
			switch {
			case err == nil:
				atomic.AddInt32(&winners, 1)
			case errors.Is(err, auth.ErrStaleToken):
				atomic.AddInt32(&stale, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), winners)
	require.Equal(t, int32(workers-1), stale)
}

func TestConcurrentLoginHasExactlyOneWinner(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestPrincipal(t, testUserEmail, testUserPassword, users.RoleUser)

	const workers = 16
	var winners, refused int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Login(testUserEmail, testUserPassword)
			switch {
			case err == nil:
				atomic.AddInt32(&winners, 1)
			case errors.Is(err, auth.ErrAlreadyLoggedIn):
				atomic.AddInt32(&refused, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), winners)
	require.Equal(t, int32(workers-1), refused)
}
