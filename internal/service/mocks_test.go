package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"lms-auth/internal/domain"
	"lms-auth/internal/repository"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	failGet      error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return domain.User{}, m.failGet
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) Save(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.usersByID[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.usersByEmail, prev.Email)
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.usersByID)
}

type mockAdminRepo struct {
	mu     sync.Mutex
	admins map[string]domain.Admin
}

func newMockAdminRepo(admins ...domain.Admin) *mockAdminRepo {
	m := &mockAdminRepo{admins: make(map[string]domain.Admin)}
	for _, a := range admins {
		m.admins[a.ID] = a
	}
	return m
}

func (m *mockAdminRepo) Create(_ context.Context, admin domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicate
		}
	}
	m.admins[admin.ID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return domain.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Admin{}, repository.ErrNotFound
}

func (m *mockAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockAdminRepo) Save(_ context.Context, admin domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[admin.ID]; !ok {
		return repository.ErrNotFound
	}
	m.admins[admin.ID] = admin
	return nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.admins, id)
	return nil
}

func (m *mockAdminRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

type mockOTPRepo struct {
	mu   sync.Mutex
	otps []domain.OTP
}

func newMockOTPRepo() *mockOTPRepo {
	return &mockOTPRepo{}
}

func (m *mockOTPRepo) Create(_ context.Context, otp domain.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps = append(m.otps, otp)
	return nil
}

func (m *mockOTPRepo) Latest(_ context.Context, email string, purpose domain.OTPPurpose) (domain.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		latest domain.OTP
		found  bool
	)
	for _, o := range m.otps {
		if o.Email != email || o.Purpose != purpose {
			continue
		}
		if !found || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
			found = true
		}
	}
	if !found {
		return domain.OTP{}, repository.ErrNotFound
	}
	return latest, nil
}

func (m *mockOTPRepo) DeleteByEmailPurpose(_ context.Context, email string, purpose domain.OTPPurpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.otps[:0]
	for _, o := range m.otps {
		if o.Email == email && o.Purpose == purpose {
			continue
		}
		kept = append(kept, o)
	}
	m.otps = kept
	return nil
}

func (m *mockOTPRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.otps[:0]
	var purged int64
	for _, o := range m.otps {
		if o.ExpiresAt.Before(now) {
			purged++
			continue
		}
		kept = append(kept, o)
	}
	m.otps = kept
	return purged, nil
}

func (m *mockOTPRepo) countFor(email string, purpose domain.OTPPurpose) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.otps {
		if o.Email == email && o.Purpose == purpose {
			n++
		}
	}
	return n
}

// fakeHasher evita el costo de bcrypt en tests de orquestacion.
type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) {
	return "hashed:" + secret, nil
}

func (fakeHasher) Verify(secret, hash string) bool {
	return hash == "hashed:"+secret
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *mockMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

// sequenceCodes devuelve codigos deterministas 000001, 000002, ...
func sequenceCodes() func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%06d", n), nil
	}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestOTPService(repo *mockOTPRepo, clk *clock) *OTPService {
	svc := NewOTPService(zap.NewNop(), repo, fakeHasher{}, NewLocalIssueLocker(), 10*time.Minute)
	svc.now = clk.Now
	svc.newCode = sequenceCodes()
	return svc
}

type authFixture struct {
	svc        *AuthService
	users      *mockUserRepo
	otps       *mockOTPRepo
	mailer     *mockMailer
	tokens     *JWTService
	clock      *clock
	lastIssued string
}

func newAuthFixture() *authFixture {
	clk := newClock()
	users := newMockUserRepo()
	otpRepo := newMockOTPRepo()
	mailer := &mockMailer{}
	tokens := NewJWTService("secret", time.Hour, "lms-auth")
	otpSvc := newTestOTPService(otpRepo, clk)
	svc := NewAuthService(zap.NewNop(), users, otpSvc, fakeHasher{}, tokens, mailer)
	svc.now = clk.Now

	f := &authFixture{svc: svc, users: users, otps: otpRepo, mailer: mailer, tokens: tokens, clock: clk}
	next := otpSvc.newCode
	otpSvc.newCode = func() (string, error) {
		code, err := next()
		f.lastIssued = code
		return code, err
	}
	return f
}

var errStorageDown = errors.New("storage down")
