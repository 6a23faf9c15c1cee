package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/mailer"
	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/hash"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	return repo.New(db)
}

func createTestProduct(t *testing.T, r *repo.GormRepo, p *models.Product) *models.Product {
	t.Helper()

	if p.Category == "" {
		p.Category = "misc"
	}
	if p.Slug == "" {
		p.Slug = p.Title
	}
	created, err := r.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	return created
}

func createTestUser(t *testing.T, r *repo.GormRepo, email, password string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
		IsActive:     true,
	}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), user))
	return user
}

func validAddress() *transport.ShippingAddressRequest {
	return &transport.ShippingAddressRequest{
		Name:    "John Doe",
		Email:   "john@example.com",
		Contact: "+1 555 0100",
		Address: "1 Main St",
		State:   "CA",
		Country: "US",
	}
}

// recordingSender captures outgoing mail; Fail switches it to reporting a
// failed outcome.
type recordingSender struct {
	mu   sync.Mutex
	Fail bool
	Sent []mailer.Message
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) mailer.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return mailer.FailedOutcome(errors.New("smtp unreachable"))
	}
	s.Sent = append(s.Sent, msg)
	return mailer.SentOutcome()
}

type recordingPublisher struct {
	mu     sync.Mutex
	Events []map[string]any
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := event.(map[string]any); ok {
		p.Events = append(p.Events, m)
	}
	return nil
}
