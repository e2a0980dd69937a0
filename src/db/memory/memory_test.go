package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"dimdim-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClient(t *testing.T, s *Store, email string) *models.Client {
	t.Helper()
	c, err := s.Clients().Insert(context.Background(), &models.Client{Name: "C", Email: email, Phone: "(11) 1234-5678"})
	require.NoError(t, err)
	return c
}

func TestReadWriteRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.ReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.Clients().Insert(ctx, &models.Client{Name: "A", Email: "a@x.com", Phone: "(11) 1234-5678"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Clients().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	c := seedClient(t, s, "a@x.com")
	assert.Equal(t, int64(1), c.ID)
}

func TestReadWriteRollsBackOnPanic(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.ReadWrite(ctx, func(ctx context.Context) error {
			_, _ = s.Clients().Insert(ctx, &models.Client{Name: "A", Email: "a@x.com"})
			panic("boom")
		})
	})

	n, err := s.Clients().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteInsideReadOnlyUnit(t *testing.T) {
	s := New()

	err := s.ReadOnly(context.Background(), func(ctx context.Context) error {
		_, err := s.Clients().Insert(ctx, &models.Client{Name: "A", Email: "a@x.com"})
		return err
	})
	require.ErrorIs(t, err, ErrReadOnly)
}

func TestUniqueEmailBackstop(t *testing.T) {
	s := New()
	seedClient(t, s, "a@x.com")
	other := seedClient(t, s, "b@x.com")

	_, err := s.Clients().Insert(context.Background(), &models.Client{Name: "X", Email: "a@x.com"})
	require.ErrorIs(t, err, models.ErrDuplicateEmail)

	other.Email = "a@x.com"
	_, err = s.Clients().Update(context.Background(), other)
	require.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestTransactionForeignKeyBackstop(t *testing.T) {
	s := New()

	_, err := s.Transactions().Insert(context.Background(), &models.Transaction{Amount: 1, ClientID: 9, Date: models.NewDate(2024, 1, 1)})
	require.ErrorIs(t, err, models.ErrClientNotFound)
}

func TestAmountMustBePositive(t *testing.T) {
	s := New()
	c := seedClient(t, s, "a@x.com")

	_, err := s.Transactions().Insert(context.Background(), &models.Transaction{Amount: 0, ClientID: c.ID})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteClientCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedClient(t, s, "a@x.com")
	b := seedClient(t, s, "b@x.com")
	day := models.NewDate(2024, time.June, 1)
	for _, id := range []int64{a.ID, a.ID, b.ID} {
		_, err := s.Transactions().Insert(ctx, &models.Transaction{Amount: 5, Date: day, ClientID: id})
		require.NoError(t, err)
	}

	require.NoError(t, s.Clients().DeleteByID(ctx, a.ID))

	n, err := s.Transactions().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := s.Transactions().FindByClientID(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestFindAllOrderedByID(t *testing.T) {
	s := New()
	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		seedClient(t, s, e)
	}

	all, err := s.Clients().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, c := range all {
		assert.Equal(t, int64(i+1), c.ID)
	}
}

func TestPingHonoursContext(t *testing.T) {
	s := New()
	require.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
