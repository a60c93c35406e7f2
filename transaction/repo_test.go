package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"adox/apperr"
	"adox/testutil"
	"adox/transaction/options"
)

func TestLedgerRepo(t *testing.T) {
	s := NewSuite(t)
	suite.Run(t, s)
}

func NewSuite(t *testing.T) *Suite {
	return &Suite{
		Assertions: require.New(t),
	}
}

type Suite struct {
	suite.Suite
	*require.Assertions // default to require behavior
	repo                Repo
}

func (s *Suite) SetupTest() {
	db := testutil.OpenDB(s.T())

	repo, err := NewSQLRepo(db)
	s.NoError(err)
	s.repo = repo
}

func (s *Suite) newTransaction(currency Currency, amount string, occurredAt time.Time) *Transaction {
	return &Transaction{
		OccurredAt: occurredAt,
		Currency:   currency,
		Client:     "Ana Silva",
		Recipient:  "Paulo Silva",
		Bank:       "BAI",
		AmountKz:   decimal.RequireFromString(amount),
		CreatedBy:  "nelio",
	}
}

func (s *Suite) sameTransaction(want, got *Transaction) {
	s.True(want.OccurredAt.Equal(got.OccurredAt), "want %s got %s", want.OccurredAt, got.OccurredAt)
	s.Equal(want.Currency, got.Currency)
	s.Equal(want.Client, got.Client)
	s.Equal(want.Recipient, got.Recipient)
	s.Equal(want.Bank, got.Bank)
	s.True(want.AmountKz.Equal(got.AmountKz), "want %s got %s", want.AmountKz, got.AmountKz)
	s.Equal(want.CreatedBy, got.CreatedBy)
}

func (s *Suite) TestInsertRoundtrip() {
	ctx := context.Background()
	at := time.Date(2025, 8, 20, 10, 30, 0, 0, time.UTC)

	want := s.newTransaction(GBP, "150.50", at)
	id, err := s.repo.Insert(ctx, want)
	s.NoError(err)
	s.Equal(id, want.ID)

	got, err := s.repo.List(ctx)
	s.NoError(err)
	s.Len(got, 1)
	s.Equal(id, got[0].ID)
	s.sameTransaction(want, got[0])
}

func (s *Suite) TestInsertAssignsIncreasingIDs() {
	ctx := context.Background()
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.repo.Insert(ctx, s.newTransaction(EUR, "100", at.Add(time.Duration(i)*time.Minute)))
		s.NoError(err)
		s.Greater(id, last)
		last = id
	}
}

func (s *Suite) TestInsertDefaultsTimestamp() {
	ctx := context.Background()

	tx := s.newTransaction(GBP, "10", time.Time{})
	_, err := s.repo.Insert(ctx, tx)
	s.NoError(err)

	got, err := s.repo.List(ctx)
	s.NoError(err)
	s.Len(got, 1)
	s.False(got[0].OccurredAt.IsZero())
	s.WithinDuration(time.Now().UTC(), got[0].OccurredAt, time.Minute)
}

func (s *Suite) TestInsertValidates() {
	ctx := context.Background()
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		field  string
		mutate func(*Transaction)
	}{
		{"currency", func(t *Transaction) { t.Currency = "USD" }},
		{"client_name", func(t *Transaction) { t.Client = "  " }},
		{"recipient_name", func(t *Transaction) { t.Recipient = "" }},
		{"amount_kz", func(t *Transaction) { t.AmountKz = decimal.NewFromInt(-1) }},
		{"created_by", func(t *Transaction) { t.CreatedBy = "" }},
	}
	for _, tc := range cases {
		tx := s.newTransaction(GBP, "50", at)
		tc.mutate(tx)

		_, err := s.repo.Insert(ctx, tx)
		s.True(apperr.IsValidation(err), "field %s: got %v", tc.field, err)

		var appErr *apperr.Error
		s.True(errors.As(err, &appErr))
		s.Equal(tc.field, appErr.Field)
	}

	// nothing was persisted
	got, err := s.repo.List(ctx)
	s.NoError(err)
	s.Empty(got)
}

func (s *Suite) TestListOrdering() {
	ctx := context.Background()
	early := time.Date(2025, 8, 19, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

	// inserted out of order, with a timestamp tie broken by id
	lateID, err := s.repo.Insert(ctx, s.newTransaction(GBP, "1", late))
	s.NoError(err)
	earlyID, err := s.repo.Insert(ctx, s.newTransaction(GBP, "2", early))
	s.NoError(err)
	tieID, err := s.repo.Insert(ctx, s.newTransaction(EUR, "3", late))
	s.NoError(err)

	got, err := s.repo.List(ctx)
	s.NoError(err)
	s.Len(got, 3)
	s.Equal(earlyID, got[0].ID)
	s.Equal(lateID, got[1].ID)
	s.Equal(tieID, got[2].ID)
}

func (s *Suite) TestListFilters() {
	ctx := context.Background()
	day1 := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 19, 12, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	gbp := s.newTransaction(GBP, "100", day1)
	_, err := s.repo.Insert(ctx, gbp)
	s.NoError(err)

	eur := s.newTransaction(EUR, "200", day2)
	eur.CreatedBy = "ana"
	_, err = s.repo.Insert(ctx, eur)
	s.NoError(err)

	big := s.newTransaction(GBP, "5000", day3)
	_, err = s.repo.Insert(ctx, big)
	s.NoError(err)

	s.Run("by currency", func() {
		got, err := s.repo.List(ctx, options.NewListOptions().SetCurrency("EUR"))
		s.NoError(err)
		s.Len(got, 1)
		s.Equal(eur.ID, got[0].ID)
	})

	s.Run("by creator", func() {
		got, err := s.repo.List(ctx, options.NewListOptions().SetCreatedBy("ana"))
		s.NoError(err)
		s.Len(got, 1)
		s.Equal(eur.ID, got[0].ID)
	})

	s.Run("by time range", func() {
		low := day2.Add(-time.Hour)
		high := day2.Add(time.Hour)
		got, err := s.repo.List(ctx, options.NewListOptions().
			SetTimeRange(&options.TimeRange{Low: &low, High: &high}))
		s.NoError(err)
		s.Len(got, 1)
		s.Equal(eur.ID, got[0].ID)
	})

	s.Run("by amount range", func() {
		low := decimal.NewFromInt(150)
		got, err := s.repo.List(ctx, options.NewListOptions().
			SetAmountRange(&options.DecimalRange{Low: &low}))
		s.NoError(err)
		s.Len(got, 2)
		s.Equal(eur.ID, got[0].ID)
		s.Equal(big.ID, got[1].ID)
	})

	s.Run("combined", func() {
		low := decimal.NewFromInt(150)
		got, err := s.repo.List(ctx, options.NewListOptions().
			SetCurrency("GBP").
			SetAmountRange(&options.DecimalRange{Low: &low}))
		s.NoError(err)
		s.Len(got, 1)
		s.Equal(big.ID, got[0].ID)
	})
}

func (s *Suite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	id, err := s.repo.Insert(ctx, s.newTransaction(GBP, "75", at))
	s.NoError(err)

	existed, err := s.repo.Delete(ctx, id)
	s.NoError(err)
	s.True(existed)

	// deleting an absent id is not an error and changes nothing
	existed, err = s.repo.Delete(ctx, id)
	s.NoError(err)
	s.False(existed)

	existed, err = s.repo.Delete(ctx, 99999)
	s.NoError(err)
	s.False(existed)

	got, err := s.repo.List(ctx)
	s.NoError(err)
	s.Empty(got)
}

func (s *Suite) TestClear() {
	ctx := context.Background()
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.repo.Insert(ctx, s.newTransaction(EUR, "10", at))
		s.NoError(err)
	}

	n, err := s.repo.Clear(ctx)
	s.NoError(err)
	s.EqualValues(3, n)

	// clearing an empty ledger is a no-op success
	n, err = s.repo.Clear(ctx)
	s.NoError(err)
	s.EqualValues(0, n)
}
