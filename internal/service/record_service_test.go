package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/cache"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/repository"
	"github.com/omkarh25/som/internal/repository/memory"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// countingStore tracks open sessions and can fail every repository call.
type countingStore struct {
	repository.Store
	open    int
	opened  int
	failErr error
}

func (s *countingStore) Session(ctx context.Context) (repository.Session, error) {
	inner, err := s.Store.Session(ctx)
	if err != nil {
		return nil, err
	}
	s.open++
	s.opened++
	return &countingSession{Session: inner, store: s}, nil
}

type countingSession struct {
	repository.Session
	store *countingStore
}

func (s *countingSession) Transactions() repository.Transactions {
	if s.store.failErr != nil {
		return failingTransactions{s.store.failErr}
	}
	return s.Session.Transactions()
}

func (s *countingSession) Close() error {
	s.store.open--
	return s.Session.Close()
}

type failingTransactions struct{ err error }

func (f failingTransactions) FindAll(context.Context, models.TransactionFilter) ([]models.Transaction, error) {
	return nil, f.err
}

func (f failingTransactions) FindByID(context.Context, int64) (*models.Transaction, error) {
	return nil, f.err
}

func (f failingTransactions) Create(context.Context, *models.Transaction) error {
	return f.err
}

func newService(t *testing.T) (*RecordService, *memory.Store, *countingStore) {
	t.Helper()
	mem := memory.NewStore()
	store := &countingStore{Store: mem}
	return NewRecordService(store, nil, quietLogger()), mem, store
}

func TestListTransactions_RejectsBadPageBeforeStore(t *testing.T) {
	svc, _, store := newService(t)

	for _, page := range []models.Page{{Skip: -1, Limit: 10}, {Skip: 0, Limit: 0}, {Skip: 0, Limit: 101}} {
		_, err := svc.ListTransactions(context.Background(), models.TransactionFilter{Page: page})
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("page %+v: expected validation error, got %v", page, err)
		}
	}
	if store.opened != 0 {
		t.Errorf("store should not be touched, %d sessions opened", store.opened)
	}
}

func TestListTransactions_FiltersAndReleases(t *testing.T) {
	svc, mem, store := newService(t)
	mem.InsertTransaction(models.Transaction{TrNo: 1, Date: day(2024, 1, 1), Department: "Eng"})
	mem.InsertTransaction(models.Transaction{TrNo: 2, Date: day(2024, 2, 1), Department: "Sales"})

	got, err := svc.ListTransactions(context.Background(), models.TransactionFilter{
		Page:       models.DefaultPage(),
		Department: models.Some("Eng"),
	})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(got) != 1 || got[0].TrNo != 1 {
		t.Errorf("expected [1], got %+v", got)
	}
	if store.open != 0 {
		t.Errorf("expected session released, %d still open", store.open)
	}
}

func TestStoreFailureIsWrappedAndReleased(t *testing.T) {
	svc, _, store := newService(t)
	cause := errors.New("connection refused")
	store.failErr = cause

	_, err := svc.ListTransactions(context.Background(), models.TransactionFilter{Page: models.DefaultPage()})
	var se *apperror.StoreError
	if !errors.As(err, &se) || se.Op != "list transactions" || !errors.Is(err, cause) {
		t.Errorf("expected StoreError wrapping cause, got %v", err)
	}

	_, err = svc.CreateTransaction(context.Background(), models.TransactionCreate{Date: day(2024, 1, 1)})
	if !errors.As(err, &se) || se.Op != "create transaction" {
		t.Errorf("expected StoreError from create, got %v", err)
	}
	if store.open != 0 {
		t.Errorf("expected every session released, %d still open", store.open)
	}
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	svc, _, _ := newService(t)
	in := models.TransactionCreate{
		Date:        time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC),
		Description: "Server rent",
		Amount:      1234.56,
		PaymentMode: "NEFT",
		AccID:       "UNKNOWN-ACC",
		Department:  "Ops",
		Comments:    models.Some(""),
		Category:    "Infra",
		Reconciled:  "partial",
	}

	created, err := svc.CreateTransaction(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if created.TrNo == 0 {
		t.Fatal("expected assigned trno")
	}

	got, err := svc.GetTransaction(context.Background(), created.TrNo)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	want := in.ToTransaction()
	want.TrNo = created.TrNo
	if !got.Date.Equal(want.Date) || got.Description != want.Description || got.Amount != want.Amount ||
		got.PaymentMode != want.PaymentMode || got.AccID != want.AccID || got.Department != want.Department ||
		got.Comments != want.Comments || got.Category != want.Category || got.Reconciled != want.Reconciled {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	svc, _, _ := newService(t)
	if _, err := svc.GetTransaction(context.Background(), 404); !apperror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGetAccount_FirstMatchAndNotFound(t *testing.T) {
	svc, mem, _ := newService(t)
	mem.InsertAccount(models.Account{Slno: 9, AccID: "DUP", AccountName: "second"})
	mem.InsertAccount(models.Account{Slno: 4, AccID: "DUP", AccountName: "first"})

	acc, err := svc.GetAccount(context.Background(), "DUP")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if acc.AccountName != "first" {
		t.Errorf("expected lowest slno to win, got %+v", acc)
	}
	if _, err := svc.GetAccount(context.Background(), "does-not-exist"); !apperror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListFreedom_Scenario(t *testing.T) {
	svc, mem, _ := newService(t)
	mem.InsertFreedom(models.Freedom{TrNo: 10, Date: day(2024, 3, 1), Paid: "N"})
	mem.InsertFreedom(models.Freedom{TrNo: 11, Date: day(2024, 1, 1), Paid: "Y"})

	got, err := svc.ListFreedom(context.Background(), models.FreedomFilter{Page: models.DefaultPage()})
	if err != nil {
		t.Fatalf("ListFreedom failed: %v", err)
	}
	if len(got) != 2 || got[0].TrNo != 11 || got[1].TrNo != 10 {
		t.Errorf("expected [11 10], got %+v", got)
	}
}

func TestExportTransactions_IgnoresPageAndCaps(t *testing.T) {
	svc, mem, _ := newService(t)
	for i := 1; i <= 5; i++ {
		mem.InsertTransaction(models.Transaction{Date: day(2024, 1, i)})
	}

	got, err := svc.ExportTransactions(context.Background(), models.TransactionFilter{Page: models.Page{Skip: -3, Limit: 0}}, 3)
	if err != nil {
		t.Fatalf("ExportTransactions failed: %v", err)
	}
	if len(got) != 3 || got[0].TrNo != 5 {
		t.Errorf("expected newest 3 rows, got %+v", got)
	}
}

func TestGetAccount_ServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mem := memory.NewStore()
	mem.InsertAccount(models.Account{AccID: "HDFC-01", Balance: 10, Comments: models.Some("salary")})
	store := &countingStore{Store: mem}
	svc := NewRecordService(store, cache.NewLookupCache(client, time.Minute, quietLogger()), quietLogger())

	for i := 0; i < 3; i++ {
		acc, err := svc.GetAccount(context.Background(), "HDFC-01")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if c, _ := acc.Comments.Get(); c != "salary" || acc.Balance != 10 {
			t.Errorf("unexpected account %+v", acc)
		}
	}
	if store.opened != 1 {
		t.Errorf("expected one store lookup, got %d", store.opened)
	}
}

// readBackFailingStore persists creates but fails every lookup by key.
type readBackFailingStore struct {
	repository.Store
}

func (s readBackFailingStore) Session(ctx context.Context) (repository.Session, error) {
	inner, err := s.Store.Session(ctx)
	if err != nil {
		return nil, err
	}
	return readBackFailingSession{inner}, nil
}

type readBackFailingSession struct {
	repository.Session
}

func (s readBackFailingSession) Transactions() repository.Transactions {
	return readBackFailingTransactions{s.Session.Transactions()}
}

type readBackFailingTransactions struct {
	repository.Transactions
}

func (readBackFailingTransactions) FindByID(context.Context, int64) (*models.Transaction, error) {
	return nil, errors.New("connection reset")
}

func TestCreateTransaction_ReadBackFailureReturnsWrittenRow(t *testing.T) {
	mem := memory.NewStore()
	svc := NewRecordService(readBackFailingStore{mem}, nil, quietLogger())

	created, err := svc.CreateTransaction(context.Background(), models.TransactionCreate{
		Date:        day(2024, 6, 1),
		Description: "Rent",
		Amount:      900,
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if created.TrNo == 0 || created.Description != "Rent" {
		t.Errorf("expected written row with assigned trno, got %+v", created)
	}

	rows, err := NewRecordService(mem, nil, quietLogger()).ListTransactions(context.Background(),
		models.TransactionFilter{Page: models.DefaultPage()})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected exactly one persisted row, got %d", len(rows))
	}
}
