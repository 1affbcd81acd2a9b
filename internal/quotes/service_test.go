package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/mailer"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

type fakeQuoteRepo struct {
	nextID int64
	quotes map[int64]*models.Quote
	items  map[int64][]models.QuoteItem

	createErr error
	itemsErr  error
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes: map[int64]*models.Quote{},
		items:  map[int64][]models.QuoteItem{},
	}
}

func (f *fakeQuoteRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeQuoteRepo) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	quote.ID = f.nextID
	quote.CreatedAt = time.Now()
	f.quotes[quote.ID] = quote
	return quote, nil
}

func (f *fakeQuoteRepo) CreateItems(ctx context.Context, items []models.QuoteItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	for _, item := range items {
		f.items[item.QuoteID] = append(f.items[item.QuoteID], item)
	}
	return nil
}

func (f *fakeQuoteRepo) FindByID(ctx context.Context, id int64) (*models.Quote, error) {
	quote, ok := f.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quote
	copied.Items = f.items[id]
	return &copied, nil
}

func (f *fakeQuoteRepo) List(ctx context.Context, input ListQuotesInput) (*pagination.Page[models.Quote], error) {
	var rows []models.Quote
	for id := f.nextID; id >= 1; id-- {
		if quote, ok := f.quotes[id]; ok {
			copied := *quote
			copied.Items = f.items[id]
			rows = append(rows, copied)
		}
	}
	return &pagination.Page[models.Quote]{Items: rows, Total: int64(len(rows))}, nil
}

type quotesFakeTxRunner struct {
	err error
}

func (f *quotesFakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type fakeNotifier struct {
	sent chan mailer.Message
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan mailer.Message, 1)}
}

func (f *fakeNotifier) Notify(ctx context.Context, msg mailer.Message) error {
	f.sent <- msg
	return f.err
}

func validIntakeInput() IntakeInput {
	return IntakeInput{
		CustomerName:  "Carlos Mendes",
		CustomerEmail: "carlos@example.com",
		Variant:       enums.VariantImported,
		Items: []ItemInput{
			{SKU: "GEAR-1", Name: "Engrenagem", Price: decimal.NewFromFloat(19.9), Qty: 2},
			{SKU: "BOLT-9", Name: "Parafuso", Price: decimal.NewFromFloat(0.5), Qty: 100},
		},
	}
}

func newQuotesService(t *testing.T, repo Repository, tx TxRunner, notifier Notifier, inbox string) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Tx: tx, Notifier: notifier, QuoteInbox: inbox})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestIntakeAssignsItemPositions(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "")

	input := validIntakeInput()
	input.Items = append(input.Items, ItemInput{SKU: "NUT-3", Name: "Porca", Qty: 1})

	dto, err := svc.Intake(context.Background(), input)
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}
	if len(dto.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(dto.Items))
	}
	for i, item := range dto.Items {
		if item.Position != i {
			t.Fatalf("item %d has position %d", i, item.Position)
		}
	}
	if dto.Items[0].SKU != "GEAR-1" || dto.Items[2].SKU != "NUT-3" {
		t.Fatalf("items out of submission order: %+v", dto.Items)
	}
}

func TestIntakeValidationDetails(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "")

	input := IntakeInput{
		CustomerEmail: "not-an-email",
		Variant:       enums.Variant("weird"),
		Items: []ItemInput{
			{SKU: "", Name: "Sem SKU", Qty: 1},
			{SKU: "OK-1", Name: "Ok", Qty: 0},
		},
	}

	_, err := svc.Intake(context.Background(), input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected string detail map, got %T", appErr.Details())
	}
	for _, field := range []string{"customerName", "customerEmail", "variant", "items[0].sku", "items[1].qty"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("missing detail for %q in %v", field, details)
		}
	}
	if len(repo.quotes) != 0 {
		t.Fatal("nothing should be persisted on validation failure")
	}
}

func TestIntakeRejectsWithoutItems(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "")

	input := validIntakeInput()
	input.Items = nil

	_, err := svc.Intake(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected string detail map, got %T", appErr.Details())
	}
	if _, ok := details["items"]; !ok {
		t.Fatalf("expected items detail, got %v", details)
	}
}

func TestIntakeNotifiesInboxAfterCommit(t *testing.T) {
	repo := newFakeQuoteRepo()
	notifier := newFakeNotifier()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, notifier, "vendas@example.com")

	dto, err := svc.Intake(context.Background(), validIntakeInput())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}

	select {
	case msg := <-notifier.sent:
		if len(msg.To) != 1 || msg.To[0] != "vendas@example.com" {
			t.Fatalf("unexpected recipients: %v", msg.To)
		}
		if msg.Subject == "" || msg.HTML == "" {
			t.Fatal("notification subject and body must be set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
	}

	if _, ok := repo.quotes[dto.ID]; !ok {
		t.Fatal("quote missing from store")
	}
}

func TestIntakeSkipsNotificationWithoutNotifier(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "vendas@example.com")

	if _, err := svc.Intake(context.Background(), validIntakeInput()); err != nil {
		t.Fatalf("Intake: %v", err)
	}
}

func TestIntakeTransactionFailure(t *testing.T) {
	repo := newFakeQuoteRepo()
	notifier := newFakeNotifier()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{err: gorm.ErrInvalidTransaction}, notifier, "vendas@example.com")

	_, err := svc.Intake(context.Background(), validIntakeInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}

	select {
	case <-notifier.sent:
		t.Fatal("no notification should fire when the transaction fails")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "")

	_, err := svc.GetByID(context.Background(), 42)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMapsQuotes(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := newQuotesService(t, repo, &quotesFakeTxRunner{}, nil, "")

	for i := 0; i < 2; i++ {
		if _, err := svc.Intake(context.Background(), validIntakeInput()); err != nil {
			t.Fatalf("Intake: %v", err)
		}
	}

	page, err := svc.List(context.Background(), ListQuotesInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].ID < page.Items[1].ID {
		t.Fatal("expected newest first")
	}
}
