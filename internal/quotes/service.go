package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
	"github.com/bmimportados/backoffice-backend/pkg/mailer"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

const notifyTimeout = 15 * time.Second

// Service exposes quote intake and listing to the controllers.
type Service interface {
	Intake(ctx context.Context, input IntakeInput) (*QuoteDTO, error)
	GetByID(ctx context.Context, id int64) (*QuoteDTO, error)
	List(ctx context.Context, input ListQuotesInput) (*pagination.Page[*QuoteDTO], error)
}

type service struct {
	repo       Repository
	tx         TxRunner
	notifier   Notifier
	quoteInbox string
	logg       *logger.Logger
}

// ServiceParams bundles the dependencies required to build a quotes service.
// Notifier may be nil; intake then skips the notification.
type ServiceParams struct {
	Repo       Repository
	Tx         TxRunner
	Notifier   Notifier
	QuoteInbox string
	Logger     *logger.Logger
}

// NewService builds a quotes service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quotes repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		repo:       params.Repo,
		tx:         params.Tx,
		notifier:   params.Notifier,
		quoteInbox: params.QuoteInbox,
		logg:       params.Logger,
	}, nil
}

// Intake validates and persists a submission, then fires the notification
// email after the transaction committed.
func (s *service) Intake(ctx context.Context, input IntakeInput) (*QuoteDTO, error) {
	if err := validateIntake(input); err != nil {
		return nil, err
	}

	quote := &models.Quote{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: input.CustomerPhone,
		Company:       input.Company,
		CNPJ:          input.CNPJ,
		Address:       input.Address,
		Note:          input.Note,
		Variant:       input.Variant,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, quote); err != nil {
			return err
		}

		items := make([]models.QuoteItem, 0, len(input.Items))
		for i, item := range input.Items {
			items = append(items, models.QuoteItem{
				QuoteID:   quote.ID,
				ProductID: item.ProductID,
				SKU:       strings.TrimSpace(item.SKU),
				Name:      strings.TrimSpace(item.Name),
				Price:     item.Price,
				Qty:       item.Qty,
				Image:     item.Image,
				Position:  i,
			})
		}
		return repo.CreateItems(ctx, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quote")
	}

	dto, err := s.GetByID(ctx, quote.ID)
	if err != nil {
		return nil, err
	}

	s.notifyIntake(dto)
	return dto, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*QuoteDTO, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return FromModel(quote), nil
}

func (s *service) List(ctx context.Context, input ListQuotesInput) (*pagination.Page[*QuoteDTO], error) {
	page, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}

	items := make([]*QuoteDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, FromModel(&page.Items[i]))
	}
	return &pagination.Page[*QuoteDTO]{Items: items, Total: page.Total}, nil
}

// notifyIntake sends the new-quote email without blocking the response. The
// quote is already committed; a failed send is only logged.
func (s *service) notifyIntake(quote *QuoteDTO) {
	if s.notifier == nil || s.quoteInbox == "" {
		return
	}

	msg := mailer.Message{
		To:      []string{s.quoteInbox},
		Subject: fmt.Sprintf("Novo orçamento #%d - %s", quote.ID, quote.CustomerName),
		HTML:    intakeEmailHTML(quote),
	}

	logg := s.logg
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(sendCtx, msg); err != nil && logg != nil {
			logg.Error(sendCtx, "quote notification failed", err)
		}
	}()
}

func intakeEmailHTML(quote *QuoteDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Novo orçamento #%d</h2>", quote.ID)
	fmt.Fprintf(&b, "<p><strong>Cliente:</strong> %s (%s)</p>", quote.CustomerName, quote.CustomerEmail)
	if quote.Company != nil {
		fmt.Fprintf(&b, "<p><strong>Empresa:</strong> %s</p>", *quote.Company)
	}
	fmt.Fprintf(&b, "<p><strong>Tipo:</strong> %s</p>", quote.Variant)
	b.WriteString("<ul>")
	for _, item := range quote.Items {
		fmt.Fprintf(&b, "<li>%dx %s (%s) - %s</li>", item.Qty, item.Name, item.SKU, item.Price.StringFixed(2))
	}
	b.WriteString("</ul>")
	if quote.Note != nil {
		fmt.Fprintf(&b, "<p><strong>Observação:</strong> %s</p>", *quote.Note)
	}
	return b.String()
}

func validateIntake(input IntakeInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customerName"] = "required"
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		details["customerEmail"] = "required"
	} else if !strings.Contains(email, "@") {
		details["customerEmail"] = "invalid"
	}
	if !input.Variant.IsValid() {
		details["variant"] = "invalid"
	}
	if len(input.Items) == 0 {
		details["items"] = "at least one item is required"
	}
	for i, item := range input.Items {
		switch {
		case strings.TrimSpace(item.SKU) == "":
			details[fmt.Sprintf("items[%d].sku", i)] = "required"
		case strings.TrimSpace(item.Name) == "":
			details[fmt.Sprintf("items[%d].name", i)] = "required"
		case item.Qty < 1:
			details[fmt.Sprintf("items[%d].qty", i)] = "must be at least 1"
		case item.Price.IsNegative():
			details[fmt.Sprintf("items[%d].price", i)] = "cannot be negative"
		}
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid quote submission").WithDetails(details)
	}
	return nil
}
