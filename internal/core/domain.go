package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Order statuses the shop tracks between intake and delivery.
const (
	StatusNotStarted = "não iniciado"
	StatusInProgress = "em andamento"
	StatusDone       = "concluído"
	StatusDelivered  = "entregue"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Service is an item of the shop's catalogue (business cards,
	// banners, invitations...). Price seeds the order form but each
	// order keeps its own amount.
	Service struct {
		ID          string
		Name        string
		Description string
		Price       Money
		Active      bool
	}

	// Order is a customer encomenda.
	Order struct {
		ID           string
		OrderName    string
		CustomerName string
		ServiceID    string // optional reference into the catalogue
		Amount       Money
		ReceivedDate Date
		DeliveryDate Date
		Status       string
		Paid         bool
	}

	// Transaction is an ad-hoc income or expense entry outside the
	// order flow (supplies, rent, one-off jobs).
	Transaction struct {
		ID          string
		Type        TransactionType
		Amount      Money
		Description string
		Date        Date
		ServiceID   string // optional reference into the catalogue
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the wire format YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (s Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := s.Price.Validate(); err != nil {
		return err
	}
	return nil
}

func (o Order) Validate() error {
	if strings.TrimSpace(o.OrderName) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return errors.New("empty customer name")
	}
	if err := o.Amount.Validate(); err != nil {
		return err
	}
	if err := o.ReceivedDate.Validate(); err != nil {
		return errors.New("invalid received date: " + err.Error())
	}
	if !o.DeliveryDate.IsZero() && o.DeliveryDate.Before(o.ReceivedDate.Time) {
		return errors.New("delivery date before received date")
	}
	if strings.TrimSpace(o.Status) == "" {
		return errors.New("empty status")
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}
