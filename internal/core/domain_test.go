package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-15", true},
		{"2024-12-31", true},
		{" 2024-01-01 ", true},
		{"15/03/2024", false},
		{"2024-13-01", false},
		{"not-a-date", false},
		{"", false},
	}
	for i, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestOrderValidate(t *testing.T) {
	good := Order{
		OrderName:    "Cartões de visita",
		CustomerName: "Maria",
		Amount:       Money{Cents: 15000},
		ReceivedDate: NewDate(2024, 3, 1),
		DeliveryDate: NewDate(2024, 3, 10),
		Status:       StatusNotStarted,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Order{
		{CustomerName: "Maria", Amount: Money{Cents: 1}, ReceivedDate: NewDate(2024, 3, 1), Status: StatusNotStarted},
		{OrderName: "x", Amount: Money{Cents: 1}, ReceivedDate: NewDate(2024, 3, 1), Status: StatusNotStarted},
		{OrderName: "x", CustomerName: "y", Amount: Money{Cents: 0}, ReceivedDate: NewDate(2024, 3, 1), Status: StatusNotStarted},
		{OrderName: "x", CustomerName: "y", Amount: Money{Cents: 1}, Status: StatusNotStarted}, // zero received date
		{OrderName: "x", CustomerName: "y", Amount: Money{Cents: 1}, ReceivedDate: NewDate(2024, 3, 10), DeliveryDate: NewDate(2024, 3, 1), Status: StatusNotStarted},
		{OrderName: "x", CustomerName: "y", Amount: Money{Cents: 1}, ReceivedDate: NewDate(2024, 3, 1), Status: ""},
	}
	for i, o := range bads {
		if err := o.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:        Expense,
		Amount:      Money{Cents: 4200},
		Description: "papel A4",
		Date:        NewDate(2024, 3, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "refund", Amount: Money{Cents: 1}, Description: "a", Date: NewDate(2024, 1, 1)},
		{Type: Income, Amount: Money{Cents: 0}, Description: "a", Date: NewDate(2024, 1, 1)},
		{Type: Income, Amount: Money{Cents: 1}, Description: "", Date: NewDate(2024, 1, 1)},
		{Type: Income, Amount: Money{Cents: 1}, Description: "a", Date: Date{Time: time.Time{}}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestServiceValidate(t *testing.T) {
	if err := (Service{Name: "Banner", Price: Money{Cents: 8000}, Active: true}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Service{Name: "", Price: Money{Cents: 8000}}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := (Service{Name: "Banner", Price: Money{Cents: 0}}).Validate(); err == nil {
		t.Fatalf("expected error for zero price")
	}
}
