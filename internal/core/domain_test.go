package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{`"2025-03-15"`, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{`"2025-03-15T18:30:00Z"`, time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC), true},
		{`"2025-03-15T23:30:00+05:30"`, time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC), true},
		{`""`, time.Time{}, false},
		{`null`, time.Time{}, false},
		{`"not a date"`, time.Time{}, false},
	}
	for _, tc := range cases {
		var d Date
		err := json.Unmarshal([]byte(tc.in), &d)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: %v", tc.in, err)
			}
			if !d.Equal(tc.want) {
				t.Errorf("%s = %v, want %v", tc.in, d.Time, tc.want)
			}
		} else if err == nil {
			t.Errorf("%s: expected error", tc.in)
		}
	}
}

func TestDateMarshalUTC(t *testing.T) {
	zone := time.FixedZone("+0530", 5*3600+30*60)
	d := Date{Time: time.Date(2025, 3, 15, 23, 30, 0, 0, zone)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-03-15T18:00:00Z"` {
		t.Fatalf("marshal = %s", b)
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Date:        NewDate(2025, 3, 15),
		Description: "Lunch",
		Category:    CategoryFood,
		Amount:      Money{Cents: 1250},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Expense)
		want error
	}{
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrZeroDate},
		{"negative amount", func(e *Expense) { e.Amount.Cents = -1 }, ErrNegativeAmount},
		{"long description", func(e *Expense) { e.Description = strings.Repeat("x", 201) }, ErrDescriptionLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mut(&e)
			if err := e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	// Zero amount and unknown category are both fine.
	e := valid
	e.Amount.Cents = 0
	e.Category = "Gadgets"
	if err := e.Validate(); err != nil {
		t.Fatalf("zero amount / free-form category rejected: %v", err)
	}
}

func TestExpenseNormalize(t *testing.T) {
	e := Expense{Date: NewDate(2025, 3, 15)}
	e.Normalize()
	if e.Description != DefaultDescription {
		t.Errorf("description = %q", e.Description)
	}
	if e.Category != CategoryGeneral {
		t.Errorf("category = %q", e.Category)
	}

	e = Expense{Date: NewDate(2025, 3, 15), Description: "Bus", Category: CategoryTransport}
	e.Normalize()
	if e.Description != "Bus" || e.Category != CategoryTransport {
		t.Errorf("normalize clobbered provided fields: %+v", e)
	}
}
