package core

import (
	"encoding/json"
	"testing"
)

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		ID:          "t1",
		Amount:      12.5,
		Description: "groceries",
		Date:        NewDate(2026, 3, 14),
		Category:    CategoryFood,
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}, wantErr: nil},
		{name: "empty id", mutate: func(tx *Transaction) { tx.ID = " " }, wantErr: ErrEmptyID},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = -1 }, wantErr: ErrInvalidAmount},
		{name: "empty description", mutate: func(tx *Transaction) { tx.Description = "" }, wantErr: ErrEmptyDescription},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = Date{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecurringTransaction_Validate(t *testing.T) {
	rt := RecurringTransaction{
		Transaction: Transaction{
			ID:          "r1",
			Amount:      50,
			Description: "rent",
			Date:        NewDate(2026, 1, 1),
		},
	}
	if err := rt.Validate(); err != ErrInvalidDate {
		t.Fatalf("Validate() without start date = %v, want %v", err, ErrInvalidDate)
	}
	rt.StartDate = NewDate(2026, 1, 1)
	if err := rt.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"2026-03-14", true, "2026-03-14"},
		{"2026-03-14T09:30:00Z", true, "2026-03-14"},
		{"", false, ""},
		{"null", false, ""},
		{"not-a-date", false, ""},
		{"14/03/2026", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := ParseDate(tt.in)
			if d.Valid() != tt.valid {
				t.Fatalf("ParseDate(%q).Valid() = %v, want %v", tt.in, d.Valid(), tt.valid)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	tx := Transaction{
		ID:          "t1",
		Amount:      3,
		Description: "coffee",
		Date:        NewDate(2026, 7, 2),
	}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Date.String() != "2026-07-02" {
		t.Errorf("round-trip date = %q, want %q", back.Date.String(), "2026-07-02")
	}
}

func TestDate_UnmarshalMalformedIsLenient(t *testing.T) {
	// A broken date must not abort decoding the record; the engine later
	// excludes the record from every aggregate.
	var tx Transaction
	if err := json.Unmarshal([]byte(`{"id":"x","amount":5,"description":"d","date":"86-13-99"}`), &tx); err != nil {
		t.Fatalf("unmarshal with malformed date: %v", err)
	}
	if tx.Date.Valid() {
		t.Error("malformed date should decode as the zero date")
	}
}

func TestBalances_NetWorth(t *testing.T) {
	tests := []struct {
		name string
		b    Balances
		want float64
	}{
		{"simple", Balances{Bank: "1000", Debt: "200"}, 800},
		{"decimal comma", Balances{Bank: "1000,50", Debt: "0"}, 1000.50},
		{"unparsable debt counts as zero", Balances{Bank: "100", Debt: "abc"}, 100},
		{"both empty", Balances{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.NetWorth(); got != tt.want {
				t.Errorf("NetWorth() = %v, want %v", got, tt.want)
			}
		})
	}
}
