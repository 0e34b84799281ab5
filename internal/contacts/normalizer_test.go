package contacts_test

import (
	"testing"

	"github.com/example/campaign-dispatch/internal/contacts"
)

func TestParseHeaderMappedFile(t *testing.T) {
	raw := "name,email,phone\nJane Doe,jane@x.com,555-1212\n,not-an-email,\n"

	result := contacts.Parse(raw)

	if result.Strategy != contacts.StrategyMapped {
		t.Fatalf("expected mapped strategy, got %s", result.Strategy)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Email != "jane@x.com" {
		t.Fatalf("unexpected email: %q", rec.Email)
	}
	if rec.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", rec.Name)
	}
	if rec.Phone != "555-1212" {
		t.Fatalf("unexpected phone: %q", rec.Phone)
	}
	if rec.Company != "" {
		t.Fatalf("expected empty company, got %q", rec.Company)
	}
}

func TestParseHeaderColumnWins(t *testing.T) {
	// The mapped email column wins even when another column also looks
	// like an address.
	raw := "Email Address,Backup Mail\nfirst@x.com,second@y.com\n"

	result := contacts.Parse(raw)

	if result.Strategy != contacts.StrategyMapped {
		t.Fatalf("expected mapped strategy, got %s", result.Strategy)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}
	if result.Records[0].Email != "first@x.com" {
		t.Fatalf("expected first column email, got %q", result.Records[0].Email)
	}
}

func TestParseHeadless(t *testing.T) {
	raw := "Jon Snow,jon@winterfell.org,+1 (555) 123-4567\nno-at-sign-here,42,\n"

	result := contacts.Parse(raw)

	if result.Strategy != contacts.StrategyHeuristic {
		t.Fatalf("expected heuristic strategy, got %s", result.Strategy)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Email != "jon@winterfell.org" {
		t.Fatalf("unexpected email: %q", rec.Email)
	}
	if rec.Name != "Jon Snow" {
		t.Fatalf("unexpected name: %q", rec.Name)
	}
	if rec.Phone != "+1 (555) 123-4567" {
		t.Fatalf("unexpected phone: %q", rec.Phone)
	}
	if rec.Company != "" {
		t.Fatalf("company must stay empty without a header mapping, got %q", rec.Company)
	}
}

func TestParseHeadlessNameNeverContainsAt(t *testing.T) {
	raw := "someone@x.com,Alice\nbob@y.org,99\n"

	result := contacts.Parse(raw)

	if len(result.Records) != 2 {
		t.Fatalf("expected two records, got %d", len(result.Records))
	}
	if result.Records[0].Name != "Alice" {
		t.Fatalf("expected Alice as name, got %q", result.Records[0].Name)
	}
	// Purely numeric columns never become names.
	if result.Records[1].Name != "" {
		t.Fatalf("expected empty name for numeric-only row, got %q", result.Records[1].Name)
	}
}

func TestParseQuotedColumns(t *testing.T) {
	raw := "\"name\",\"email\"\n\"Doe, Jane\",\"jane@x.com\"\n"

	result := contacts.Parse(raw)

	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}
	if result.Records[0].Name != "Doe, Jane" {
		t.Fatalf("expected quoted comma preserved in name, got %q", result.Records[0].Name)
	}
	if result.Records[0].Email != "jane@x.com" {
		t.Fatalf("unexpected email: %q", result.Records[0].Email)
	}
}

func TestParseCompanyMapping(t *testing.T) {
	raw := "email,organization\njane@x.com,Acme Ltd\n"

	result := contacts.Parse(raw)

	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}
	if result.Records[0].Company != "Acme Ltd" {
		t.Fatalf("expected organization header to map company, got %q", result.Records[0].Company)
	}
}

func TestParseDropsRowsWithoutEmail(t *testing.T) {
	raw := "email,name\n,NoEmail\nbroken-address,Other\nok@x.com,Fine\n"

	result := contacts.Parse(raw)

	if len(result.Records) != 1 {
		t.Fatalf("expected rows without a usable email to be dropped, got %d records", len(result.Records))
	}
	if result.Records[0].Email != "ok@x.com" {
		t.Fatalf("unexpected surviving record: %+v", result.Records[0])
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "   \n\t\n"} {
		result := contacts.Parse(raw)
		if len(result.Records) != 0 {
			t.Fatalf("expected no records for %q, got %d", raw, len(result.Records))
		}
	}
}

func TestParseIsPure(t *testing.T) {
	raw := "name,email\nJane,jane@x.com\n"

	first := contacts.Parse(raw)
	second := contacts.Parse(raw)

	if len(first.Records) != len(second.Records) || first.Strategy != second.Strategy {
		t.Fatalf("expected identical results: %+v vs %+v", first, second)
	}
	if first.Records[0] != second.Records[0] {
		t.Fatalf("expected identical records: %+v vs %+v", first.Records[0], second.Records[0])
	}
}
