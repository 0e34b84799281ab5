package contacts

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/campaign-dispatch/internal/models"
)

// Strategy tags how column meanings were assigned for a parsed file, so
// callers and tests can tell a header-driven mapping from positional
// guessing apart.
type Strategy string

const (
	// StrategyMapped means a header row was detected and semantic fields
	// were bound to explicit column indexes.
	StrategyMapped Strategy = "mapped"
	// StrategyHeuristic means no header row was found and fields were
	// recovered by scanning column values.
	StrategyHeuristic Strategy = "heuristic"
)

// Result is the outcome of normalizing one raw contact file.
type Result struct {
	Records  []models.ContactRecord
	Strategy Strategy
}

// Header token substrings per semantic field. A column maps to the first
// field whose token set matches it.
var (
	emailTokens   = []string{"email", "mail"}
	nameTokens    = []string{"name"}
	companyTokens = []string{"company", "organization"}
	phoneTokens   = []string{"phone", "mobile", "tel"}
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s()\-]+$`)

type columnMap struct {
	email   int
	name    int
	company int
	phone   int
}

// Parse turns a raw delimited-text blob into normalized contact records.
// The file may or may not carry a header row; when the first line contains
// a recognizable header token the remaining lines are read through the
// resulting column mapping, otherwise every line is data and fields are
// recovered heuristically. Rows without a usable email address are dropped
// silently. Parse is a pure function of its input: empty input or zero
// valid rows simply yield an empty record slice, and deciding whether that
// is a user-facing error is the caller's job.
func Parse(raw string) Result {
	lines := nonEmptyLines(raw)
	if len(lines) == 0 {
		return Result{Strategy: StrategyHeuristic}
	}

	first := splitColumns(lines[0])
	mapping, hasHeaders := detectHeaders(first)

	strategy := StrategyHeuristic
	start := 0
	if hasHeaders {
		strategy = StrategyMapped
		start = 1
	}

	var records []models.ContactRecord
	for _, line := range lines[start:] {
		cols := splitColumns(line)
		if rec, ok := buildRecord(cols, mapping, hasHeaders); ok {
			records = append(records, rec)
		}
	}

	return Result{Records: records, Strategy: strategy}
}

func buildRecord(cols []string, mapping columnMap, hasHeaders bool) (models.ContactRecord, bool) {
	email := ""
	if hasHeaders && mapping.email >= 0 {
		email = columnAt(cols, mapping.email)
	}
	if email == "" {
		email = firstMatch(cols, looksLikeEmail)
	}
	if !looksLikeEmail(email) {
		return models.ContactRecord{}, false
	}

	rec := models.ContactRecord{Email: email}

	if hasHeaders {
		if mapping.name >= 0 {
			rec.Name = columnAt(cols, mapping.name)
		}
		// Company is never guessed; it only exists under a header mapping.
		if mapping.company >= 0 {
			rec.Company = columnAt(cols, mapping.company)
		}
		if mapping.phone >= 0 {
			rec.Phone = columnAt(cols, mapping.phone)
		} else {
			rec.Phone = firstMatch(cols, looksLikePhone)
		}
		return rec, true
	}

	rec.Name = firstMatch(cols, looksLikeName)
	rec.Phone = firstMatch(cols, looksLikePhone)
	return rec, true
}

func detectHeaders(first []string) (columnMap, bool) {
	mapping := columnMap{email: -1, name: -1, company: -1, phone: -1}

	lowered := make([]string, len(first))
	hasHeaders := false
	for i, col := range first {
		lowered[i] = strings.ToLower(col)
		if containsAny(lowered[i], emailTokens) ||
			containsAny(lowered[i], nameTokens) ||
			containsAny(lowered[i], companyTokens) ||
			containsAny(lowered[i], phoneTokens) {
			hasHeaders = true
		}
	}
	if !hasHeaders {
		return mapping, false
	}

	mapping.email = indexOfToken(lowered, emailTokens)
	mapping.name = indexOfToken(lowered, nameTokens)
	mapping.company = indexOfToken(lowered, companyTokens)
	mapping.phone = indexOfToken(lowered, phoneTokens)
	return mapping, true
}

func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitColumns reads one line as CSV with lenient quoting, falling back to
// a plain comma split for lines the reader rejects. Columns are trimmed and
// stripped of stray quote characters to tolerate hand-edited files.
func splitColumns(line string) []string {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	cols, err := reader.Read()
	if err != nil {
		cols = strings.Split(line, ",")
	}

	for i, col := range cols {
		cols[i] = strings.Trim(strings.TrimSpace(col), `'"`)
	}
	return cols
}

func indexOfToken(lowered []string, tokens []string) int {
	for i, col := range lowered {
		if containsAny(col, tokens) {
			return i
		}
	}
	return -1
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func columnAt(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}

func firstMatch(cols []string, match func(string) bool) string {
	for _, col := range cols {
		if col != "" && match(col) {
			return col
		}
	}
	return ""
}

func looksLikeEmail(s string) bool {
	return s != "" && strings.Contains(s, "@") && strings.Contains(s, ".")
}

// looksLikeName accepts any value that is neither an address nor purely
// numeric.
func looksLikeName(s string) bool {
	if strings.Contains(s, "@") {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}

func looksLikePhone(s string) bool {
	return phonePattern.MatchString(s) && strings.ContainsAny(s, "0123456789")
}
