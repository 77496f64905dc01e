package plan

import (
	"fmt"
	"strings"
)

// DefaultInstallments is the installment count of the single row a brand-new
// plan starts with.
const DefaultInstallments = 6

// MaxInstallments bounds the `parcela` field of a row.
const MaxInstallments = 12

// Plan is one payment-plan template ("tabela de parcelamento"), optionally
// scoped to a subset of a course's class offerings.
//
// Monetary fields hold canonical dot-decimal strings ("600.00"); the empty
// string means unset. Locale masking happens only at the wire/display
// boundary (see wire.go). An empty ClassScope means the plan applies to every
// class of the course; it is a meaningful value, not a missing one.
type Plan struct {
	ID         string
	CourseID   string
	Name       string
	Total      string
	Active     bool
	CourseType string // legacy categorization scheme, carried verbatim
	Note       string
	UpdatedAt  string
	ClassScope []string
	Options    map[int]Option
	Terms      []Term
}

// Option is one row of a plan, keyed in Plan.Options by its 1-based slot
// index ("opção"). EntryType, EntryValue and Interest are supplementary terms
// carried through untouched.
type Option struct {
	Installments int    `json:"parcela"`
	EntryType    string `json:"tipo_entrada,omitempty"`
	EntryValue   string `json:"entrada,omitempty"`
	Interest     string `json:"juros,omitempty"`
	Value        string `json:"valor,omitempty"`
	Discount     string `json:"desconto,omitempty"`
}

// Term is a free-form promotional/contract clause attached to a plan.
type Term struct {
	Label string `json:"name_label"`
	Text  string `json:"name_valor"`
}

// New returns the empty plan an operator starts editing from: active, with a
// single default row.
func New(courseID string) Plan {
	return Plan{
		CourseID: courseID,
		Active:   true,
		Options:  map[int]Option{1: {Installments: DefaultInstallments}},
	}
}

// clone deep-copies the mutable parts so transition functions can return a
// new value without aliasing the receiver's maps and slices.
func (p Plan) clone() Plan {
	out := p
	out.Options = make(map[int]Option, len(p.Options))
	for i, o := range p.Options {
		out.Options[i] = o
	}
	if p.ClassScope != nil {
		out.ClassScope = append([]string(nil), p.ClassScope...)
	}
	if p.Terms != nil {
		out.Terms = append([]Term(nil), p.Terms...)
	}
	return out
}

// ParseActiveFlag reads the legacy tri-state `ativo` field. Historic records
// carry 's', 'y' or 'n'; anything unrecognized counts as active.
func ParseActiveFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "0", "false":
		return false
	default:
		return true
	}
}

// FormatActiveFlag renders the wire form of the active flag.
func FormatActiveFlag(active bool) string {
	if active {
		return "s"
	}
	return "n"
}

// ValidationError is a structural problem with a plan payload, keyed per
// wire field so callers can surface it next to the offending input.
type ValidationError struct {
	Code   string
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return fmt.Sprintf("%s: %d field(s)", e.Code, len(e.Fields))
}

// Validate checks a plan ahead of persistence. It returns nil when the plan
// is acceptable; otherwise a ValidationError listing every offending field.
// Messages are operator-facing and therefore in the product language.
func Validate(p Plan) error {
	fields := map[string][]string{}

	if strings.TrimSpace(p.Name) == "" {
		fields["nome"] = append(fields["nome"], "informe o nome da tabela")
	}
	if strings.TrimSpace(p.CourseID) == "" {
		fields["id_curso"] = append(fields["id_curso"], "informe o curso")
	}
	for _, i := range sortedIndices(p.Options) {
		o := p.Options[i]
		if o.Installments < 1 || o.Installments > MaxInstallments {
			key := fmt.Sprintf("parcelas[%d][parcela]", i)
			fields[key] = append(fields[key], fmt.Sprintf("número de parcelas deve estar entre 1 e %d", MaxInstallments))
		}
	}
	for _, i := range InvalidDiscounts(p.Options, p.Total) {
		key := fmt.Sprintf("parcelas[%d][desconto]", i)
		fields[key] = append(fields[key], "o desconto não pode ser maior que o valor da parcela")
	}

	if len(fields) > 0 {
		return &ValidationError{Code: "VALIDATION_FAILED", Fields: fields}
	}
	return nil
}
