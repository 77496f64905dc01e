package plan

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"

	"planservice/internal/money"
)

// Wire format of a plan: the flat, bracket-indexed key/value set the
// persistence layer has always spoken (application/x-www-form-urlencoded).
//
// Two quirks are load-bearing and deliberately preserved:
//
//  1. Select fields are emitted twice, flat and mirrored under a nested
//     `config` namespace, because a downstream reader still consumes the
//     nested copy.
//  2. The flat copy of monetary values is canonical ("600.00") while the
//     `config` mirror is display-masked ("R$ 600,00"). Decoding normalizes
//     either form back to canonical.

var (
	flatOptionRe   = regexp.MustCompile(`^parcelas\[(\d+)\]\[(parcela|tipo_entrada|entrada|juros|valor|desconto)\]$`)
	configOptionRe = regexp.MustCompile(`^config\[parcelas\]\[(\d+)\]\[(parcela|tipo_entrada|entrada|juros|valor|desconto)\]$`)
	configTermRe   = regexp.MustCompile(`^config\[tx2\]\[(\d+)\]\[(name_label|name_valor)\]$`)
)

// Encode flattens a plan into its wire payload. Monetary fields are written
// canonical in the flat keys and display-masked (per loc) in the config
// mirror.
func Encode(p Plan, loc money.Locale) url.Values {
	v := url.Values{}

	if p.ID != "" {
		v.Set("id", p.ID)
	}
	v.Set("id_curso", p.CourseID)
	v.Set("nome", p.Name)
	v.Set("valor", canonicalOrEmpty(p.Total))
	v.Set("ativo", FormatActiveFlag(p.Active))
	v.Set("tipo_curso", p.CourseType)
	if p.Note != "" {
		v.Set("obs", p.Note)
	}
	if p.UpdatedAt != "" {
		v.Set("atualizado", p.UpdatedAt)
	}

	v.Set("config[valor]", loc.ApplyMask(p.Total))
	v.Set("config[tipo_curso]", p.CourseType)

	for _, class := range p.ClassScope {
		v.Add("previsao_turma[]", class)
		v.Add("config[previsao_turma][]", class)
	}

	for _, i := range sortedIndices(p.Options) {
		o := p.Options[i]
		flat := "parcelas[" + strconv.Itoa(i) + "]"
		mirror := "config[parcelas][" + strconv.Itoa(i) + "]"

		v.Set(flat+"[parcela]", strconv.Itoa(o.Installments))
		v.Set(flat+"[tipo_entrada]", o.EntryType)
		v.Set(flat+"[entrada]", o.EntryValue)
		v.Set(flat+"[juros]", o.Interest)
		v.Set(flat+"[valor]", canonicalOrEmpty(o.Value))
		v.Set(flat+"[desconto]", canonicalOrEmpty(o.Discount))

		v.Set(mirror+"[parcela]", strconv.Itoa(o.Installments))
		v.Set(mirror+"[tipo_entrada]", o.EntryType)
		v.Set(mirror+"[entrada]", o.EntryValue)
		v.Set(mirror+"[juros]", o.Interest)
		v.Set(mirror+"[valor]", loc.ApplyMask(o.Value))
		v.Set(mirror+"[desconto]", canonicalOrEmpty(o.Discount))
	}

	for i, t := range p.Terms {
		key := "config[tx2][" + strconv.Itoa(i) + "]"
		v.Set(key+"[name_label]", t.Label)
		v.Set(key+"[name_valor]", t.Text)
	}

	return v
}

// Decode hydrates a plan from a wire payload. Flat `parcelas`/
// `previsao_turma` keys win over the `config` mirrors; when neither yields a
// row the plan gets the single default row a new form starts with.
func Decode(v url.Values) Plan {
	p := Plan{
		ID:         v.Get("id"),
		CourseID:   v.Get("id_curso"),
		Name:       v.Get("nome"),
		Total:      canonicalOrEmpty(v.Get("valor")),
		Active:     ParseActiveFlag(v.Get("ativo")),
		CourseType: v.Get("tipo_curso"),
		Note:       v.Get("obs"),
		UpdatedAt:  v.Get("atualizado"),
	}
	if p.Total == "" {
		p.Total = canonicalOrEmpty(v.Get("config[valor]"))
	}
	if p.CourseType == "" {
		p.CourseType = v.Get("config[tipo_curso]")
	}

	if scope := v["previsao_turma[]"]; len(scope) > 0 {
		p.ClassScope = append([]string(nil), scope...)
	} else if scope := v["config[previsao_turma][]"]; len(scope) > 0 {
		p.ClassScope = append([]string(nil), scope...)
	}

	p.Options = decodeOptions(v, flatOptionRe)
	if len(p.Options) == 0 {
		p.Options = decodeOptions(v, configOptionRe)
	}
	if len(p.Options) == 0 {
		p.Options = map[int]Option{1: {Installments: DefaultInstallments}}
	}

	p.Terms = decodeTerms(v)
	return p
}

func decodeOptions(v url.Values, re *regexp.Regexp) map[int]Option {
	out := map[int]Option{}
	for key := range v {
		m := re.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx < 1 {
			continue
		}
		o := out[idx]
		val := v.Get(key)
		switch m[2] {
		case "parcela":
			o.Installments, _ = strconv.Atoi(val)
		case "tipo_entrada":
			o.EntryType = val
		case "entrada":
			o.EntryValue = val
		case "juros":
			o.Interest = val
		case "valor":
			o.Value = canonicalOrEmpty(val)
		case "desconto":
			o.Discount = canonicalOrEmpty(val)
		}
		out[idx] = o
	}
	return out
}

func decodeTerms(v url.Values) []Term {
	byIdx := map[int]Term{}
	for key := range v {
		m := configTermRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		t := byIdx[idx]
		if m[2] == "name_label" {
			t.Label = v.Get(key)
		} else {
			t.Text = v.Get(key)
		}
		byIdx[idx] = t
	}
	if len(byIdx) == 0 {
		return nil
	}

	idxs := make([]int, 0, len(byIdx))
	for i := range byIdx {
		idxs = append(idxs, i)
	}
	// positions are 0-based and contiguous on encode, but tolerate gaps
	sort.Ints(idxs)
	out := make([]Term, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, byIdx[i])
	}
	return out
}

// canonicalOrEmpty normalizes any monetary spelling (canonical, comma-decimal
// or fully masked) to the canonical dot-decimal form; input with no numeric
// content collapses to "".
func canonicalOrEmpty(s string) string {
	d, ok := money.Parse(s)
	if !ok {
		return ""
	}
	return money.Canonical(d)
}
