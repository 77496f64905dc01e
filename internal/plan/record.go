package plan

import (
	"strconv"

	"planservice/internal/money"
)

// Record is the JSON shape the service returns for a persisted plan. It
// mirrors the wire format's dual flat/nested layout: row and scope data
// appear both top-level and inside `config`, with the config copy of
// monetary values display-masked.
type Record struct {
	ID         string                  `json:"id,omitempty"`
	CourseID   string                  `json:"id_curso"`
	Name       string                  `json:"nome"`
	Total      string                  `json:"valor"`
	Active     string                  `json:"ativo"`
	CourseType string                  `json:"tipo_curso"`
	Note       string                  `json:"obs,omitempty"`
	UpdatedAt  string                  `json:"atualizado,omitempty"`
	ClassScope []string                `json:"previsao_turma,omitempty"`
	Options    map[string]OptionRecord `json:"parcelas,omitempty"`
	Config     RecordConfig            `json:"config"`
}

type RecordConfig struct {
	Total      string                  `json:"valor,omitempty"`
	CourseType string                  `json:"tipo_curso,omitempty"`
	ClassScope []string                `json:"previsao_turma,omitempty"`
	Options    map[string]OptionRecord `json:"parcelas,omitempty"`
	Terms      []Term                  `json:"tx2,omitempty"`
}

type OptionRecord struct {
	Installments string `json:"parcela"`
	EntryType    string `json:"tipo_entrada,omitempty"`
	EntryValue   string `json:"entrada,omitempty"`
	Interest     string `json:"juros,omitempty"`
	Value        string `json:"valor,omitempty"`
	Discount     string `json:"desconto,omitempty"`
}

// ToRecord renders a plan in the service's response shape.
func ToRecord(p Plan, loc money.Locale) Record {
	rec := Record{
		ID:         p.ID,
		CourseID:   p.CourseID,
		Name:       p.Name,
		Total:      p.Total,
		Active:     FormatActiveFlag(p.Active),
		CourseType: p.CourseType,
		Note:       p.Note,
		UpdatedAt:  p.UpdatedAt,
		ClassScope: p.ClassScope,
		Options:    map[string]OptionRecord{},
		Config: RecordConfig{
			Total:      loc.ApplyMask(p.Total),
			CourseType: p.CourseType,
			ClassScope: p.ClassScope,
			Options:    map[string]OptionRecord{},
			Terms:      p.Terms,
		},
	}

	for _, i := range sortedIndices(p.Options) {
		o := p.Options[i]
		key := strconv.Itoa(i)
		rec.Options[key] = OptionRecord{
			Installments: strconv.Itoa(o.Installments),
			EntryType:    o.EntryType,
			EntryValue:   o.EntryValue,
			Interest:     o.Interest,
			Value:        o.Value,
			Discount:     o.Discount,
		}
		mirror := rec.Options[key]
		mirror.Value = loc.ApplyMask(o.Value)
		rec.Config.Options[key] = mirror
	}

	return rec
}

// FromRecord hydrates a plan from a persisted record, applying the same
// precedence as Decode: top-level rows and scope win over the config
// mirrors, and a record with no rows at all yields the default single row.
func FromRecord(rec Record) Plan {
	p := Plan{
		ID:         rec.ID,
		CourseID:   rec.CourseID,
		Name:       rec.Name,
		Total:      canonicalOrEmpty(rec.Total),
		Active:     ParseActiveFlag(rec.Active),
		CourseType: rec.CourseType,
		Note:       rec.Note,
		UpdatedAt:  rec.UpdatedAt,
	}
	if p.Total == "" {
		p.Total = canonicalOrEmpty(rec.Config.Total)
	}
	if p.CourseType == "" {
		p.CourseType = rec.Config.CourseType
	}

	if len(rec.ClassScope) > 0 {
		p.ClassScope = append([]string(nil), rec.ClassScope...)
	} else if len(rec.Config.ClassScope) > 0 {
		p.ClassScope = append([]string(nil), rec.Config.ClassScope...)
	}

	p.Options = optionsFromRecords(rec.Options)
	if len(p.Options) == 0 {
		p.Options = optionsFromRecords(rec.Config.Options)
	}
	if len(p.Options) == 0 {
		p.Options = map[int]Option{1: {Installments: DefaultInstallments}}
	}

	if len(rec.Config.Terms) > 0 {
		p.Terms = append([]Term(nil), rec.Config.Terms...)
	}
	return p
}

func optionsFromRecords(recs map[string]OptionRecord) map[int]Option {
	out := map[int]Option{}
	for key, r := range recs {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 1 {
			continue
		}
		count, _ := strconv.Atoi(r.Installments)
		out[idx] = Option{
			Installments: count,
			EntryType:    r.EntryType,
			EntryValue:   r.EntryValue,
			Interest:     r.Interest,
			Value:        canonicalOrEmpty(r.Value),
			Discount:     canonicalOrEmpty(r.Discount),
		}
	}
	return out
}
