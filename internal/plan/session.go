package plan

// Transition functions for a single edit session. Each one takes the plan by
// value and returns a new value; the caller (a form frontend, the dev CLI,
// the handlers) holds exactly one current Plan and replaces it on every edit
// event. Nothing here touches storage.

// WithTotal sets the plan total and rederives the value of every row whose
// installment count is set. The rederived value overwrites whatever was in
// the row before, operator overrides included; the legacy behavior keeps no
// per-row override flag.
func (p Plan) WithTotal(total string) Plan {
	out := p.clone()
	out.Total = total
	for i, o := range out.Options {
		if o.Installments >= 1 {
			o.Value = DeriveValue(total, o.Installments)
			out.Options[i] = o
		}
	}
	return out
}

// WithInstallments changes one row's installment count and rederives only
// that row's value from the current total. Unknown indices are a no-op.
func (p Plan) WithInstallments(index, count int) Plan {
	o, ok := p.Options[index]
	if !ok {
		return p
	}
	out := p.clone()
	o.Installments = count
	o.Value = DeriveValue(out.Total, count)
	out.Options[index] = o
	return out
}

// WithOptionValue sets an explicit per-row value (operator override).
func (p Plan) WithOptionValue(index int, value string) Plan {
	o, ok := p.Options[index]
	if !ok {
		return p
	}
	out := p.clone()
	o.Value = value
	out.Options[index] = o
	return out
}

// WithDiscount sets one row's discount.
func (p Plan) WithDiscount(index int, discount string) Plan {
	o, ok := p.Options[index]
	if !ok {
		return p
	}
	out := p.clone()
	o.Discount = discount
	out.Options[index] = o
	return out
}

// AddOption appends a row at the lowest free slot, starting at the default
// installment count with its value derived from the current total.
func (p Plan) AddOption() Plan {
	out := p.clone()
	idx := NextSlot(out.Options)
	out.Options[idx] = Option{
		Installments: DefaultInstallments,
		Value:        DeriveValue(out.Total, DefaultInstallments),
	}
	return out
}

// RemoveOption drops a row. Remaining indices keep their slots; gaps are
// fine and stay addressable through SlotRange.
func (p Plan) RemoveOption(index int) Plan {
	if _, ok := p.Options[index]; !ok {
		return p
	}
	out := p.clone()
	delete(out.Options, index)
	return out
}

// AddTerm appends a promotional/contract clause.
func (p Plan) AddTerm(t Term) Plan {
	out := p.clone()
	out.Terms = append(out.Terms, t)
	return out
}

// RemoveTerm drops the clause at position i (0-based). Out-of-range is a
// no-op.
func (p Plan) RemoveTerm(i int) Plan {
	if i < 0 || i >= len(p.Terms) {
		return p
	}
	out := p.clone()
	out.Terms = append(out.Terms[:i], out.Terms[i+1:]...)
	return out
}

// InvalidDiscounts lists the rows currently violating the discount ceiling.
func (p Plan) InvalidDiscounts() []int {
	return InvalidDiscounts(p.Options, p.Total)
}

// CanSubmit is the submission gate: false while any row's discount exceeds
// its effective value.
func (p Plan) CanSubmit() bool {
	return !HasInvalidDiscount(p.Options, p.Total)
}
