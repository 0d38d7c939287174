package entry

// Patch is a partial update. Nil fields are left untouched; set fields replace
// the existing value wholesale, sequences included.
type Patch struct {
	Todos        *[]Todo    `json:"todos,omitempty"`
	Expenses     *[]Expense `json:"expenses,omitempty"`
	Insight      *string    `json:"insight,omitempty"`
	Media        *[]Media   `json:"media,omitempty"`
	MyDaySummary *string    `json:"myDaySummary,omitempty"`
}

// SetTodos replaces the checklist.
func SetTodos(todos ...Todo) Patch {
	v := append([]Todo{}, todos...)
	return Patch{Todos: &v}
}

// SetExpenses replaces the expense lines.
func SetExpenses(expenses ...Expense) Patch {
	v := append([]Expense{}, expenses...)
	return Patch{Expenses: &v}
}

// SetInsight replaces the free-form note.
func SetInsight(insight string) Patch {
	return Patch{Insight: &insight}
}

// SetMedia replaces the attachments.
func SetMedia(items ...Media) Patch {
	v := append([]Media{}, items...)
	return Patch{Media: &v}
}

// SetSummary replaces the generated one-line summary.
func SetSummary(summary string) Patch {
	return Patch{MyDaySummary: &summary}
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Todos == nil && p.Expenses == nil && p.Insight == nil &&
		p.Media == nil && p.MyDaySummary == nil
}

// Validate checks the values the patch would install.
func (p Patch) Validate() error {
	if p.Expenses != nil {
		for _, x := range *p.Expenses {
			if err := x.Validate(); err != nil {
				return err
			}
		}
	}
	if p.Media != nil {
		for _, m := range *p.Media {
			if err := m.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply merges p over e field by field. The result shares no slices with p.
func (p Patch) Apply(e Entry) Entry {
	e = e.Clone()
	if p.Todos != nil {
		e.Todos = append([]Todo{}, (*p.Todos)...)
	}
	if p.Expenses != nil {
		e.Expenses = append([]Expense{}, (*p.Expenses)...)
	}
	if p.Insight != nil {
		e.Insight = *p.Insight
	}
	if p.Media != nil {
		e.Media = append([]Media{}, (*p.Media)...)
	}
	if p.MyDaySummary != nil {
		e.MyDaySummary = *p.MyDaySummary
	}
	return e
}

// Merge combines two patches; fields set in q win.
func (p Patch) Merge(q Patch) Patch {
	if q.Todos != nil {
		p.Todos = q.Todos
	}
	if q.Expenses != nil {
		p.Expenses = q.Expenses
	}
	if q.Insight != nil {
		p.Insight = q.Insight
	}
	if q.Media != nil {
		p.Media = q.Media
	}
	if q.MyDaySummary != nil {
		p.MyDaySummary = q.MyDaySummary
	}
	return p
}
