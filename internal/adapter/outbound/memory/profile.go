package memory

import "github.com/berise/openscap/internal/domain/model"

// Profile is a plain in-memory model.Profile: an ordered overlay with no
// behavior beyond returning what it was constructed with. Order of the
// slices is significant to callers (spec.md §4.2, §4.5).
type Profile struct {
	IDValue          string
	SelectList       []model.Select
	SetValueList     []model.SetValue
	RefineValueList  []model.RefineValue
	RefineRuleList   []model.RefineRule
}

func (p *Profile) ID() string                        { return p.IDValue }
func (p *Profile) Selects() []model.Select           { return p.SelectList }
func (p *Profile) SetValues() []model.SetValue        { return p.SetValueList }
func (p *Profile) RefineValues() []model.RefineValue  { return p.RefineValueList }
func (p *Profile) RefineRules() []model.RefineRule    { return p.RefineRuleList }

var _ model.Profile = (*Profile)(nil)
