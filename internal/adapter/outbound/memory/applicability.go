package memory

import "github.com/berise/openscap/internal/domain/model"

// PlatformDef describes one named platform entry in a Dictionary. Exactly
// one of Static or a dictionary check (Href set) applies.
type PlatformDef struct {
	// Static, when non-nil, answers applicability directly with no check
	// dispatch.
	Static *bool
	// Href and ItemName, when Href is non-empty, name the content reference
	// and checkable item dispatched through the applicability engine's
	// PlatformCheckFunc.
	Href     string
	ItemName string
}

// Dictionary is a map-backed model.Dictionary fixture.
type Dictionary struct {
	Platforms map[string]PlatformDef
}

func (d *Dictionary) IsNameApplicable(name string, check model.PlatformCheckFunc) (bool, error) {
	def, ok := d.Platforms[name]
	if !ok {
		return false, nil
	}
	if def.Static != nil {
		return *def.Static, nil
	}
	return check(def.Href, def.ItemName)
}

var _ model.Dictionary = (*Dictionary)(nil)

// Expression is one named platform expression in a LanguageModel: either a
// direct dictionary check or a boolean combination of referenced platform
// names looked up in the accompanying Dictionary.
type Expression struct {
	// DictCheckHref, when non-empty, names a content reference dispatched
	// directly (with DictCheckItem as the item name), bypassing
	// RefersTo/Operator.
	DictCheckHref string
	DictCheckItem string
	// RefersTo names platforms (looked up by name in the Dictionary passed
	// to IsPlatformApplicable) combined by Operator.
	RefersTo []string
	Operator model.ComplexCheckOp
}

// LanguageModel is a map-backed model.LanguageModel fixture.
type LanguageModel struct {
	Expressions map[string]Expression
}

func (l *LanguageModel) IsPlatformApplicable(nameOrRef string, check model.PlatformCheckFunc, dict model.Dictionary) (bool, error) {
	name := nameOrRef
	if len(name) > 0 && name[0] == '#' {
		name = name[1:]
	}
	expr, ok := l.Expressions[name]
	if !ok {
		if dict == nil {
			return false, nil
		}
		return dict.IsNameApplicable(name, check)
	}
	if expr.DictCheckHref != "" {
		return check(expr.DictCheckHref, expr.DictCheckItem)
	}
	switch expr.Operator {
	case model.OpAnd:
		for _, p := range expr.RefersTo {
			ok, err := dict.IsNameApplicable(p, check)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default: // model.OpOr
		for _, p := range expr.RefersTo {
			ok, err := dict.IsNameApplicable(p, check)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

var _ model.LanguageModel = (*LanguageModel)(nil)
