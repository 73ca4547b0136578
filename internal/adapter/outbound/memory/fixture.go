package memory

import "github.com/berise/openscap/internal/domain/model"

// celCheck builds a single-content, no-href CEL check exporting the given
// bindings, matching how the teacher's CEL engine (internal/adapter/outbound/cel)
// reads its expression from the content-name rather than a fetched href.
func celCheck(expr string, exports ...model.Export) model.Check {
	return model.Check{
		System:      "urn:openscap:check-system:cel",
		Exports:     exports,
		ContentRefs: []model.ContentRef{{Name: expr}},
	}
}

func staticPlatform(applicable bool) PlatformDef {
	v := applicable
	return PlatformDef{Static: &v}
}

// DemoBenchmark builds the "demo" fixture benchmark this repository's CLI
// evaluates in the absence of a real XML-parsed benchmark (spec.md §1 puts
// that parser out of scope). It exercises every checkable surface the core
// implements: a plain CEL rule, a value-bound CEL rule, a rule gated by a
// language-model platform expression, a rule made not-applicable by its
// platform, and a rule left unselected by default that a profile can turn
// on with a tightened value.
func DemoBenchmark() model.Benchmark {
	dict := &Dictionary{Platforms: map[string]PlatformDef{
		"cpe:/o:redhat:enterprise_linux:9": staticPlatform(true),
		"cpe:/o:centos:8":                  staticPlatform(false),
		"cpe:/o:generic:linux": {
			Href:     "dict/os-facts",
			ItemName: "true",
		},
	}}
	lang := &LanguageModel{Expressions: map[string]Expression{
		"platform_rhel_family": {
			RefersTo: []string{"cpe:/o:redhat:enterprise_linux:9", "cpe:/o:centos:8"},
			Operator: model.OpOr,
		},
	}}

	root := GroupSpec{
		ID:              "xccdf_demo_benchmark_group_root",
		DefaultSelected: true,
		Weight:          1,
		Children: []ItemSpec{
			{Group: &GroupSpec{
				ID:              "group_authentication",
				DefaultSelected: true,
				Weight:          1,
				Children: []ItemSpec{
					{Value: &ValueSpec{
						ID:        "value_max_auth_tries",
						ValueType: model.ValueNumber,
						Operator:  model.OpLessEqual,
						Instances: []model.Instance{
							{Selector: "", Literal: "5"},
							{Selector: "strict", Literal: "3"},
						},
					}},
					{Value: &ValueSpec{
						ID:        "value_min_password_length",
						ValueType: model.ValueNumber,
						Operator:  model.OpGreaterEqual,
						Instances: []model.Instance{
							{Selector: "", Literal: "14"},
						},
					}},
					{Rule: &RuleSpec{
						ID:              "xccdf_rule_auth_tries_limit",
						Version:         "1",
						Severity:        "medium",
						Role:            model.RoleFull,
						Weight:          3,
						DefaultSelected: true,
						Idents:          []string{"CCE-demo-0001"},
						Checks: []model.Check{
							celCheck("max_tries <= 5.0",
								model.Export{Name: "max_tries", ValueID: "value_max_auth_tries"}),
						},
					}},
					{Rule: &RuleSpec{
						ID:              "xccdf_rule_password_length",
						Version:         "1",
						Severity:        "high",
						Role:            model.RoleFull,
						Weight:          5,
						DefaultSelected: true,
						Idents:          []string{"CCE-demo-0002"},
						Platforms:       []string{"#platform_rhel_family"},
						Checks: []model.Check{
							celCheck("min_len >= 14.0",
								model.Export{Name: "min_len", ValueID: "value_min_password_length"}),
						},
					}},
					{Rule: &RuleSpec{
						ID:              "xccdf_rule_weak_cipher_disabled",
						Version:         "1",
						Severity:        "medium",
						Role:            model.RoleFull,
						Weight:          2,
						DefaultSelected: false,
						Idents:          []string{"CCE-demo-0003"},
						Checks: []model.Check{
							celCheck("1.0 > 2.0"),
						},
					}},
				},
			}},
			{Group: &GroupSpec{
				ID:              "group_platform",
				DefaultSelected: true,
				Weight:          1,
				Children: []ItemSpec{
					{Rule: &RuleSpec{
						ID:              "xccdf_rule_selinux_enforcing",
						Version:         "1",
						Severity:        "high",
						Role:            model.RoleFull,
						Weight:          4,
						DefaultSelected: true,
						Platforms:       []string{"cpe:/o:centos:8"},
						Checks: []model.Check{
							celCheck("true"),
						},
					}},
					{Rule: &RuleSpec{
						ID:              "xccdf_rule_generic_linux_baseline",
						Version:         "1",
						Severity:        "low",
						Role:            model.RoleUnscored,
						Weight:          1,
						DefaultSelected: true,
						Platforms:       []string{"cpe:/o:generic:linux"},
						Checks: []model.Check{
							celCheck("true"),
						},
					}},
				},
			}},
		},
	}

	plaintext := map[string]string{
		"text_auth_tries_rationale": "Limiting authentication attempts mitigates brute-force attacks.",
	}

	return BuildBenchmark("xccdf_demo_benchmark", "1.2", root, plaintext, dict, lang)
}

// DemoProfile builds the "moderate" profile: selects the otherwise-disabled
// weak-cipher rule, tightens the auth-tries value to its "strict" instance
// via refine-value, and overrides the password-length value directly via
// set-value (spec.md §4.2's "later set-value wins" rule is exercised by two
// set-values for the same value id).
func DemoProfile() model.Profile {
	return &Profile{
		IDValue: "moderate",
		SelectList: []model.Select{
			{ItemID: "xccdf_rule_weak_cipher_disabled", Selected: true},
		},
		SetValueList: []model.SetValue{
			{ValueID: "value_min_password_length", Literal: "12"},
			{ValueID: "value_min_password_length", Literal: "16"},
		},
		RefineValueList: []model.RefineValue{
			{ValueID: "value_max_auth_tries", Selector: "strict", HasSelector: true},
		},
	}
}
