package result

import "testing"

func allVerdicts() []Verdict {
	return []Verdict{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational}
}

func TestAndTableSelfCells(t *testing.T) {
	expected := map[Verdict]Verdict{
		Pass: Pass, Fail: Fail, Error: Error, Unknown: Unknown,
		NotApplicable: NotApplicable, NotChecked: NotChecked,
		NotSelected: NotSelected, Informational: Informational,
	}
	for _, v := range allVerdicts() {
		if got := And(v, v); got != expected[v] {
			t.Errorf("And(%s, %s) = %s, want %s", v, v, got, expected[v])
		}
	}
}

func TestAbsorbingIdentities(t *testing.T) {
	// N, K, S, I leave P, F, E, U unchanged under And and Or. Between two of
	// them the tables yield whichever comes first in the order N K S I.
	identities := []Verdict{NotApplicable, NotChecked, NotSelected, Informational}
	for _, v := range allVerdicts() {
		for _, id := range identities {
			want := v
			if index(v) > index(id) {
				want = id
			}
			if got := And(v, id); got != want {
				t.Errorf("And(%s, %s) = %s, want %s (absorbing identity)", v, id, got, want)
			}
			if got := Or(v, id); got != want {
				t.Errorf("Or(%s, %s) = %s, want %s (absorbing identity)", v, id, got, want)
			}
		}
	}
}

func TestFailAbsorbsUnderAnd(t *testing.T) {
	for _, v := range allVerdicts() {
		if got := And(v, Fail); got != Fail {
			t.Errorf("And(%s, Fail) = %s, want Fail", v, got)
		}
	}
}

func TestPassAbsorbsUnderOr(t *testing.T) {
	for _, v := range allVerdicts() {
		if got := Or(v, Pass); got != Pass {
			t.Errorf("Or(%s, Pass) = %s, want Pass", v, got)
		}
	}
}

func TestNegateInvolutionOnPassFail(t *testing.T) {
	if Negate(Negate(Pass)) != Pass {
		t.Error("Negate(Negate(Pass)) != Pass")
	}
	if Negate(Negate(Fail)) != Fail {
		t.Error("Negate(Negate(Fail)) != Fail")
	}
}

func TestNegatePassesThroughOthers(t *testing.T) {
	for _, v := range []Verdict{Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational} {
		if got := Negate(v); got != v {
			t.Errorf("Negate(%s) = %s, want unchanged", v, got)
		}
	}
}

func TestComplexCheckExample(t *testing.T) {
	// AND(P, OR(F, P)) with negate on the outer node => F (spec.md §8 scenario 6).
	inner := Or(Fail, Pass)
	outer := And(Pass, inner)
	got := Negate(outer)
	if got != Fail {
		t.Errorf("complex-check example = %s, want fail", got)
	}
}

func TestFoldLeftToRightOrder(t *testing.T) {
	// FoldAnd must process left-to-right; this is mostly a documentation
	// test since the table is commutative cell-by-cell, but multi-element
	// folds must still visit every element.
	got := FoldAnd([]Verdict{Pass, Pass, Fail, Pass})
	if got != Fail {
		t.Errorf("FoldAnd = %s, want fail", got)
	}
	got = FoldOr([]Verdict{Fail, Fail, Pass, Fail})
	if got != Pass {
		t.Errorf("FoldOr = %s, want pass", got)
	}
}
