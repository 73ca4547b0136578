package policy

import "strings"

// ResultIDPrefix computes the persisted rule-result id prefix (spec.md §6):
// "xccdf_org.open-scap_testresult_<profile-id>" for benchmark schema ≥ 1.2,
// "OSCAP-Test-<profile-id>" otherwise. A null profile-id maps to
// "default-profile".
func ResultIDPrefix(schemaVersion, profileID string) string {
	if profileID == "" {
		profileID = "default-profile"
	}
	if schemaAtLeast12(schemaVersion) {
		return "xccdf_org.open-scap_testresult_" + profileID
	}
	return "OSCAP-Test-" + profileID
}

// ResultIDPrefix returns this policy's own rule-result id prefix given its
// model's schema version and profile id.
func (p *Policy) ResultIDPrefix() string {
	return ResultIDPrefix(p.Model.SchemaVersion(), p.ProfileID)
}

// schemaAtLeast12 reports whether version names schema 1.2 or later.
// XCCDF schema versions are dotted-decimal ("1.1", "1.2", "1.2.1"); only
// the major.minor pair before a third component matters here.
func schemaAtLeast12(version string) bool {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return false
	}
	major, minor := parts[0], parts[1]
	switch major {
	case "0":
		return false
	case "1":
		return minor >= "2"
	default:
		return true
	}
}
