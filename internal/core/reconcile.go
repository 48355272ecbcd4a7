package core

// Reconcile splits the codes of codeToName by whether their name is in
// knownNames. Matching is exact and case-sensitive; no normalization is done.
func Reconcile(codeToName CodeNameMap, knownNames NameSet) ReconciliationResult {
	res := ReconciliationResult{
		Matched:   make(CodeNameMap),
		Unmatched: make(CodeSet),
	}
	for code, name := range codeToName {
		if knownNames.Has(name) {
			res.Matched[code] = name
		} else {
			res.Unmatched.Add(code)
		}
	}
	return res
}
