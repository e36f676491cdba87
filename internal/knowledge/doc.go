// Package knowledge holds the canned-answer table and the keyword matcher.
//
// # Overview
//
// A Table is an ordered, immutable list of entries mapping a lowercase
// keyword to a canned Response with citations into external document
// systems. The Matcher scans the table in declaration order and returns
// the first entry whose keyword is contained in the normalized query.
//
// # Matching
//
//	m := knowledge.NewMatcher(table)
//	resp, ok := m.Match("What is our travel reimbursement policy?")
//
// Matching is pure and deterministic: the same query against the same
// table always yields the same result. First-match-wins by table order is
// the only tie-break; there is no relevance ranking. Callers substitute
// knowledge.Fallback() when ok is false.
//
// # Tables
//
// Tables load from YAML files (same ${VAR} expansion as the service
// config) or come from Builtin(), the table compiled into the binary so
// the service runs with no configuration at all.
package knowledge
