package middleware

import (
	"strings"
)

// StepUpTable is the static registry of which operations demand a fresh
// password confirmation on top of the primary session. Entries are declared
// once at router assembly; the table is read-only afterwards, so lookups
// need no locking.
//
// An operation key is "METHOD /full/route/path" exactly as gin reports it
// (path parameters kept as :name). A group entry covers every route under a
// path prefix; an operation entry always overrides its group.
type StepUpTable struct {
	operations map[string]bool
	groups     map[string]bool
}

func NewStepUpTable() *StepUpTable {
	return &StepUpTable{
		operations: map[string]bool{},
		groups:     map[string]bool{},
	}
}

func (st *StepUpTable) MarkOperation(method, path string, required bool) *StepUpTable {
	st.operations[operationKey(method, path)] = required
	return st
}

func (st *StepUpTable) MarkGroup(pathPrefix string, required bool) *StepUpTable {
	st.groups[pathPrefix] = required
	return st
}

// Requires resolves the flag for one operation: exact operation entry first,
// then the longest matching group prefix, then false.
func (st *StepUpTable) Requires(method, path string) bool {
	if required, ok := st.operations[operationKey(method, path)]; ok {
		return required
	}

	bestLen := -1
	required := false
	for prefix, flag := range st.groups {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if len(prefix) > bestLen {
			bestLen = len(prefix)
			required = flag
		}
	}
	return required
}

func operationKey(method, path string) string {
	return method + " " + path
}
