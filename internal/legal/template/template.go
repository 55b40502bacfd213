// Package template substitutes named variables into legal document bodies.
//
// Placeholders use {{namespace.field}} syntax over the fixed namespaces
// tenant, user, plan and trial, plus the zero-argument {{today}}. A
// placeholder is only replaced when its field is explicitly present and
// non-empty in the supplied variables; anything unresolved is left verbatim
// in the output so that missing data stays visibly detectable downstream
// instead of silently collapsing to an empty string.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Variables is the namespace tree supplied by the caller, normally decoded
// straight from the request JSON: {"tenant": {...}, "plan": {...}, ...}.
type Variables map[string]any

var placeholderRE = regexp.MustCompile(`\{\{\s*([a-zA-Z]+(?:\.[a-zA-Z]+)?)\s*\}\}`)

// Render substitutes vars into tmpl. Pure function: missing variables are
// not an error, they are "leave the placeholder as-is".
func Render(tmpl string, vars Variables) string {
	return RenderAt(tmpl, vars, time.Now())
}

// RenderAt is Render with an explicit clock. {{today}} is formatted once per
// call, not per placeholder.
func RenderAt(tmpl string, vars Variables, now time.Time) string {
	today := now.Format("02/01/2006")

	return placeholderRE.ReplaceAllStringFunc(tmpl, func(m string) string {
		match := placeholderRE.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}
		key := match[1]
		if key == "today" {
			return today
		}
		if out, ok := resolve(vars, key); ok {
			return out
		}
		return m
	})
}

func resolve(vars Variables, key string) (string, bool) {
	ns, field, ok := splitKey(key)
	if !ok {
		return "", false
	}
	group, ok := vars[ns].(map[string]any)
	if !ok {
		return "", false
	}
	val, present := group[field]
	if !present {
		return "", false
	}

	switch key {
	case "plan.price":
		// null price is a real state: the plan is quoted on request.
		if val == nil {
			return "sob consulta", true
		}
		if f, ok := asFloat(val); ok {
			return fmt.Sprintf("R$ %.2f", f), true
		}
		return "", false
	case "plan.maxUsers", "plan.maxResidents":
		if n, ok := asInt(val); ok {
			if n == -1 {
				return "ilimitado", true
			}
			return strconv.FormatInt(n, 10), true
		}
		return "", false
	case "trial.days":
		if n, ok := asInt(val); ok {
			return strconv.FormatInt(n, 10), true
		}
		return "", false
	default:
		s, ok := val.(string)
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
}

func splitKey(key string) (ns, field string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}

func asFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asInt(val any) (int64, bool) {
	switch v := val.(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
