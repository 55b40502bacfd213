package template

import (
	"strings"
	"testing"
	"time"
)

func TestRenderSubstitutesProvidedFields(t *testing.T) {
	t.Parallel()

	got := Render("Olá {{user.name}}, total {{plan.price}}", Variables{
		"user": map[string]any{"name": "Ana"},
		"plan": map[string]any{"price": float64(299)},
	})
	want := "Olá Ana, total R$ 299.00"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderLeavesMissingFieldsUntouched(t *testing.T) {
	t.Parallel()

	tmpl := "Contratante: {{tenant.name}} ({{tenant.cnpj}})"
	got := Render(tmpl, Variables{
		"tenant": map[string]any{"name": "Lar São José"},
	})
	want := "Contratante: Lar São José ({{tenant.cnpj}})"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderEmptyStringIsNotSubstituted(t *testing.T) {
	t.Parallel()

	tmpl := "Email: {{user.email}}"
	got := Render(tmpl, Variables{"user": map[string]any{"email": ""}})
	if got != tmpl {
		t.Fatalf("empty field should leave placeholder, got %q", got)
	}
}

func TestRenderNullPriceMeansOnRequest(t *testing.T) {
	t.Parallel()

	got := Render("Valor: {{plan.price}}", Variables{
		"plan": map[string]any{"price": nil},
	})
	if got != "Valor: sob consulta" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderUnlimitedSentinels(t *testing.T) {
	t.Parallel()

	vars := Variables{"plan": map[string]any{
		"maxUsers":     float64(-1),
		"maxResidents": float64(40),
	}}
	if got := Render("{{plan.maxUsers}}", vars); got != "ilimitado" {
		t.Fatalf("maxUsers=-1: got %q", got)
	}
	if got := Render("{{plan.maxResidents}}", vars); got != "40" {
		t.Fatalf("maxResidents=40: got %q", got)
	}
}

func TestRenderTodayFormattedPtBR(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	got := RenderAt("Assinado em {{today}}.", Variables{}, now)
	if got != "Assinado em 07/03/2026." {
		t.Fatalf("got %q", got)
	}
}

func TestRenderFullyResolvedLeavesNoPlaceholders(t *testing.T) {
	t.Parallel()

	tmpl := "{{tenant.name}} / {{tenant.cnpj}} / {{user.name}} / {{user.cpf}} / " +
		"{{plan.name}} / {{plan.displayName}} / {{plan.price}} / {{plan.maxUsers}} / " +
		"{{plan.maxResidents}} / {{trial.days}} / {{today}}"
	got := Render(tmpl, Variables{
		"tenant": map[string]any{"name": "Lar Aurora", "cnpj": "12.345.678/0001-90"},
		"user":   map[string]any{"name": "Carlos", "cpf": "123.456.789-00"},
		"plan": map[string]any{
			"name":         "premium",
			"displayName":  "Premium",
			"price":        float64(499.9),
			"maxUsers":     float64(10),
			"maxResidents": float64(-1),
		},
		"trial": map[string]any{"days": float64(14)},
	})
	if strings.Contains(got, "{{") || strings.Contains(got, "}}") {
		t.Fatalf("unresolved placeholders remain: %q", got)
	}
	if !strings.Contains(got, "R$ 499.90") {
		t.Fatalf("price formatting wrong: %q", got)
	}
}

func TestRenderEmptyVariablesOnlySubstitutesToday(t *testing.T) {
	t.Parallel()

	tmpl := "{{tenant.name}} aceita em {{today}} os termos {{plan.displayName}}"
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	got := RenderAt(tmpl, Variables{}, now)
	want := "{{tenant.name}} aceita em 01/12/2025 os termos {{plan.displayName}}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderUnknownNamespaceLeftAlone(t *testing.T) {
	t.Parallel()

	tmpl := "{{foo.bar}} e {{today}} e {{semponto}}"
	got := RenderAt(tmpl, Variables{"foo": map[string]any{"bar": "x"}},
		time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC))
	// foo is not a recognized namespace with formatting rules, but the
	// generic string path still applies to it; bare words never match.
	if !strings.Contains(got, "x") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "{{semponto}}") {
		t.Fatalf("bare placeholder should stay, got %q", got)
	}
}
