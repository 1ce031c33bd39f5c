package municipios

import (
	"sort"
	"strings"
)

var byIBGE = func() map[string]Municipio {
	m := make(map[string]Municipio, len(all))
	for _, mu := range all {
		m[mu.IBGE] = mu
	}
	return m
}()

// All returns every municipality in registration order. The slice is a
// copy; callers may reorder it.
func All() []Municipio {
	out := make([]Municipio, len(all))
	copy(out, all)
	return out
}

// ByIBGE looks up one municipality by its 7-digit code.
func ByIBGE(ibge string) (Municipio, bool) {
	m, ok := byIBGE[ibge]
	return m, ok
}

// ByNome matches the first municipality whose name contains nome,
// case-insensitive.
func ByNome(nome string) (Municipio, bool) {
	needle := strings.ToLower(nome)
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Nome), needle) {
			return m, true
		}
	}
	return Municipio{}, false
}

// ValidIBGE reports whether code is an existing Mato Grosso do Sul
// municipality code: 7 digits starting with the state prefix 50 and
// present in the reference table.
func ValidIBGE(code string) bool {
	if len(code) != 7 || !strings.HasPrefix(code, "50") {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, ok := byIBGE[code]
	return ok
}

// ByMacrorregiao filters by macro health region.
func ByMacrorregiao(macro string) []Municipio {
	var out []Municipio
	for _, m := range all {
		if m.Macrorregiao == macro {
			out = append(out, m)
		}
	}
	return out
}

// ByMicrorregiao filters by micro health region.
func ByMicrorregiao(micro string) []Municipio {
	var out []Municipio
	for _, m := range all {
		if m.Microrregiao == micro {
			out = append(out, m)
		}
	}
	return out
}

// Macrorregioes returns the distinct macro regions, sorted.
func Macrorregioes() []string {
	return distinct(func(m Municipio) string { return m.Macrorregiao })
}

// Microrregioes returns the distinct micro regions, sorted.
func Microrregioes() []string {
	return distinct(func(m Municipio) string { return m.Microrregiao })
}

// PopulacaoTotal sums the state population estimate.
func PopulacaoTotal() int {
	total := 0
	for _, m := range all {
		total += m.Populacao
	}
	return total
}

// Search matches name, code, or region against query. An empty query
// returns everything.
func Search(query string) []Municipio {
	if query == "" {
		return All()
	}
	needle := strings.ToLower(query)
	var out []Municipio
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Nome), needle) ||
			strings.Contains(m.IBGE, query) ||
			strings.Contains(strings.ToLower(m.Macrorregiao), needle) ||
			strings.Contains(strings.ToLower(m.Microrregiao), needle) {
			out = append(out, m)
		}
	}
	return out
}

// SortBy orders a copy of ms by criterio: "nome" (default), "populacao"
// descending, "ibge", or "macrorregiao" then name.
func SortBy(ms []Municipio, criterio string) []Municipio {
	out := make([]Municipio, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		switch criterio {
		case "populacao":
			return out[i].Populacao > out[j].Populacao
		case "ibge":
			return out[i].IBGE < out[j].IBGE
		case "macrorregiao":
			if out[i].Macrorregiao != out[j].Macrorregiao {
				return out[i].Macrorregiao < out[j].Macrorregiao
			}
			return out[i].Nome < out[j].Nome
		default:
			return out[i].Nome < out[j].Nome
		}
	})
	return out
}

func distinct(pick func(Municipio) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range all {
		v := pick(m)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
