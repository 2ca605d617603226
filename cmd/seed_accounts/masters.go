package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// primaryGroups grupos reservados de Tally y su grupo contable.
var primaryGroups = map[string]string{
	"bank accounts":            entity.GroupAsset,
	"bank od a/c":              entity.GroupLiability,
	"branch / divisions":       entity.GroupLiability,
	"capital account":          entity.GroupEquity,
	"cash-in-hand":             entity.GroupAsset,
	"current assets":           entity.GroupAsset,
	"current liabilities":      entity.GroupLiability,
	"deposits (asset)":         entity.GroupAsset,
	"direct expenses":          entity.GroupExpense,
	"direct incomes":           entity.GroupIncome,
	"duties & taxes":           entity.GroupLiability,
	"fixed assets":             entity.GroupAsset,
	"indirect expenses":        entity.GroupExpense,
	"indirect incomes":         entity.GroupIncome,
	"investments":              entity.GroupAsset,
	"loans & advances (asset)": entity.GroupAsset,
	"loans (liability)":        entity.GroupLiability,
	"misc. expenses (asset)":   entity.GroupAsset,
	"provisions":               entity.GroupLiability,
	"purchase accounts":        entity.GroupExpense,
	"reserves & surplus":       entity.GroupEquity,
	"sales accounts":           entity.GroupIncome,
	"secured loans":            entity.GroupLiability,
	"stock-in-hand":            entity.GroupAsset,
	"sundry creditors":         entity.GroupLiability,
	"sundry debtors":           entity.GroupAsset,
	"suspense a/c":             entity.GroupLiability,
	"unsecured loans":          entity.GroupLiability,
}

// masterLedger ledger de Tally ya resuelto a un grupo contable.
type masterLedger struct {
	Name  string
	Group string
}

// parseMasters lee un export de masters de Tally (GROUP y LEDGER dentro de TALLYMESSAGE).
// Los ledgers cuyo grupo no llega a un grupo primario conocido se omiten.
func parseMasters(r io.Reader) ([]masterLedger, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}

	parents := make(map[string]string)
	for _, g := range doc.FindElements("//TALLYMESSAGE/GROUP") {
		name := strings.TrimSpace(g.SelectAttrValue("NAME", ""))
		if name == "" {
			continue
		}
		parents[strings.ToLower(name)] = strings.ToLower(childText(g, "PARENT"))
	}

	var out []masterLedger
	seen := make(map[string]bool)
	for _, l := range doc.FindElements("//TALLYMESSAGE/LEDGER") {
		name := strings.TrimSpace(l.SelectAttrValue("NAME", ""))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		group, ok := resolveGroup(strings.ToLower(childText(l, "PARENT")), parents)
		if !ok {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, masterLedger{Name: name, Group: group})
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// resolveGroup sube por la jerarquía de grupos hasta un grupo primario.
func resolveGroup(parent string, parents map[string]string) (string, bool) {
	visited := make(map[string]bool)
	for parent != "" && !visited[parent] {
		if g, ok := primaryGroups[parent]; ok {
			return g, true
		}
		visited[parent] = true
		parent = parents[parent]
	}
	return "", false
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

// writeSQL emite INSERTs idempotentes: el id se deriva de empresa y nombre, el código es secuencial.
func writeSQL(w io.Writer, companyID string, ledgers []masterLedger) error {
	ns, err := uuid.Parse(companyID)
	if err != nil {
		return fmt.Errorf("company_id inválido: %w", err)
	}
	if _, err := fmt.Fprintf(w, "-- Plan de cuentas importado de Tally (%d cuentas)\n", len(ledgers)); err != nil {
		return err
	}
	for i, l := range ledgers {
		id := uuid.NewSHA1(ns, []byte(strings.ToLower(l.Name)))
		_, err := fmt.Fprintf(w,
			"INSERT INTO account_heads (id, company_id, code, name, \"group\", created_at, updated_at) VALUES ('%s', '%s', 'T%04d', '%s', '%s', NOW(), NOW()) ON CONFLICT DO NOTHING;\n",
			id, companyID, i+1, escapeSQL(l.Name), l.Group)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
