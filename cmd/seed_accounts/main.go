// seed_accounts genera un script SQL para poblar account_heads a partir de un export
// de masters de Tally (Gateway of Tally > Export > Masters, formato XML).
//
// Uso: go run ./cmd/seed_accounts <company_id> [ruta/Master.xml]
// Por defecto busca Master.xml en el directorio actual y escribe el SQL en stdout.
package main

import (
	"bufio"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_accounts <company_id> [Master.xml]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	xmlPath := "Master.xml"
	if len(os.Args) > 2 {
		xmlPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ledgers, err := parseMasters(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := writeSQL(w, companyID, ledgers); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d cuentas exportadas\n", len(ledgers))
}
