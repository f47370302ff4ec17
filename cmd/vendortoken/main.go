// vendortoken emite un Bearer Token para un vendedor, firmado con JWT_SECRET.
//
// Uso: go run ./cmd/vendortoken <vendorId>
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/dairybook-api/pkg/config"
	"github.com/jhoicas/dairybook-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "uso: vendortoken <vendorId>")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}
	token, err := jwt.Generate(cfg.JWT.Secret, os.Args[1], cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
