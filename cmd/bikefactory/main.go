// Command bikefactory opera la fábrica desde la terminal: cada invocación restaura la
// sesión desde el snapshot, ejecuta un comando y guarda el estado si hubo cambios.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
