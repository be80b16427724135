package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
)

const tokenEnv = "BIKEFACTORY_TOKEN"

// command un subcomando de la CLI.
type command struct {
	summary string
	// public no necesita sesión (login).
	public bool
	// mutates indica que el estado se guarda si el comando termina bien.
	mutates bool
	flags   func(fs *flag.FlagSet) func(ctx context.Context, a *app, p access.Principal) (any, error)
}

// run ejecuta la CLI y devuelve el código de salida.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stderr)
		return 2
	}
	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "comando desconocido %q\n", name)
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	token := fs.String("token", "", "token de sesión (o "+tokenEnv+")")
	exec := cmd.flags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	a, err := newApp(ctx, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer func() { _ = a.Close() }()

	var p access.Principal
	if !cmd.public {
		tok := *token
		if tok == "" {
			tok = os.Getenv(tokenEnv)
		}
		if tok == "" {
			return fail(stderr, fmt.Errorf("%w: falta --token o %s", domain.ErrUnauthorized, tokenEnv))
		}
		if p, err = a.auth.Authenticate(ctx, tok); err != nil {
			return fail(stderr, err)
		}
	}

	out, err := exec(ctx, a, p)
	if err != nil {
		return fail(stderr, err)
	}
	if cmd.mutates {
		if err := a.snapshot.Persist(ctx); err != nil {
			return fail(stderr, fmt.Errorf("guardar sesión: %w", err))
		}
	}
	if out == nil {
		return 0
	}
	if raw, ok := out.([]byte); ok {
		_, _ = stdout.Write(raw)
		return 0
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// fail imprime el error como JSON y elige el código de salida según el tipo.
func fail(w io.Writer, err error) int {
	code, exit := errorCode(err)
	b, _ := json.Marshal(dto.ErrorResponse{Code: code, Message: err.Error()})
	fmt.Fprintln(w, string(b))
	return exit
}

// exitCodes un código de salida por tipo de error; 1 queda para errores internos y 2 para
// uso incorrecto de la CLI.
var exitCodes = []struct {
	err  error
	code string
	exit int
}{
	{domain.ErrUnauthorized, "UNAUTHORIZED", 3},
	{domain.ErrPermissionDenied, "PERMISSION_DENIED", 4},
	{domain.ErrInvalidArgument, "INVALID_ARGUMENT", 5},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", 6},
	{domain.ErrEmptyStation, "EMPTY_STATION", 7},
	{domain.ErrUnknownModel, "UNKNOWN_MODEL", 8},
	{domain.ErrInvalidState, "INVALID_STATE", 9},
	{domain.ErrNoStockAvailable, "NO_STOCK_AVAILABLE", 10},
	{domain.ErrCorruptSnapshot, "CORRUPT_SNAPSHOT", 11},
}

func errorCode(err error) (string, int) {
	for _, c := range exitCodes {
		if errors.Is(err, c.err) {
			return c.code, c.exit
		}
	}
	return "INTERNAL", 1
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "uso: bikefactory <comando> [flags]")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-16s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nLa sesión se toma de --token o de "+tokenEnv+" (ver `bikefactory login`).")
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: falta -%s", domain.ErrInvalidArgument, name)
	}
	return nil
}
