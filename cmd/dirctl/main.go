package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/yanqian/vat-directory/internal/domain/access"
	"github.com/yanqian/vat-directory/internal/domain/blog"
	"github.com/yanqian/vat-directory/internal/domain/metadata"
	"github.com/yanqian/vat-directory/internal/domain/overview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Services are the domain services a command may call.
type Services struct {
	Metadata metadata.Service
	Overview overview.Service
	Blog     blog.Service
	Access   access.Service
}

// Main represents the program.
type Main struct {
	Stdin io.Reader
	// NewServices builds the services once arguments are parsed, so help and
	// usage errors never touch configuration.
	NewServices func(stderr io.Writer) (*Services, error)
}

// NewMain returns a Main wired to the real configuration and services.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin, NewServices: initializeServices}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dirctl"),
		kong.Description("Run the VAT directory metadata, overview, blog and access services from the command line"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.UsageOnError(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	services, err := m.NewServices(stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return kctx.Run(&Dependencies{
		Ctx:      ctx,
		Stdin:    m.Stdin,
		Stdout:   stdout,
		Services: services,
	})
}
