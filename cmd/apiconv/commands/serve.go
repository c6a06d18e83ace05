package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/apiconv/apiconv/internal/httpapi"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Listen string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Listen, "listen", "", "listen address (overrides APICONV_LISTEN_ADDR)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv serve [flags]\n\n")
		Writef(fs.Output(), "Run the conversion HTTP API until interrupted.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nConfiguration (environment):\n")
		Writef(fs.Output(), "  APICONV_LISTEN_ADDR         listen address (default :8080)\n")
		Writef(fs.Output(), "  APICONV_MAX_UPLOAD_BYTES    maximum upload size in bytes (default 10485760)\n")
		Writef(fs.Output(), "  APICONV_READ_TIMEOUT        HTTP read timeout (default 10s)\n")
		Writef(fs.Output(), "  APICONV_WRITE_TIMEOUT       HTTP write timeout (default 30s)\n")
		Writef(fs.Output(), "  APICONV_IDLE_TIMEOUT        HTTP idle timeout (default 120s)\n")
		Writef(fs.Output(), "  APICONV_SHUTDOWN_TIMEOUT    graceful shutdown timeout (default 5s)\n")
		Writef(fs.Output(), "  APICONV_LOG_LEVEL           log level: debug, info, warn, error (default info)\n")
		Writef(fs.Output(), "\nEndpoints:\n")
		Writef(fs.Output(), "  POST /api/{source}/to/{target}   convert an uploaded document ('auto' detects the source)\n")
		Writef(fs.Output(), "  GET  /api/formats                list formats and conversion pairs\n")
		Writef(fs.Output(), "  GET  /healthz                    liveness probe\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiconv serve\n")
		Writef(fs.Output(), "  apiconv serve --listen :9090\n")
		Writef(fs.Output(), "  curl -F file=@capture.har http://localhost:8080/api/auto/to/openapi3\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	cfg, err := httpapi.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flags.Listen != "" {
		cfg.ListenAddr = flags.Listen
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpapi.NewServer(cfg, logger).Run(ctx)
}
