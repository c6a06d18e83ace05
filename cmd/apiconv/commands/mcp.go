package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apiconv/apiconv/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv mcp\n\n")
		Writef(fs.Output(), "Run the MCP server over stdio until the client disconnects.\n\n")
		Writef(fs.Output(), "The server exposes convert, validate, detect, and formats tools to\n")
		Writef(fs.Output(), "MCP clients. Documents are passed inline or by file path.\n\n")
		Writef(fs.Output(), "Configuration (environment):\n")
		Writef(fs.Output(), "  APICONV_MCP_MAX_INLINE_SIZE   maximum inline document size in bytes (default 4194304)\n")
		Writef(fs.Output(), "\nExample client configuration:\n")
		Writef(fs.Output(), "  {\"mcpServers\": {\"apiconv\": {\"command\": \"apiconv\", \"args\": [\"mcp\"]}}}\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
