package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mscno/awxify"
	"github.com/mscno/awxify/pkg/fileutils"
)

// ConvertCmd wraps a vaulted variable in an AWX extra vars document.
type ConvertCmd struct {
	// JSON is set by parseArgs when --json is the first argument.
	JSON   bool     `kong:"-"`
	Format string   `help:"Output format (yaml, json, toml)" short:"f" env:"AWXIFY_FORMAT"`
	Input  string   `help:"Read the vaulted block from a file instead of stdin ('-' is stdin)" short:"i" default:"-"`
	Output string   `help:"Write the document to a file instead of stdout; its extension picks the format unless one is given" short:"o"`
	// Args holds the arguments that select nothing; they are ignored.
	Args   []string `kong:"-"`
}

// Run executes the convert command.
func (c *ConvertCmd) Run(ctx *cliCtx) error {
	ctx.Logger.Debug("converting vaulted variable", "input", c.Input, "output", c.Output, "json", c.JSON, "format", c.Format)
	if len(c.Args) > 0 {
		ctx.Logger.Debug("ignoring arguments", "args", c.Args)
	}

	fileFormat, err := c.resolveFormat(ctx)
	if err != nil {
		ctx.Logger.Debug("format parsing failed", "format", c.Format, "error", err)
		return fmt.Errorf("error parsing format flag %q: %v", c.Format, err)
	}
	ctx.Logger.Debug("resolved format", "format_type", fileFormat)

	data, err := fileutils.ReadInput(c.Input, ctx.Stdin)
	if err != nil {
		ctx.Logger.Debug("input read failed", "input", c.Input, "error", err)
		return err
	}
	ctx.Logger.Debug("read input", "bytes", len(data))

	var buf bytes.Buffer
	n, err := awxify.ConvertWithConfig(bytes.NewReader(data), &buf, awxify.Config{
		Format: fileFormat,
		Logger: ctx.Logger,
	})
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(c.Output, buf.Bytes(), 0o600); err != nil {
		ctx.Logger.Debug("output write failed", "path", c.Output, "error", err)
		return fmt.Errorf("error writing file %s: %v", c.Output, err)
	}
	ctx.Logger.Debug("wrote output", "path", c.Output, "bytes", n)
	fmt.Printf("Wrote %d bytes to %s\n", n, c.Output)
	return nil
}

// resolveFormat applies, in order: --json, --format, the extension of
// --output, and finally the YAML default.
func (c *ConvertCmd) resolveFormat(ctx *cliCtx) (fileutils.FileFormat, error) {
	if c.JSON {
		return fileutils.Json, nil
	}
	if c.Format != "" {
		return fileutils.ParseFormat(c.Format)
	}
	if c.Output != "" {
		detected, err := fileutils.DetectFormat(c.Output)
		if err == nil {
			return detected, nil
		}
		ctx.Logger.Debug("falling back to default format", "path", c.Output, "reason", err)
	}
	return awxify.DefaultFormat, nil
}
