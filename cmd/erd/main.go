package main

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/erd"
	"bytes"
	log "log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	format := pflag.StringP("format", "f", erd.FormatDOT, "diagram format: dot | mermaid")
	output := pflag.StringP("output", "o", "", "output file, stdout when empty")
	pflag.Parse()

	if err := run(*format, *output); err != nil {
		log.Error("Failed to render schema diagram", "format", *format, "err", err)
		os.Exit(1)
	}
	if *output != "" {
		log.Info("Schema diagram written", "format", *format, "file", *output)
	}
}

func run(format, output string) error {
	var buf bytes.Buffer
	if err := erd.Render(&buf, format, model.All()...); err != nil {
		return err
	}
	if output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0o644)
}
