package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/formsense/formsense/internal/config"
	"github.com/formsense/formsense/internal/extract"
	"github.com/formsense/formsense/internal/processor"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if version != "dev" {
		cfg.Version = version
	}

	setupLogging(cfg)

	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: document path required\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, pflag.Arg(0)); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

func run(cfg *config.Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.Size() > cfg.MaxFileSize {
		return fmt.Errorf("%s exceeds maximum file size of %d bytes", path, cfg.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	kind := cfg.ContentKind
	if kind == "" {
		kind = kindFromExtension(path)
	}
	if kind == "" {
		kind = processor.DetectKind(data)
	}

	factory := processor.NewFactory(cfg.TesseractPath, cfg.Workers, log.Default())
	proc, err := factory.ProcessorFor(kind)
	if err != nil {
		return err
	}

	result, err := proc.Extract(context.Background(), data)
	if err != nil {
		// An unreadable document still produces the documented empty
		// result; emit it before reporting the failure.
		if result != nil {
			_ = output(cfg, result)
		}
		return err
	}

	return output(cfg, result)
}

// kindFromExtension maps a file extension to a content kind the processor
// factory understands. Unknown extensions return the empty string so the
// caller can fall back to content sniffing.
func kindFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	case ".pdf":
		return "pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return ""
	}
}

func output(cfg *config.Config, result *extract.ExtractionResult) error {
	if cfg.OutputFormat == config.FormatJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputText(result)
}

func outputText(result *extract.ExtractionResult) error {
	fmt.Printf("Form type:  %s\n", result.FormType)
	fmt.Printf("Pages:      %d\n", result.PageCount)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Fields:     %d\n", len(result.Fields))
	fmt.Println()

	for i, field := range result.Fields {
		fmt.Printf("[%d] %s\n", i+1, field.Name)
		fmt.Printf("    Label: %s\n", field.Label)
		fmt.Printf("    Type: %s\n", field.Type)
		if field.Value != "" {
			fmt.Printf("    Value: %s\n", field.Value)
		}
		fmt.Printf("    Page: %d\n", field.Page)
		if field.Dimensions != nil {
			fmt.Printf("    Dimensions: %dx%d\n", field.Dimensions.Width, field.Dimensions.Height)
		}
		if field.Required {
			fmt.Printf("    Required: yes\n")
		}
		fmt.Printf("    Confidence: %.2f\n", field.Confidence)
		fmt.Println()
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("formsense\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
}
