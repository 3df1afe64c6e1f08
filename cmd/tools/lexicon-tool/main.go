// cmd/tools/lexicon-tool/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/database"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/pkg/registry"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			help(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := fs.String("path", "", "Lexicon file (YAML or JSON); empty validates the embedded default")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		lex, err := loadLexicon(*path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Lexicon validation passed. Found %d categories and %d stop words.\n", len(lex.Categories), len(lex.StopWords))
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		path := fs.String("path", "", "Lexicon file to read; empty exports the embedded default")
		format := fs.String("format", "yaml", "Output format (yaml, json)")
		dest := fs.String("out", "", "Output file; empty writes to stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		lex, err := loadLexicon(*path)
		if err != nil {
			return err
		}
		data, err := lex.Encode(*format)
		if err != nil {
			return err
		}
		if *dest == "" {
			_, err = out.Write(data)
			return err
		}
		return writeFile(*dest, data)

	case "publish":
		fs := flag.NewFlagSet("publish", flag.ContinueOnError)
		path := fs.String("path", "", "Lexicon file to publish; empty publishes the embedded default")
		addr := fs.String("redis", "localhost:6379", "Redis address")
		password := fs.String("password", os.Getenv("REDIS_PASSWORD"), "Redis password")
		key := fs.String("key", "listing-assistant:lexicon", "Redis key read by the lexicon source")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		lex, err := loadLexicon(*path)
		if err != nil {
			return err
		}

		rdb := database.NewRedis(config.RedisConfig{Address: *addr, Password: *password})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := lexicon.Publish(ctx, rdb, *key, lex); err != nil {
			return err
		}
		fmt.Fprintf(out, "Published lexicon to %s key %s\n", *addr, *key)
		return nil

	case "actions":
		fs := flag.NewFlagSet("actions", flag.ContinueOnError)
		path := fs.String("registry", "", "Action registry file; empty lists the embedded registry")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return listActions(*path, out)

	case "help", "-h", "--help":
		help(out)
		return nil

	default:
		return errUsage
	}
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.FileSource{Path: path}.Load(context.Background())
}

func listActions(path string, out io.Writer) error {
	reg := registry.Default()
	if path != "" {
		loaded, err := registry.LoadRegistry(path)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = loaded
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tTASK TYPE\tGENERATIVE\tTIMEOUT")
	for _, a := range reg.Actions {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", a.ID, a.TaskType, a.Generative, a.Timeout)
	}
	return tw.Flush()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func help(w io.Writer) {
	fmt.Fprint(w, `
Usage: lexicon-tool <command> [flags]

Commands:
  validate  Validate a lexicon file
  export    Write a lexicon as YAML or JSON
  publish   Store a lexicon in Redis for the redis lexicon source
  actions   List the registered assistant actions
  help      Show this help message

Examples:
  lexicon-tool validate -path configs/lexicon.yaml
  lexicon-tool export -format json -out build/lexicon.json
  lexicon-tool publish -path configs/lexicon.yaml -redis localhost:6379
  lexicon-tool actions
`)
}
