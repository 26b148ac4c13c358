package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/depot"
	"github.com/invopop/jsonschema"
)

func main() {
	var outPath, kind string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&kind, "kind", "entry", "document to describe: entry, scene or spawn")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema, err := buildSchema(kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema(kind string) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var schema *jsonschema.Schema
	switch kind {
	case "entry":
		schema = reflector.Reflect(new(depot.Entry))
		schema.Title = "Depot Project Entry"
		schema.Description = "Spaces to build at startup and the scene each one loads"
	case "scene":
		schema = reflector.Reflect(new(depot.Scene))
		schema.Title = "Depot Scene"
		schema.Description = "Pools a space creates on load and their starting objects"
	case "spawn":
		schema = reflector.Reflect(new(depot.SpawnInfo))
		schema.Title = "Depot Spawn"
		schema.Description = "Destination pool, object archetype, ordered spawn rules and burst layout"
	default:
		return nil, bark.AddTrace(fmt.Errorf("unknown schema kind %q", kind))
	}
	return schema, nil
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return bark.AddTrace(fmt.Errorf("marshal schema: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return bark.AddTrace(fmt.Errorf("create schema directory: %w", err))
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return bark.AddTrace(fmt.Errorf("write temp schema: %w", err))
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return bark.AddTrace(fmt.Errorf("replace schema: %w", err))
	}
	return nil
}
