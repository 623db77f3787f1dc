// Generate markdown from the JSON schema for the app-launcher config.
//
// Usage:
//
//	go run . > ../../docs/configuration-reference.md
//
// This generates documentation from config.Schema, recursively:
//   - First, write the preamble to stdout (see ./preamble.md).
//   - For each object or array type in the schema, render a template to stdout (see ./properties.tpl)
//
// Edit config/schema.go to modify descriptions, then re-run this script.
package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/bcgov/app-launcher/config"
)

var (
	//go:embed preamble.md
	preamble string

	//go:embed properties.tpl
	propertiesTemplate string

	// Markdown heading prefixes
	depthToHeading = []string{
		0: "##",
		1: "###",
		2: "####",
		3: "#####",
		4: "######",
	}
)

// getTemplate returns a template for a section of markdown, with the given path as the heading.
func getTemplate(path string) (*template.Template, error) {
	depth := 0
	if path != "" {
		depth = strings.Count(path, ".") + 1
	}
	if depth >= len(depthToHeading) {
		depth = len(depthToHeading) - 1
	}
	heading := depthToHeading[depth]
	if path == "" {
		heading += " Top-level fields"
	} else {
		heading += " `" + path + "`"
	}

	return template.New(path).Parse(heading + "\n\n" + propertiesTemplate)
}

// RenderTemplates walks through the schema recursively to generate markdown.
// It writes directly to the provided io.Writer.
func RenderTemplates(path string, schema *Schema, wr io.Writer) error {
	if schema.Type.Is("array") && schema.Items != nil {
		return RenderTemplates(path, schema.Items, wr)
	}

	if !schema.Type.Is("object") || len(schema.Properties) == 0 {
		return nil
	}

	tpl, err := getTemplate(path)
	if err != nil {
		return err
	}
	schema.Path = path
	if err := tpl.Execute(wr, schema); err != nil {
		return err
	}

	for _, field := range sortedKeys(schema.Properties) {
		propPath := strings.Trim(path+"."+field, ".")
		if err := RenderTemplates(propPath, schema.Properties[field], wr); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(props map[string]*Schema) []string {
	result := make([]string, 0, len(props))
	for k := range props {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func main() {
	var schema Schema
	if err := json.Unmarshal([]byte(config.Schema), &schema); err != nil {
		log.Fatal(err)
	}

	outWriter := os.Stdout

	_, _ = fmt.Fprintln(outWriter, preamble)
	if err := RenderTemplates("", &schema, outWriter); err != nil {
		log.Fatal(err)
	}
}
