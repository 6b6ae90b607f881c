package compiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaspreet-dot-casa/build-env/pkg/envtemplate"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
	"github.com/jaspreet-dot-casa/build-env/pkg/pinned"
)

// TimestampLayout is the layout of the generation time in the header.
const TimestampLayout = "2006-01-02 15:04:05"

var headerLines = []string{
	`This file is generated by "build-env"`,
	"",
	"IMPORTANT:",
	"New and updated .env values should be added to .env.example",
	"and committed into your vcs. After updating .env.example",
	`run "build-env" to re-build the .env for the target`,
	"environment.",
	"",
	"Values in this file can be pinned to not be overwritten by",
	`"build-env". Add local pinned values only in the`,
	"designated block below.",
	"",
}

// Document is a complete generated .env file.
type Document struct {
	Environment  environment.Environment
	Generated    time.Time
	DefaultsPath string // empty when no defaults source was used
	Body         Body
	Pinned       pinned.Set
}

// Render returns the file contents. The result depends only on the fields
// of d.
func (d Document) Render() string {
	var b strings.Builder

	b.WriteString(envtemplate.Rule() + "\n")
	for _, line := range headerLines {
		b.WriteString(envtemplate.BoxLine(line) + "\n")
	}
	b.WriteString(envtemplate.BoxLine(fmt.Sprintf("Generate on %s for environment %s",
		d.Generated.Format(TimestampLayout), d.Environment)) + "\n")
	if d.DefaultsPath != "" {
		b.WriteString(envtemplate.BoxLine("Using defaults file "+d.DefaultsPath) + "\n")
	}
	b.WriteString(envtemplate.Rule() + "\n")

	b.WriteString(d.Body.String())

	b.WriteString("\n")
	b.WriteString(envtemplate.Rule() + "\n")
	b.WriteString(envtemplate.BoxLine(pinned.Title) + "\n")
	b.WriteString(envtemplate.Rule() + "\n")

	if text := d.Pinned.Text(); text != "" {
		b.WriteString(text + "\n")
	}

	return b.String()
}
