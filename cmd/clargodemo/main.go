// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command clargodemo is a worked example of pkg/clargo: a small
// "box" CLI with a flag, an enum string option with a default and env
// fallback, a unique string array, a variadic positional, a nested
// subcommand with a required option, and help/version options, wired end
// to end so the library's behavior can be exercised from a terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/clargo/clargo/internal/host"
	"github.com/clargo/clargo/internal/logging"
	"github.com/clargo/clargo/pkg/clargo"
	"github.com/clargo/clargo/pkg/errutil"
)

func main() {
	logger := logging.Setup("clargodemo", "1.0.0", "text", os.Stderr)

	ctx := logging.WithParseID(context.Background(), host.NewParseID())

	parser, err := newParser()
	if err != nil {
		errutil.LogError(ctx, logger, "invalid catalog", err)
		os.Exit(2)
	}

	out, err := parser.ParseAsync(ctx, os.Args[1:])
	if err != nil {
		errutil.LogError(ctx, logger, "parse failed", err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	for _, w := range out.Values.Warnings() {
		fmt.Fprintln(os.Stderr, w)
	}

	if out.Message != nil {
		fmt.Println(out.Message.Wrap(0, host.OSWidthProbe{}.Width(), host.ColorPolicy(nil, os.Stdout)))
		return
	}

	printOutcome(out.Values)
}

// newParser builds the demo's Parser, either from the Go struct literal
// below or, when CLARGODEMO_CATALOG_FILE is set, by loading the catalog
// from a YAML/JSON document (see internal/catalogdoc) — useful when the
// option set is generated or shared with another tool rather than
// hand-written.
func newParser() (*clargo.Parser, error) {
	if path := os.Getenv("CLARGODEMO_CATALOG_FILE"); path != "" {
		return clargo.LoadCatalog(path, nil)
	}
	return clargo.New(catalog())
}

func printOutcome(vals *clargo.Values) {
	region, _ := vals.Get("--region")
	fmt.Printf("region: %v\n", region)

	tags, _ := vals.Get("--tag")
	fmt.Printf("tags: %v\n", tags)

	if verbose, ok := vals.Get("--verbose"); ok {
		fmt.Printf("verbose: %v\n", verbose)
	}

	if sub, ok := vals.Sub("deploy"); ok {
		target, _ := sub.Get("--target")
		fmt.Printf("deploy target: %v\n", target)
	}
}

func catalog() *clargo.Catalog {
	marker := clargo.DefaultPositionalMarker
	return &clargo.Catalog{
		ShortCluster: true,
		Intro:        "box manages a project's storage regions.",
		Usage:        "box [options] -- [files...]",
		Options: []*clargo.OptionDef{
			{
				Kind:           clargo.KindFlag,
				Names:          []string{"--verbose"},
				ClusterLetters: []string{"v"},
				Desc:           "Print extra diagnostic output.",
			},
			{
				Kind:          clargo.KindString,
				Names:         []string{"--region"},
				PreferredName: "--region",
				Choices:       []string{"us-east", "us-west", "eu-central"},
				Default:       "us-east",
				EnvVar:        "BOX_REGION",
				Desc:          "Storage region to target.",
			},
			{
				Kind:    clargo.KindStringArray,
				Names:   []string{"--tag"},
				Unique:  true,
				Desc:    "Tag to attach to the operation; may repeat.",
			},
			{
				Kind:       clargo.KindStringArray,
				Positional: &marker,
				Desc:       "Files to operate on.",
			},
			{
				Kind: clargo.KindCommand,
				Names: []string{"deploy"},
				Desc:  "Deploy the current project.",
				SubCatalog: &clargo.Catalog{
					Options: []*clargo.OptionDef{
						{
							Kind:     clargo.KindString,
							Names:    []string{"--target"},
							Required: true,
							Desc:     "Deployment target name.",
						},
					},
				},
			},
			{
				Kind:  clargo.KindHelp,
				Names: []string{"--help", "-h"},
				Break: true,
			},
			{
				Kind:    clargo.KindVersion,
				Names:   []string{"--version"},
				Break:   true,
				Version: &clargo.VersionDef{Value: "1.0.0"},
			},
		},
	}
}
