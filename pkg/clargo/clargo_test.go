// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package clargo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clargo/clargo/pkg/clargo"
)

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{Kind: clargo.KindFlag, Names: []string{"--x"}},
		{Kind: clargo.KindFlag, Names: []string{"--x"}},
	}})
	require.Error(t, err)
	assert.True(t, clargo.IsSchemaError(err))
}

func TestParser_ParseCommandLine(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{Kind: clargo.KindString, Names: []string{"--name"}},
	}})
	require.NoError(t, err)

	out, err := p.ParseCommandLine(`prog --name "ada lovelace"`)
	require.NoError(t, err)
	v, _ := out.Values.Get("--name")
	assert.Equal(t, "ada lovelace", v)
}

func TestParser_Complete(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{Kind: clargo.KindFlag, Names: []string{"--verbose"}},
		{Kind: clargo.KindFlag, Names: []string{"--version-info"}},
	}})
	require.NoError(t, err)

	msg := p.Complete("prog --verb", 11)
	assert.Contains(t, msg.String(), "--verbose")
}

func TestParser_RequiresGroundsRequirementErrors(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{Kind: clargo.KindFlag, Names: []string{"--a"}},
		{
			Kind:     clargo.KindFlag,
			Names:    []string{"--b"},
			Requires: clargo.ReqNameOnly("--a"),
		},
	}})
	require.NoError(t, err)

	_, err = p.Parse([]string{"--b"})
	require.Error(t, err)

	out, err := p.Parse([]string{"--a", "--b"})
	require.NoError(t, err)
	v, _ := out.Values.Get("--b")
	assert.Equal(t, true, v)
}

func TestParser_ParseStampsParseID(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{Kind: clargo.KindFlag, Names: []string{"--a"}},
	}})
	require.NoError(t, err)

	out, err := p.Parse([]string{"--a"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Values.ParseID())
}

func TestParser_CommandCallback(t *testing.T) {
	var received string
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{
			Kind:  clargo.KindCommand,
			Names: []string{"deploy"},
			SubCatalog: &clargo.Catalog{Options: []*clargo.OptionDef{
				{Kind: clargo.KindString, Names: []string{"--target"}, Required: true},
			}},
			OnCommand: func(sub clargo.ValueReader) error {
				v, _ := sub.Value("--target")
				received, _ = v.(string)
				return nil
			},
		},
	}})
	require.NoError(t, err)

	_, err = p.Parse([]string{"deploy", "--target", "prod"})
	require.NoError(t, err)
	assert.Equal(t, "prod", received)
}

func TestParser_ParseRejectsAsyncCatalogSynchronously(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{
			Kind:  clargo.KindString,
			Names: []string{"--x"},
			ParseAsync: func(ctx context.Context, values clargo.ValueReader, nameUsed, raw string) (any, error) {
				return raw, nil
			},
		},
	}})
	require.NoError(t, err)

	_, err = p.Parse([]string{"--x", "y"})
	require.Error(t, err)
}

func TestParser_ParseAsyncResolvesAsyncParseCallback(t *testing.T) {
	p, err := clargo.New(&clargo.Catalog{Options: []*clargo.OptionDef{
		{
			Kind:  clargo.KindString,
			Names: []string{"--x"},
			ParseAsync: func(ctx context.Context, values clargo.ValueReader, nameUsed, raw string) (any, error) {
				return raw + "!", nil
			},
		},
	}})
	require.NoError(t, err)

	out, err := p.ParseAsync(context.Background(), []string{"--x", "y"})
	require.NoError(t, err)
	v, _ := out.Values.Get("--x")
	assert.Equal(t, "y!", v)
}

func TestLoadCatalog_FromDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
options:
  - kind: string
    names: ["--name"]
    required: true
`), 0o644))

	p, err := clargo.LoadCatalog(path, nil)
	require.NoError(t, err)

	out, err := p.Parse([]string{"--name", "ada"})
	require.NoError(t, err)
	v, _ := out.Values.Get("--name")
	assert.Equal(t, "ada", v)
}
