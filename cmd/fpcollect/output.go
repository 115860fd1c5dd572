package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

type result struct {
	Record   *fingerprint.Record `json:"record"`
	Hash     string              `json:"hash"`
	CoreHash string              `json:"coreHash"`
}

func newResult(rec *fingerprint.Record) result {
	return result{
		Record:   rec,
		Hash:     fingerprint.Hash(rec),
		CoreHash: fingerprint.CoreHash(rec),
	}
}

func render(w io.Writer, res result, format, color string) error {
	switch format {
	case outputJSON, "":
		return renderJSON(w, res)
	case outputTable:
		renderTable(w, res, shouldColorize(w, color))
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}
}

func renderJSON(w io.Writer, res result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func renderTable(w io.Writer, res result, fancy bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	style := table.StyleLight
	style.Format = table.FormatOptions{}
	if fancy {
		style = table.StyleRounded
		style.Format = table.FormatOptions{}
		style.Color.Header = text.Colors{text.Italic}
		style.Color.Border = text.Colors{text.FgHiBlack}
		style.Color.Separator = text.Colors{text.FgHiBlack}
	}
	t.SetStyle(style)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 100},
	})

	t.AppendHeader(table.Row{"Signal", "Value"})
	for _, key := range res.Record.Keys() {
		v, _ := res.Record.Get(key)
		t.AppendRow(table.Row{key, formatValue(v)})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"hash", res.Hash},
		{"coreHash", res.CoreHash},
	})
	t.Render()
}

// formatValue prints strings bare and everything else as compact JSON.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func shouldColorize(w io.Writer, want string) bool {
	switch want {
	case "yes":
		return true
	case "no":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
