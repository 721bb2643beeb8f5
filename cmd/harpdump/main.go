package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/product"
)

func main() {
	var (
		varName     = flag.String("var", "", "Show one variable in full detail")
		withData    = flag.Bool("data", false, "Include data values in the listing")
		actions     = flag.String("actions", "", "Action list to apply after reading")
		options     = flag.String("options", "", "Ingestion options (name=value;name=value)")
		ingest      = flag.Bool("ingest", false, "Read a non-native product file")
		noColor     = flag.Bool("no-color", false, "Disable styled output")
		interactive = flag.Bool("i", false, "Interactive browser")
		version     = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(harp.Version())
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: harpdump [-var name] [-data] [-ingest [-options list]] <file>")
		fmt.Fprintln(os.Stderr, "       harpdump -i <file>  (interactive browser)")
		os.Exit(1)
	}

	if *interactive {
		if err := runBrowser(flag.Arg(0), *actions, *options, *ingest); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(flag.Arg(0), *varName, *actions, *options, *ingest, *withData, *noColor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file, varName, actions, options string, ingest, withData, noColor bool) error {
	p, err := readProduct(file, actions, options, ingest)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	styled := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	pal := newPalette(styled)

	if varName != "" {
		v, ok := p.Get(varName)
		if !ok {
			return fmt.Errorf("no variable %q in %s", varName, file)
		}
		fmt.Print(renderVariable(varName, v, pal))
		return nil
	}

	fmt.Print(renderProduct(file, p, pal, withData))
	return nil
}

func readProduct(file, actions, options string, ingest bool) (*harp.Product, error) {
	if ingest {
		return harp.IngestProduct(file, actions, options)
	}
	return harp.ImportProduct(file, actions)
}

// palette holds the styles for product rendering. The zero-config styles
// from newPalette(false) render text unchanged.
type palette struct {
	title lipgloss.Style
	name  lipgloss.Style
	typ   lipgloss.Style
	unit  lipgloss.Style
}

func newPalette(styled bool) palette {
	if !styled {
		plain := lipgloss.NewStyle()
		return palette{title: plain, name: plain, typ: plain, unit: plain}
	}
	return palette{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		name: lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		typ:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		unit: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func renderProduct(file string, p *harp.Product, pal palette, withData bool) string {
	var b strings.Builder

	b.WriteString(pal.title.Render("HARP product"))
	b.WriteString(" ")
	b.WriteString(file)
	b.WriteString("\n\n")

	hasAttributes := false
	if p.SourceProduct != "" {
		fmt.Fprintf(&b, "source product = %q\n", p.SourceProduct)
		hasAttributes = true
	}
	if p.History != "" {
		fmt.Fprintf(&b, "history = %q\n", p.History)
		hasAttributes = true
	}
	if hasAttributes {
		b.WriteByte('\n')
	}

	for _, name := range p.Names() {
		v, _ := p.Get(name)
		b.WriteString(variableLine(name, v, pal))
		b.WriteByte('\n')
		if withData {
			fmt.Fprintf(&b, "  data = %s\n", product.FormatValue(v.Data))
		}
	}

	return b.String()
}

// plainVariableLine renders the one-line summary without any styling, for
// contexts that restyle the whole line.
func plainVariableLine(name string, v *harp.Variable) string {
	return variableLine(name, v, newPalette(false))
}

// variableLine renders the one-line summary: type, name, dimensions, unit.
func variableLine(name string, v *harp.Variable, pal palette) string {
	var b strings.Builder
	b.WriteString(pal.typ.Render(product.FormatDataType(v.Data)))
	b.WriteByte(' ')
	b.WriteString(pal.name.Render(name))
	if len(v.Dimensions) > 0 {
		b.WriteByte(' ')
		b.WriteString(product.FormatDimensions(v.Dimensions, v.Data))
	}
	if v.Unit != "" {
		b.WriteByte(' ')
		b.WriteString(pal.unit.Render("[" + v.Unit + "]"))
	}
	return b.String()
}

func renderVariable(name string, v *harp.Variable, pal palette) string {
	header := pal.typ.Render(product.FormatDataType(v.Data)) + " " + pal.name.Render(name)
	return header + "\n" + v.String()
}
