package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/inlinestr/abi"
	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/inlinable"
)

type opList []string

func (o *opList) String() string     { return strings.Join(*o, ",") }
func (o *opList) Set(v string) error { *o = append(*o, v); return nil }

func main() {
	var ops opList
	var (
		text        = flag.String("text", "", "Initial content")
		lower       = flag.String("lower", "", "Lower the result into wasm memory (utf8 or utf16)")
		asJSON      = flag.Bool("json", false, "Print the final value as JSON")
		verbose     = flag.Bool("v", false, "Log promotions and guest memory traffic")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Var(&ops, "op", "Edit to apply, repeatable (push:TEXT, insert:IDX:TEXT, drain:A:B, ...)")
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		inlinable.SetLogger(log.Named("inlinable"))
		abi.SetLogger(log.Named("abi"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*text); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(ops) == 0 && *text == "" {
		fmt.Fprintln(os.Stderr, "Usage: strplay -text <s> [-op push:TEXT ...] [-lower utf8|utf16] [-json]")
		fmt.Fprintln(os.Stderr, "       strplay -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*text, ops, *lower, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(text string, ops []string, lower string, asJSON bool) error {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(st lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return st.Render(s)
	}

	p := newPair(text)
	fmt.Printf("%-24s %q  %s\n", "start", p.inl.AsStr(), p.state())

	for _, line := range ops {
		st, err := parseOp(line)
		if err != nil {
			return err
		}
		inl, std := p.apply(st)
		line := fmt.Sprintf("%-24s %q  %s", st.name, p.inl.AsStr(), p.state())
		if inl.result != "" {
			line += "  -> " + render(resultStyle, fmt.Sprintf("%q", inl.result))
		}
		if inl.err != nil {
			line += "  " + render(errorStyle, inl.err.Error())
		}
		fmt.Println(line)

		if errors.KindOf(inl.err) != errors.KindOf(std.err) || inl.result != std.result || !p.agree() {
			return fmt.Errorf("representations diverged after %s: %q vs %q", st.name, p.inl.AsStr(), p.std.AsStr())
		}
	}

	if asJSON {
		data, err := json.Marshal(&p.inl)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		fmt.Printf("\njson: %s\n", data)
	}

	if lower != "" {
		return lowerToGuest(&p.inl, lower)
	}
	return nil
}

// guestMemory is a core module exporting a single page of memory.
var guestMemory = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func lowerToGuest(s *inlinable.String, encoding string) error {
	opts := abi.DefaultOptions()
	switch encoding {
	case "utf8":
	case "utf16":
		opts.Encoding = abi.UTF16
	default:
		return fmt.Errorf("unknown encoding %q", encoding)
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, guestMemory)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	mem := abi.NewWazeroMemory(mod.Memory())
	alloc := abi.NewBumpAllocator(mem, 1024)

	ptr, units, err := abi.Lower(s, mem, alloc, opts)
	if err != nil {
		return fmt.Errorf("lower: %w", err)
	}
	size := units
	if opts.Encoding == abi.UTF16 {
		size *= 2
	}
	raw, err := mem.Read(ptr, size)
	if err != nil {
		return err
	}
	fmt.Printf("\nlowered as %s: ptr=%d len=%d\n  % x\n", opts.Encoding, ptr, units, raw)

	var back inlinable.String
	if err := abi.Lift(&back, mem, ptr, units, opts); err != nil {
		return fmt.Errorf("lift: %w", err)
	}
	fmt.Printf("lifted back: %q\n", back.AsStr())
	return nil
}
