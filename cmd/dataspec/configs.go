package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dataspec-format/dataspec/load"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='colorize output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// useColor decides whether to colorize output written to w: an
// explicit -color wins, otherwise color iff w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func fmtFunc(fp *load.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := load.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = f
		return f, nil
	})
}

type ValidateConfig struct {
	*MainConfig

	Data     string `cli:"name=data desc='data file to validate'"`
	Schema   string `cli:"name=schema desc='schema file'"`
	MaxDepth int    `cli:"name=maxDepth desc='validation depth ceiling'"`

	DataFormat   load.Format
	SchemaFormat load.Format

	Validate *cli.Command
}

type SearchConfig struct {
	*MainConfig

	Data string `cli:"name=data desc='data file to query'"`
	Path string `cli:"name=path desc='datapath expression'"`

	DataFormat load.Format

	Search *cli.Command
}
