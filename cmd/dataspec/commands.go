package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})
	return cli.NewCommandAt(&cfg.Main, "dataspec").
		WithSynopsis("dataspec [opts] command [opts]").
		WithDescription("dataspec validates and queries structured data documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dataspecMain(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			SearchCommand(cfg))
}

func dataspecMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "data-format",
			Description: "data format: yaml/y, json/j (default: infer from extension)",
			Type:        cli.NamedFuncOpt(fmtFunc(&cfg.DataFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "schema-format",
			Description: "schema format: yaml/y, json/j (default: infer from extension)",
			Type:        cli.NamedFuncOpt(fmtFunc(&cfg.SchemaFormat), "(format)"),
		})
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate -schema <file> -data <file>").
		WithDescription("validate a data document against a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func SearchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SearchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "data-format",
		Description: "data format: yaml/y, json/j (default: infer from extension)",
		Type:        cli.NamedFuncOpt(fmtFunc(&cfg.DataFormat), "(format)"),
	})
	return cli.NewCommandAt(&cfg.Search, "search").
		WithAliases("s", "se").
		WithSynopsis("search -data <file> [-path] <datapath>").
		WithDescription("resolve a datapath expression against a data document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return search(cfg, cc, args)
		})
}
