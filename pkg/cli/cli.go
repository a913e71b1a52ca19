package cli

import (
	"flag"
	"fmt"
)

type Command int

const (
	CmdCompute Command = iota
	CmdServe
	CmdConfigTest
)

type Args struct {
	Cmd       Command
	Config    string
	K         int
	N         int
	Conflevel float64
}

func Parse() Args {
	var (
		serve     = flag.Bool("serve", false, "run the interval service")
		test      = flag.Bool("config-test", false, "validate config")
		cfg       = flag.String("config", "config.yaml", "config path")
		k         = flag.Int("k", -1, "successes")
		n         = flag.Int("n", -1, "trials")
		conflevel = flag.Float64("conflevel", 0.6827, "confidence level in (0,1)")
	)
	flag.Parse()
	out := Args{Config: *cfg, K: *k, N: *n, Conflevel: *conflevel}
	switch {
	case *serve:
		out.Cmd = CmdServe
	case *test:
		out.Cmd = CmdConfigTest
	case *k >= 0 && *n >= 0:
		out.Cmd = CmdCompute
	default:
		fmt.Println("Use -k <successes> -n <trials> [-conflevel <c>] | -serve | -config-test")
		out.Cmd = CmdCompute
	}
	return out
}
