package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/cli"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/config"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/logger"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
)

func main() {
	args := cli.Parse()

	switch args.Cmd {
	case cli.CmdConfigTest:
		if _, err := config.Load(args.Config); err != nil {
			fmt.Println("config_invalid:", err.Error())
			os.Exit(1)
		}
		fmt.Println("config_ok")
	case cli.CmdServe:
		fmt.Println("use the effcid binary to run the service")
		os.Exit(2)
	default:
		log := logger.New("warn")
		calc := stats.NewCalculator(stats.WithLogger(log))
		res, err := calc.EfficiencyCI(args.K, args.N, args.Conflevel)
		if err != nil {
			log.Error("compute_failed", "err", err.Error())
			os.Exit(1)
		}
		_ = json.NewEncoder(os.Stdout).Encode(res)
	}
}
