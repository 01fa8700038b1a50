package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"turbofan"
	"turbofan/config"
	"turbofan/solver"
)

func main() {
	cfgPath := flag.String("config", "", "YAML 配置文件(缺省用基线机参数)")
	plotDir := flag.String("plot", "", "残差历史图输出目录(缺省不绘制)")
	stations := flag.Bool("stations", false, "输出沿程站位流动状态表")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	mp, err := turbofan.NewMultiPoint(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	runErr := mp.Run()

	points := append([]*turbofan.CyclePoint{mp.Design}, mp.OffDesign...)
	for _, p := range points {
		if p.Report == nil {
			continue
		}
		fmt.Printf("%s: %s\n", p.Name, p.Report)
		if *plotDir != "" && len(p.Report.History) > 0 {
			out := filepath.Join(*plotDir, p.Name+"_residual.png")
			if err := solver.PlotHistory(p.Report, p.Name, out); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}

	sums, err := mp.Summaries()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, s := range sums {
		fmt.Println(s)
	}

	if *stations {
		for _, p := range points {
			st, err := p.Stations()
			if err != nil {
				continue
			}
			fmt.Printf("---- %s ----\n", p.Name)
			for _, stn := range st {
				fmt.Printf("%-16s %s\n", stn.Name, stn.Flow)
			}
		}
	}
}
