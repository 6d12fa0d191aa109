// verify_tooltip 无界面运行 Tooltip 场景并逐帧输出状态
//
// 用法:
//
//	go run ./cmd/verify_tooltip run cmd/verify_tooltip/testdata/transfer.yaml
//	go run ./cmd/verify_tooltip presets --config data/tooltip_config.yaml
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/hovertip/pkg/components"
	"github.com/decker502/hovertip/pkg/config"
	"github.com/decker502/hovertip/pkg/systems"
	"github.com/decker502/hovertip/pkg/types"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// 命令行参数
	configPath  string
	verbose     bool
	noColor     bool
	changesOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verify_tooltip",
		Short: "Headless verification of tooltip interaction and placement",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if !verbose {
				log.SetOutput(io.Discard)
			}
			if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
				color.Disable()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Tooltip config file (default: built-in presets)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show module logs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(presetsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print the tooltip state after every frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runner, err := NewRunner(scenario, cfg, nil)
			if err != nil {
				return err
			}

			var last *FrameResult
			runner.Run(func(result FrameResult) {
				if changesOnly && last != nil && sameResult(*last, result) {
					return
				}
				printFrame(os.Stdout, result)
				last = &result
			})

			fmt.Fprintf(os.Stdout, "\n%d transitions\n", len(runner.Transitions))
			for _, tr := range runner.Transitions {
				fmt.Fprintf(os.Stdout, "  %s %s -> %s %s\n",
					stateStyle(tr.From).Sprint(tr.From), runner.Name(tr.FromTarget),
					stateStyle(tr.To).Sprint(tr.To), runner.Name(tr.ToTarget))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&changesOnly, "changes", false, "Only print frames whose result differs from the previous one")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List activation, transfer and placement presets",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			presets, err := cfg.Presets()
			if err != nil {
				return err
			}

			heading := color.Style{color.FgCyan, color.OpBold}
			heading.Println("Activation")
			for _, name := range components.ActivationPresetNames() {
				a, _ := presets.Activation(name)
				fmt.Printf("  %-24s delay=%dms resetOnMove=%v\n", name, a.Delay, a.ResetDelayOnCursorMove)
			}

			heading.Println("Transfer")
			for _, name := range components.TransferPresetNames() {
				t, _ := presets.Transfer(name)
				group := "-"
				if t.HasGroup {
					group = fmt.Sprint(t.Group)
				}
				fmt.Printf("  %-24s group=%s layer=%d timeout=%dms fromActive=%v\n", name, group, t.Layer, t.Timeout, t.FromActive)
			}

			heading.Println("Placement")
			for _, name := range components.PlacementPresetNames() {
				p, _ := presets.Placement(name)
				fmt.Printf("  %-24s anchor=%s target=%s offset=(%s, %s)\n",
					name, anchorString(p.AnchorPoint), targetString(p.TargetPoint), p.OffsetX, p.OffsetY)
			}
			return nil
		},
	}
}

// loadConfig 加载 --config 指定的配置，未指定时使用默认配置
func loadConfig() (*config.TooltipConfig, error) {
	if configPath == "" {
		return config.DefaultTooltipConfig(), nil
	}
	return config.LoadTooltipConfig(configPath)
}

// printFrame 输出一帧的状态
func printFrame(w io.Writer, r FrameResult) {
	target := r.Target
	if target == "" {
		target = "-"
	}
	line := fmt.Sprintf("%4d %6dms  %-9s %-12s", r.Frame, r.Time, stateStyle(r.State).Sprint(r.State), target)
	if r.Visible {
		line += fmt.Sprintf(" tooltip=(%g, %g) %gx%g", r.TopLeft.X, r.TopLeft.Y, r.Size.X, r.Size.Y)
	}
	fmt.Fprintln(w, line)
}

// sameResult 两帧除帧号和时间外是否相同
func sameResult(a, b FrameResult) bool {
	return a.State == b.State && a.Target == b.Target && a.Visible == b.Visible &&
		a.TopLeft == b.TopLeft && a.Size == b.Size
}

// stateStyle 状态对应的颜色
func stateStyle(state systems.TooltipState) color.Style {
	switch state {
	case systems.TooltipDelayed:
		return color.Style{color.FgYellow}
	case systems.TooltipActive:
		return color.Style{color.FgGreen, color.OpBold}
	case systems.TooltipDismissed:
		return color.Style{color.FgRed}
	default:
		return color.Style{color.FgGray}
	}
}

// anchorString 锚点名称，非标准锚点输出坐标
func anchorString(a types.Anchor) string {
	for _, name := range types.AnchorNames() {
		if anchor, _ := types.AnchorByName(name); anchor == a {
			return name
		}
	}
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}

// targetString 目标点描述
func targetString(t components.TargetPoint) string {
	switch {
	case t.Kind == components.TargetFixed:
		return "fixed:" + anchorString(t.Anchor)
	case t.Follow:
		return "follow_cursor"
	default:
		return "cursor"
	}
}
