package main

import (
	"flag"
	"log"

	"github.com/decker502/hovertip/pkg/app"
	"github.com/decker502/hovertip/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	debug := flag.Bool("debug", false, "输出 Tooltip 状态切换日志")
	lang := flag.String("lang", "", "界面语言（en, zh_CN），默认使用保存的设置")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose || *debug,
		Debug:    *debug,
		Language: *lang,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Hovertip - Tooltip 演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
