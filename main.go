package main

import (
	"os"

	"github.com/penwyp/quickmit/cmd"
)

// main 为 CLI 入口，调用 cmd.Execute。
func main() {
	if err := cmd.Execute(); err != nil {
		// 错误已在命令层渲染，这里只负责退出码
		os.Exit(cmd.ExitCodeFor(err))
	}
}
