package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "game API base URL")
	flag.Parse()

	client := NewAPIClient(*baseURL)
	gs, err := client.NewGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法创建游戏：%v\n", err)
		os.Exit(1)
	}

	opening := ""
	if ch := catalog.Default().Chapter(gs.Chapter); ch != nil {
		opening = ch.OpeningText
	}
	ui := NewConsoleUI(client, gs, opening)
	if _, err := tea.NewProgram(ui, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "界面异常退出：%v\n", err)
		os.Exit(1)
	}
}
