package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

const placeholderText = "说点什么，或输入 /help 查看指令……"

var (
	narratorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	npcStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	playerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	systemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	eventStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("171")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// ConsoleUI is the BubbleTea model that runs the terminal client.
type ConsoleUI struct {
	client    *APIClient
	gameState *state.GameState
	viewport  viewport.Model
	textarea  textarea.Model
	lines     []string
	ready     bool
	loading   bool
	width     int
	height    int
	err       error
}

type turnMsg struct {
	result *engine.TurnResult
	err    error
}

type checkMsg struct {
	outcome *engine.CheckOutcome
	err     error
}

type choiceMsg struct {
	outcome *engine.ChoiceOutcome
	err     error
}

type chapterMsg struct {
	gameState *state.GameState
	err       error
}

func NewConsoleUI(client *APIClient, gs *state.GameState, opening string) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	ui := &ConsoleUI{client: client, gameState: gs, textarea: ta}
	ui.addLine(narratorStyle.Render(opening))
	ui.addLine(systemStyle.Render("输入 /help 查看指令。"))
	return ui
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (ui *ConsoleUI) addLine(s string) {
	ui.lines = append(ui.lines, s)
}

func (ui *ConsoleUI) refreshViewport() {
	if !ui.ready {
		return
	}
	wrapped := make([]string, len(ui.lines))
	for i, line := range ui.lines {
		wrapped[i] = wordwrap.String(line, ui.viewport.Width)
	}
	ui.viewport.SetContent(strings.Join(wrapped, "\n\n"))
	ui.viewport.GotoBottom()
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width, ui.height = msg.Width, msg.Height
		headerHeight := 1
		footerHeight := ui.textarea.Height() + 2
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width-2, msg.Height-headerHeight-footerHeight)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width - 2
			ui.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		ui.textarea.SetWidth(msg.Width - 2)
		ui.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return ui, tea.Quit
		case tea.KeyEnter:
			if ui.loading {
				break
			}
			input := strings.TrimSpace(ui.textarea.Value())
			ui.textarea.Reset()
			if input == "" {
				break
			}
			if cmd := ui.handleInput(input); cmd != nil {
				cmds = append(cmds, cmd)
			}
			ui.refreshViewport()
		}

	case turnMsg:
		ui.loading = false
		ui.renderTurn(msg.result, msg.err)
		ui.refreshViewport()

	case checkMsg:
		ui.loading = false
		if msg.err != nil {
			ui.addLine(errorStyle.Render("检定失败：" + msg.err.Error()))
		} else {
			ui.renderCheck(msg.outcome)
		}
		ui.refreshViewport()

	case choiceMsg:
		ui.loading = false
		if msg.err != nil {
			ui.addLine(errorStyle.Render("抉择失败：" + msg.err.Error()))
		} else {
			ui.renderChoice(msg.outcome)
		}
		ui.refreshViewport()

	case chapterMsg:
		ui.loading = false
		if msg.err != nil {
			ui.addLine(errorStyle.Render(msg.err.Error()))
		} else {
			ui.gameState = msg.gameState
			ui.addLine(eventStyle.Render(fmt.Sprintf("—— 进入第%d章 ——", msg.gameState.Chapter)))
		}
		ui.refreshViewport()
	}

	var cmd tea.Cmd
	ui.textarea, cmd = ui.textarea.Update(msg)
	cmds = append(cmds, cmd)
	ui.viewport, cmd = ui.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return ui, tea.Batch(cmds...)
}

// handleInput routes slash commands and plain turns.
func (ui *ConsoleUI) handleInput(input string) tea.Cmd {
	id := ui.gameState.ID.String()
	fields := strings.Fields(input)

	switch fields[0] {
	case "/help":
		ui.addLine(systemStyle.Render(strings.Join([]string{
			"/choose <事件ID> <选项>   选择抉择事件选项",
			"/check <事件ID> [道具…]   进行检定，可附带检定道具",
			"/use <道具ID> [台词]      使用道具",
			"/next                    章节成功后进入下一章",
			"/restart                 从第一章重新开始",
			"/status                  查看当前状态",
			"/copy                    复制会话ID到剪贴板",
			"其他输入将作为对话发送",
		}, "\n")))
		return nil
	case "/choose":
		if len(fields) < 3 {
			ui.addLine(errorStyle.Render("用法：/choose <事件ID> <选项>"))
			return nil
		}
		ui.loading = true
		return func() tea.Msg {
			outcome, err := ui.client.ResolveChoice(id, fields[1], fields[2])
			return choiceMsg{outcome: outcome, err: err}
		}
	case "/check":
		if len(fields) < 2 {
			ui.addLine(errorStyle.Render("用法：/check <事件ID> [道具…]"))
			return nil
		}
		ui.loading = true
		items := fields[2:]
		return func() tea.Msg {
			outcome, err := ui.client.CompleteCheck(id, fields[1], items)
			return checkMsg{outcome: outcome, err: err}
		}
	case "/use":
		if len(fields) < 2 {
			ui.addLine(errorStyle.Render("用法：/use <道具ID> [台词]"))
			return nil
		}
		ui.loading = true
		message := strings.Join(fields[2:], " ")
		return func() tea.Msg {
			result, err := ui.client.UseItem(id, fields[1], message)
			return turnMsg{result: result, err: err}
		}
	case "/next":
		ui.loading = true
		return func() tea.Msg {
			gs, err := ui.client.AdvanceChapter(id)
			return chapterMsg{gameState: gs, err: err}
		}
	case "/restart":
		ui.loading = true
		return func() tea.Msg {
			gs, err := ui.client.Reset(id)
			return chapterMsg{gameState: gs, err: err}
		}
	case "/copy":
		if err := clipboard.WriteAll(id); err != nil {
			ui.addLine(errorStyle.Render("复制失败：" + err.Error()))
		} else {
			ui.addLine(systemStyle.Render("会话ID已复制：" + id))
		}
		return nil
	case "/status":
		ui.loading = true
		return func() tea.Msg {
			sum, err := ui.client.Summary(id)
			if err != nil {
				return turnMsg{err: err}
			}
			return turnMsg{result: &engine.TurnResult{
				Narrative: formatSummary(sum),
			}}
		}
	}

	ui.addLine(playerStyle.Render("你：" + input))
	ui.loading = true
	return func() tea.Msg {
		result, err := ui.client.SendTurn(id, input)
		return turnMsg{result: result, err: err}
	}
}

func (ui *ConsoleUI) renderTurn(result *engine.TurnResult, err error) {
	if err != nil {
		ui.addLine(errorStyle.Render(err.Error()))
		return
	}
	if result.Narrative != "" {
		ui.addLine(narratorStyle.Render(result.Narrative))
	}
	if d := result.NPCDialogue; d != nil && d.Content != "" {
		ui.addLine(npcStyle.Render(d.Speaker+"：") + narratorStyle.Render(d.Content))
	}
	for _, ch := range result.Changes {
		ui.addLine(statusStyle.Render(fmt.Sprintf("· %s：%d → %d", ch.Target, ch.Old, ch.New)))
	}
	for _, item := range result.Items {
		ui.addLine(eventStyle.Render("获得道具：" + item.ItemName))
	}
	for _, ev := range result.Events {
		ui.renderEvent(ev)
	}
	if result.ChapterEnd != nil {
		ui.renderChapterEnd(result.ChapterEnd)
	}
}

func (ui *ConsoleUI) renderEvent(ev engine.TriggeredEvent) {
	ui.addLine(eventStyle.Render("【" + ev.Title + "】"))
	if ev.Content != "" {
		ui.addLine(narratorStyle.Render(ev.Content))
	}
	if ev.Description != "" {
		ui.addLine(narratorStyle.Render(ev.Description))
	}
	for _, opt := range ev.Options {
		marker := opt.Key
		if !opt.Available {
			marker += "（条件未满足）"
		}
		ui.addLine(systemStyle.Render(fmt.Sprintf("%s. %s", marker, opt.Text)))
	}
	if len(ev.Options) > 0 {
		ui.addLine(systemStyle.Render(fmt.Sprintf("用 /choose %s <选项> 做出选择", ev.ID)))
	}
	if ev.Check != nil {
		ui.addLine(systemStyle.Render(fmt.Sprintf("需要%s检定（难度%d）。用 /check %s [道具] 进行",
			ev.Check.Target, ev.Check.SuccessThreshold, ev.ID)))
	}
}

func (ui *ConsoleUI) renderCheck(outcome *engine.CheckOutcome) {
	verdict := "失败"
	if outcome.Result.GreatSuccess {
		verdict = "大成功"
	} else if outcome.Result.Success {
		verdict = "成功"
	}
	ui.addLine(eventStyle.Render(fmt.Sprintf("检定%s（成功率%d%%，掷出%.0f）",
		verdict, outcome.Result.SuccessRate, outcome.Result.Roll)))
	if outcome.ResultText != "" {
		ui.addLine(narratorStyle.Render(outcome.ResultText))
	}
	for _, ch := range outcome.Changes {
		ui.addLine(statusStyle.Render(fmt.Sprintf("· %s：%d → %d", ch.Target, ch.Old, ch.New)))
	}
	for _, item := range outcome.Items {
		ui.addLine(eventStyle.Render("获得道具：" + item.ItemName))
	}
	if outcome.ChapterEnd != nil {
		ui.renderChapterEnd(outcome.ChapterEnd)
	}
}

func (ui *ConsoleUI) renderChoice(outcome *engine.ChoiceOutcome) {
	if outcome.ResultText != "" {
		ui.addLine(narratorStyle.Render(outcome.ResultText))
	}
	for _, ch := range outcome.Changes {
		ui.addLine(statusStyle.Render(fmt.Sprintf("· %s：%d → %d", ch.Target, ch.Old, ch.New)))
	}
	for _, item := range outcome.Items {
		ui.addLine(eventStyle.Render("获得道具：" + item.ItemName))
	}
	if outcome.ChapterEnd != nil {
		ui.renderChapterEnd(outcome.ChapterEnd)
	}
}

func (ui *ConsoleUI) renderChapterEnd(end *state.ChapterEnd) {
	ui.addLine(eventStyle.Render("—— " + end.Title + " ——"))
	ui.addLine(narratorStyle.Render(end.Description))
	if end.Narrative != "" {
		ui.addLine(narratorStyle.Render(end.Narrative))
	}
	if end.Success && end.NextChapter > 0 {
		ui.addLine(systemStyle.Render("输入 /next 进入下一章。"))
	}
}

func formatSummary(sum *engine.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "第%d章《%s》 第%d日/共3日\n", sum.Chapter, sum.ChapterName, sum.Day)
	for name, v := range sum.Tracks {
		fmt.Fprintf(&b, "%s=%d  ", name, v)
	}
	b.WriteString("\n持有道具：")
	b.WriteString(strings.Join(sum.Items, "、"))
	return b.String()
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "载入中……"
	}
	header := eventStyle.Render("草船借箭")
	status := ""
	if ui.loading {
		status = statusStyle.Render(" 思索中……")
	}
	return fmt.Sprintf("%s%s\n%s\n%s", header, status, ui.viewport.View(), ui.textarea.View())
}
