package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ai-laborlaw-be/internal/bootstrap"
	"ai-laborlaw-be/internal/config"
	"ai-laborlaw-be/pkg/workflow"

	"github.com/fatih/color"
)

// Interactive console runner for the consultation pipeline. Runs the same
// engine as the REST server against stdin, no HTTP or database required.
func main() {
	cfg := config.Load()
	container := bootstrap.NewContainer(nil, cfg)

	engine := container.Engine
	ctx := context.Background()

	color.Cyan("⚖️  劳动争议咨询助手（输入 quit 退出）\n")

	session, reply := engine.Start()
	printReply(reply)

	// Ctrl-C ends the session through the engine's quit path so partial
	// artifacts are still persisted.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		color.Set(color.FgYellow)
		fmt.Printf("[%s] > ", session.Stage)
		color.Unset()

		var text string
		select {
		case <-sigCh:
			fmt.Println()
			printReply(engine.Handle(ctx, session, "quit"))
			color.Cyan("再见。")
			return
		case line, ok := <-lines:
			if !ok {
				engine.Handle(ctx, session, "quit")
				color.Cyan("再见。")
				return
			}
			text = strings.TrimSpace(line)
		}
		if text == "" {
			continue
		}

		if session.Stage == workflow.StageAnalysis {
			if reply, handled := handleAnalysisInput(ctx, engine, session, text); handled {
				printReply(reply)
				if reply.Ended {
					break
				}
				continue
			}
		}

		reply = engine.Handle(ctx, session, text)
		printReply(reply)

		if session.Stage == workflow.StageReport && !reply.Ended {
			maybeGenerateReport(engine, session, container)
		}
		if reply.Ended {
			break
		}
	}

	color.Cyan("再见。")
}

// handleAnalysisInput treats a path-looking input as a file upload for the
// current item. Commands (skip, list, ...) fall through to the engine.
func handleAnalysisInput(ctx context.Context, engine *workflow.Engine, session *workflow.Session, text string) (*workflow.Reply, bool) {
	if _, err := os.Stat(text); err != nil {
		return nil, false
	}

	reply, err := engine.AnalyzeCurrent(ctx, session, text)
	if err != nil {
		color.Red("分析失败：%v", err)
		return nil, false
	}
	return reply, true
}

func maybeGenerateReport(engine *workflow.Engine, session *workflow.Session, container *bootstrap.Container) {
	doc, files, err := engine.GenerateReport(session, container.ReportWriter)
	if err != nil {
		color.Red("报告生成失败：%v", err)
		return
	}
	color.Green("报告已生成（%s）：", doc.Legal.StrengthLevel)
	color.Green("  %s", files.Text)
	color.Green("  %s", files.HTML)
	color.Green("  %s", files.JSON)
}

func printReply(reply *workflow.Reply) {
	fmt.Println()
	color.White("%s", reply.Text)
	if len(reply.Suggestions) > 0 {
		color.Yellow("建议问题：")
		for i, s := range reply.Suggestions {
			color.Yellow("  %d. %s", i+1, s)
		}
	}
	fmt.Println()
}
