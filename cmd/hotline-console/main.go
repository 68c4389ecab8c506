// Command hotline-console starts or joins one mediated call and lets the user
// follow the translated conversation and reply from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	orchestration "github.com/koscakluka/hotline-core/core"
	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/config"
	"github.com/koscakluka/hotline-core/core/triggers"
)

type flags struct {
	target     string
	question   string
	join       string
	configPath string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.target, "target", string(call.DefaultTarget), "administration to call (caf, prefecture, impots)")
	flag.StringVar(&f.question, "question", "", "what you want to find out")
	flag.StringVar(&f.join, "join", "", "join trigger JSON of a call placed elsewhere, e.g. {\"callId\":\"abc123\"}")
	flag.StringVar(&f.configPath, "config", "", "optional config file")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotline-console: %v\n", err)
		os.Exit(1)
	}

	start, err := startFunc(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotline-console: %v\n", err)
		os.Exit(2)
	}

	o := orchestration.NewOrchestrator(orchestration.WithConfig(cfg))
	defer o.Close()

	updates, unsubscribe := o.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(newModel(o, updates, func(ctx context.Context) error { return start(ctx, o) }), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hotline-console fatal error: %v\n", err)
		os.Exit(1)
	}
}

func startFunc(f flags) (func(context.Context, *orchestration.Orchestrator) error, error) {
	if f.join != "" {
		trigger, err := triggers.ParseJoinTrigger([]byte(f.join))
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, o *orchestration.Orchestrator) error {
			return o.Join(ctx, trigger)
		}, nil
	}

	target := call.Target(f.target)
	if !target.IsValid() {
		return nil, fmt.Errorf("unknown target %q, expected one of %v", f.target, call.Targets())
	}
	if f.question == "" {
		return nil, fmt.Errorf("-question is required unless -join is given")
	}
	return func(ctx context.Context, o *orchestration.Orchestrator) error {
		return o.Start(ctx, target, f.question)
	}, nil
}
