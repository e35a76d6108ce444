package main

import (
	"context"
	"os"

	"github.com/JonMunkholm/compliance-reports/internal/cli"
)

func main() {
	rt := cli.DefaultRuntime()
	if err := cli.Execute(context.Background(), cli.NewFormCommand(rt), rt); err != nil {
		os.Exit(1)
	}
}
