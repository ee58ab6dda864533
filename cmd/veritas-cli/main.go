package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"veritas-client-go/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml")
	serverURL := flag.String("server", "", "Override backend base URL (e.g. https://api.example.edu)")
	flag.Parse()

	opts := bootstrap.Options{
		ConfigPath: *configPath,
		ServerURL:  *serverURL,
	}
	if err := bootstrap.Run(context.Background(), opts); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "veritas-cli failed: %v\n", err)
		os.Exit(1)
	}
}
