package main

import "github.com/yapay-ai/dirsentry/internal/cli"

func main() {
	cli.Execute()
}
