package main

import "github.com/hadirapp-com/support-template/internal/cli"

func main() {
	cli.Execute()
}
