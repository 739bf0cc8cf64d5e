package main

import (
	"fmt"
	"os"

	"github.com/girste/hostprobe/cmd/hostprobe/commands"
	"github.com/girste/hostprobe/internal/probe"
)

func main() {
	if len(os.Args) > 1 {
		command := os.Args[1]

		switch command {
		case "version", "--version", "-v":
			commands.PrintVersion()
			os.Exit(0)

		case "report":
			os.Exit(commands.RunReport(os.Args[2:]))

		case "os", "arch", "distro", "cpu", "gpu", "wsl", "ip":
			os.Exit(commands.RunFact(command))

		case "fact":
			if len(os.Args) < 3 {
				commands.PrintFacts(probe.FactNames())
				os.Exit(2)
			}
			os.Exit(commands.RunFact(os.Args[2]))

		case "serve":
			commands.RunServe()
			os.Exit(0)

		case "help", "--help", "-h":
			commands.PrintHelp()
			commands.PrintFacts(probe.FactNames())
			os.Exit(0)

		default:
			fmt.Printf("Unknown command: %s\n", command)
			commands.PrintHelp()
			os.Exit(2)
		}
	}

	// Default: run as MCP server
	commands.RunServe()
}
