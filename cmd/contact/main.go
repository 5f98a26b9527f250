package main

import (
	"ainrion_site_go/client"
	"ainrion_site_go/config"
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

func main() {
	cfg := config.Load()

	baseURL := flag.String("url", cfg.AppURL, "base URL of the site")
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	reader := bufio.NewReader(os.Stdin)

	if interactive {
		fmt.Println("=== Contact Ainrion ===")
		fmt.Println()
	}

	form := client.NewForm(client.EndpointURL(*baseURL), client.NotifierFunc(printToast))
	form.Name = prompt(reader, interactive, "Name: ")
	form.Email = prompt(reader, interactive, "Email: ")
	if interactive {
		fmt.Println("Message (finish with an empty line):")
	}
	form.Message = readMessage(reader)

	err := form.Submit(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, client.ErrFieldRequired):
		log.Fatalf("Name, email, and message are required (%v)", err)
	default:
		os.Exit(1)
	}
}

func prompt(reader *bufio.Reader, interactive bool, label string) string {
	if interactive {
		fmt.Print(label)
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readMessage reads lines until an empty line or EOF
func readMessage(reader *bufio.Reader) string {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func printToast(t client.Toast) {
	mark := "✓"
	if t.Variant == client.Negative {
		mark = "✗"
	}
	fmt.Println()
	fmt.Printf("%s %s\n", mark, t.Title)
	fmt.Printf("  %s\n", t.Description)
}
