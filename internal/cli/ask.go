package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"ai-contact-search-be/internal/constant"
	"ai-contact-search-be/pkg/llm"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const askSystemPrompt = "You are a concise, intelligent assistant. Answer clearly."

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Chat with the configured LLM",
	Long: `Starts an interactive session with the configured LLM provider.
Useful for checking credentials and connectivity. Type "exit" or "quit" to leave.`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	if chatProvider == nil {
		return errors.New("llm provider not configured")
	}

	prompt := color.New(color.FgCyan).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()
	scanner := bufio.NewScanner(stdin)

	for {
		cmd.Print(prompt("you> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExitCommand(input) {
			cmd.Println("Bye.")
			return nil
		}

		reply, err := chatProvider.Chat(context.Background(), []llm.Message{
			{Role: constant.ChatMessageRoleSystem, Content: askSystemPrompt},
			{Role: constant.ChatMessageRoleUser, Content: input},
		}, llm.WithTemperature(0.7))
		if err != nil {
			cmd.Println(errColor("error: " + err.Error()))
			continue
		}
		cmd.Println(reply)
	}
}

func isExitCommand(s string) bool {
	switch strings.ToLower(s) {
	case "exit", "quit":
		return true
	}
	return false
}
