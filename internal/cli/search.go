package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/internal/repository/specification"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	searchUserID   int64
	searchPhone    string
	searchReferral bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [prompt]",
	Short: "Search contacts with a natural-language prompt",
	Long: `Searches the address book of the given user, selected by --user id or --phone.
With --referral the search runs over the address books of the user's
contacts who allow referrals, and returns those contacts instead.
When no prompt argument is given it is read from stdin; an empty prompt exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int64VarP(&searchUserID, "user", "u", 0, "id of the searching user")
	searchCmd.Flags().StringVarP(&searchPhone, "phone", "p", "", "phone number of the searching user")
	searchCmd.Flags().BoolVarP(&searchReferral, "referral", "r", false, "search through referrers")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.MarkFlagsOneRequired("user", "phone")
	searchCmd.MarkFlagsMutuallyExclusive("user", "phone")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if searchPhone != "" {
		if err := resolveUserByPhone(ctx, cmd); err != nil {
			return err
		}
	}

	prompt := ""
	if len(args) == 1 {
		prompt = args[0]
	} else {
		cmd.Print("Describe who you are looking for: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		prompt = line
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		cmd.Println("Empty prompt, nothing to search.")
		return nil
	}

	if searchReferral {
		return runReferralSearch(ctx, cmd, prompt)
	}

	if searchService == nil {
		return errors.New("search service not configured")
	}
	results, err := searchService.Search(ctx, &dto.SearchRequest{UserId: searchUserID, Prompt: prompt})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchJSON {
		return outputJSON(cmd, results)
	}
	outputResults(cmd, results)
	return nil
}

// resolveUserByPhone sets searchUserID from the --phone flag.
func resolveUserByPhone(ctx context.Context, cmd *cobra.Command) error {
	if userRepository == nil {
		return errors.New("user repository not configured")
	}
	user, err := userRepository.FindOne(ctx, specification.ByPhone{Phone: searchPhone})
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no user registered with phone %s", searchPhone)
	}

	searchUserID = user.Id
	name := user.FullName()
	if name == "" {
		name = user.Phone
	}
	cmd.Printf("Searching as %s\n", color.New(color.Bold).Sprint(name))
	return nil
}

func runReferralSearch(ctx context.Context, cmd *cobra.Command, prompt string) error {
	if referralService == nil {
		return errors.New("referral service not configured")
	}
	referrals, err := referralService.Search(ctx, &dto.ReferralSearchRequest{UserId: searchUserID, Prompt: prompt})
	if err != nil {
		return fmt.Errorf("referral search failed: %w", err)
	}
	if searchJSON {
		return outputJSON(cmd, referrals)
	}
	outputReferrals(cmd, referrals)
	return nil
}

func outputJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResults(cmd *cobra.Command, results []*dto.SearchResultResponse) {
	if len(results) == 0 {
		cmd.Println("No matching contacts.")
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cmd.Println("Results:")
	for i, r := range results {
		cmd.Printf("[%d] %s %s\n", i+1, bold(r.Name), r.Phone)
		cmd.Printf("    confidence %.2f  score %.3f\n", r.Confidence, r.Score)
		if r.Reason != "" {
			cmd.Printf("    %s\n", dim(r.Reason))
		}
	}
}

func outputReferrals(cmd *cobra.Command, referrals []*dto.ReferralResponse) {
	if len(referrals) == 0 {
		cmd.Println("None of your referrers know a match.")
		return
	}

	bold := color.New(color.Bold).SprintFunc()

	cmd.Println("Ask these contacts for a referral:")
	for i, r := range referrals {
		if r.Confidence != nil {
			cmd.Printf("[%d] %s %s (%.2f)\n", i+1, bold(r.Name), r.Phone, *r.Confidence)
			continue
		}
		cmd.Printf("[%d] %s %s\n", i+1, bold(r.Name), r.Phone)
	}
}
