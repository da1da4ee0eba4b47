package cli

import (
	"io"
	"os"

	"ai-contact-search-be/internal/repository/contract"
	"ai-contact-search-be/internal/service"
	"ai-contact-search-be/pkg/llm"

	"github.com/spf13/cobra"
)

var (
	searchService   service.ISearchService
	referralService service.IReferralService
	userRepository  contract.UserRepository
	chatProvider    llm.LLMProvider

	// stdin is swapped by tests.
	stdin io.Reader = os.Stdin
)

var rootCmd = &cobra.Command{
	Use:   "contactsearch",
	Short: "Natural-language search over your contacts",
	Long: `Finds people in your address book that match a free-text request.
Contacts are ranked by embedding similarity and confirmed by an LLM.
The referral mode searches the address books of contacts who opted in to referrals.`,
	SilenceUsage: true,
}

// SetServices injects the application services used by the commands.
func SetServices(search service.ISearchService, referral service.IReferralService, users contract.UserRepository, provider llm.LLMProvider) {
	searchService = search
	referralService = referral
	userRepository = users
	chatProvider = provider
}

func Execute() error {
	return rootCmd.Execute()
}
